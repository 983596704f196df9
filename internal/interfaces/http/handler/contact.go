package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/application/ordering"
	"github.com/retailhub/backend/internal/interfaces/http/dto"
)

// ContactHandler handles shipping contact HTTP requests
type ContactHandler struct {
	BaseHandler
	contactService *ordering.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *ordering.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// List godoc
// @Summary      List own contacts
// @Tags         contacts
// @Produce      json
// @Success      200 {object} dto.Response{data=[]ordering.ContactResponse}
// @Security     BearerAuth
// @Router       /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contacts)
}

// Create godoc
// @Summary      Add a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request body ordering.CreateContactRequest true "Contact details"
// @Success      201 {object} dto.Response{data=ordering.ContactResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ordering.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, contact)
}

// Update godoc
// @Summary      Edit a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID"
// @Param        request body ordering.UpdateContactRequest true "Contact details"
// @Success      200 {object} dto.Response{data=ordering.ContactResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	var body ordering.UpdateContactRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BindError(c, err)
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), userID, uuid.MustParse(req.ID), body)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contact)
}

// Delete godoc
// @Summary      Remove a contact
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), userID, uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
