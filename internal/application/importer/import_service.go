package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/catalog"
	"github.com/retailhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ImportResult summarizes one completed import run
type ImportResult struct {
	Shop       string `json:"shop"`
	Categories int    `json:"categories"`
	Goods      int    `json:"goods"`
	Parameters int    `json:"parameters"`
}

// ImportService merges shop feed documents into the shared catalog. Each run
// executes under one transaction: any failure leaves the store untouched,
// and re-running the same document produces an identical end state.
type ImportService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(scope TransactionScope, logger *zap.Logger) *ImportService {
	return &ImportService{
		scope:  scope,
		logger: logger,
	}
}

// Import parses the document and upserts it into the catalog
func (s *ImportService) Import(ctx context.Context, doc []byte) (*ImportResult, error) {
	return s.runImport(ctx, doc, uuid.Nil)
}

// ImportForUser is the shop-operator entry point: the feed's shop must be
// unlinked or already linked to the calling account, and an unlinked shop is
// claimed by the caller as part of the same transaction.
func (s *ImportService) ImportForUser(ctx context.Context, userID uuid.UUID, doc []byte) (*ImportResult, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return s.runImport(ctx, doc, userID)
}

func (s *ImportService) runImport(ctx context.Context, doc []byte, userID uuid.UUID) (*ImportResult, error) {
	feed, err := ParseFeed(doc)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Shop: feed.Shop}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		shop, err := repos.Shops().GetOrCreateByName(ctx, feed.Shop)
		if err != nil {
			return err
		}

		if userID != uuid.Nil {
			if shop.UserID == nil {
				if err := shop.LinkUser(userID); err != nil {
					return err
				}
				if err := repos.Shops().Save(ctx, shop); err != nil {
					return err
				}
			} else if !shop.IsOwnedBy(userID) {
				return shared.NewDomainError("FORBIDDEN", "Shop belongs to another account")
			}
		}

		for _, fc := range feed.Categories {
			category, err := repos.Categories().GetOrCreate(ctx, fc.ID, fc.Name)
			if err != nil {
				return err
			}
			if err := repos.Categories().AssociateShop(ctx, category.ID, shop.ID); err != nil {
				return err
			}
			result.Categories++
		}

		for i, good := range feed.Goods {
			if err := s.importGood(ctx, repos, shop, good, result); err != nil {
				return fmt.Errorf("goods entry %d (id %d): %w", i+1, good.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Warn("Feed import aborted",
			zap.String("shop", feed.Shop),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Feed imported",
		zap.String("shop", result.Shop),
		zap.Int("categories", result.Categories),
		zap.Int("goods", result.Goods),
		zap.Int("parameters", result.Parameters))

	return result, nil
}

// importGood upserts a single goods entry: product by (name, category),
// stock record by (product, shop), attribute values by (record, attribute).
func (s *ImportService) importGood(ctx context.Context, repos TransactionalRepositories, shop *catalog.Shop, good FeedGood, result *ImportResult) error {
	category, err := repos.Categories().FindByExternalID(ctx, good.Category)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// goods must reference a category declared by some import;
			// the importer never auto-creates one from a goods entry
			return shared.NewDomainError("CATEGORY_NOT_FOUND",
				fmt.Sprintf("Referenced category %d not found", good.Category))
		}
		return err
	}

	product, err := repos.Products().GetOrCreate(ctx, good.Name, category.ID)
	if err != nil {
		return err
	}

	price, err := good.Price.Money()
	if err != nil {
		return err
	}
	priceRRC, err := good.PriceRRC.Money()
	if err != nil {
		return err
	}

	record, err := catalog.NewStockRecord(product.ID, shop.ID, good.ID, good.Model, good.Quantity, price, priceRRC)
	if err != nil {
		return err
	}
	if err := repos.StockRecords().Upsert(ctx, record); err != nil {
		return err
	}
	result.Goods++

	for name, value := range good.Parameters {
		attribute, err := repos.Attributes().GetOrCreateByName(ctx, name)
		if err != nil {
			return err
		}
		attrValue, err := catalog.NewAttributeValue(record.ID, attribute.ID, value.String())
		if err != nil {
			return err
		}
		if err := repos.Attributes().UpsertValue(ctx, attrValue); err != nil {
			return err
		}
		result.Parameters++
	}

	return nil
}
