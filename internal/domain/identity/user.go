package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/retailhub/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserType distinguishes buyers from shop operators
type UserType string

const (
	UserTypeBuyer UserType = "buyer"
	UserTypeShop  UserType = "shop"
)

// IsValid checks if the user type is valid
func (t UserType) IsValid() bool {
	return t == UserTypeBuyer || t == UserTypeShop
}

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusPending UserStatus = "pending" // Awaiting email confirmation
	UserStatusActive  UserStatus = "active"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a registered account, either a buyer or a shop operator
type User struct {
	shared.BaseAggregateRoot
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Type         UserType   `gorm:"type:varchar(10);not null;default:'buyer'"`
	Status       UserStatus `gorm:"type:varchar(10);not null;default:'pending'"`
	Company      string     `gorm:"type:varchar(80)"`
	Position     string     `gorm:"type:varchar(60)"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new pending user; the account activates once the email
// confirmation token is redeemed.
func NewUser(email, password string, userType UserType) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if userType == "" {
		userType = UserTypeBuyer
	}
	if !userType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "User type must be buyer or shop")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		Type:              userType,
		Status:            UserStatusPending,
	}, nil
}

// VerifyPassword checks the password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Activate marks the account active after email confirmation
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Account is already active")
	}

	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordLoginSuccess updates the last-login timestamp
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// IsActive returns true if the account may authenticate
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsShop returns true for shop operator accounts
func (u *User) IsShop() bool {
	return u.Type == UserTypeShop
}

// IsBuyer returns true for buyer accounts
func (u *User) IsBuyer() bool {
	return u.Type == UserTypeBuyer
}

// SetProfile sets the optional company/position fields
func (u *User) SetProfile(company, position string) {
	u.Company = company
	u.Position = position
	u.UpdatedAt = time.Now()
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 255 || !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
