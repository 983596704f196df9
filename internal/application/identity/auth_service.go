package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/identity"
	"github.com/retailhub/backend/internal/domain/shared"
	"github.com/retailhub/backend/internal/infrastructure/auth"
	"github.com/retailhub/backend/internal/infrastructure/notification"
	"go.uber.org/zap"
)

// AuthService handles registration, email confirmation and authentication
type AuthService struct {
	userRepo   identity.UserRepository
	tokenRepo  identity.ConfirmTokenRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	sender     notification.Sender
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	tokenRepo identity.ConfirmTokenRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	sender notification.Sender,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		sender:     sender,
		logger:     logger,
	}
}

// Register creates a pending account and issues its confirmation token
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	userType := identity.UserType(req.Type)
	if req.Type == "" {
		userType = identity.UserTypeBuyer
	}

	user, err := identity.NewUser(req.Email, req.Password, userType)
	if err != nil {
		return nil, err
	}
	user.SetProfile(req.Company, req.Position)

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	token, err := identity.NewConfirmToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		return nil, err
	}

	if err := s.sender.RegistrationConfirm(ctx, user.Email, token.Key); err != nil {
		// the account exists either way, the user can request a resend
		s.logger.Warn("Confirmation delivery failed",
			zap.String("email", user.Email),
			zap.Error(err))
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("type", string(user.Type)))

	return &RegisterResult{
		UserID: user.ID,
		Email:  user.Email,
		Status: string(user.Status),
	}, nil
}

// Confirm redeems an email confirmation token and activates the account
func (s *AuthService) Confirm(ctx context.Context, req ConfirmRequest) error {
	token, err := s.tokenRepo.FindByKey(ctx, req.Key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("TOKEN_INVALID", "Confirmation token is invalid")
		}
		return err
	}

	if err := token.Redeem(); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	if err := user.Activate(); err != nil {
		return err
	}

	if err := s.tokenRepo.Save(ctx, token); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Account activated", zap.String("user_id", user.ID.String()))
	return nil
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, invalidCredentials()
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, invalidCredentials()
	}

	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_PENDING", "Account is awaiting email confirmation")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: string(user.Type),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// login still succeeds, only the timestamp is lost
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, invalidCredentials()
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_PENDING", "Account is awaiting email confirmation")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: string(user.Type),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" || input.TokenTTL <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}

	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetUser returns account details
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// UpdateProfile changes the account's company and position fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.SetProfile(req.Company, req.Position)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	info := toUserInfo(user)
	return &info, nil
}

func invalidCredentials() error {
	return shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
}
