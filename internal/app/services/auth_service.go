package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/config"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/auth"
	"github.com/yigit/skillswap/internal/pkg/email"
)

const minPasswordLength = 6

// AuthService handles registration, login and token checks
type AuthService struct {
	accountRepo  repositories.AccountRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
	ledger       config.LedgerConfig
	logger       zerolog.Logger
	now          func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accountRepo repositories.AccountRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	ledger config.LedgerConfig,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		accountRepo:  accountRepo,
		jwtService:   jwtService,
		emailService: emailService,
		ledger:       ledger,
		logger:       logger,
		now:          time.Now,
	}
}

// normalizeEmail lower-cases and trims an address so lookups are case-insensitive
func normalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Register creates an account holding the opening grant and signs it in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}
	address := normalizeEmail(req.Email)
	if address == "" {
		return nil, apperrors.NewValidationError("email cannot be empty")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Name:         name,
		Email:        address,
		PasswordHash: hash,
		Bio:          strings.TrimSpace(req.Bio),
		Coins:        s.ledger.OpeningGrant,
		OpeningCoins: s.ledger.OpeningGrant,
		LastActiveAt: s.now(),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.logger.Info().Int64("accountID", account.ID).Str("email", account.Email).Msg("Account registered")

	if err := s.emailService.SendWelcomeEmail(account.Email, account.Name, account.Coins); err != nil {
		s.logger.Warn().Err(err).Int64("accountID", account.ID).Msg("Failed to send welcome email")
	}

	return s.issue(account)
}

// Login verifies credentials and returns a bearer token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding account: %w", err)
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		s.logger.Debug().Int64("accountID", account.ID).Msg("Login rejected: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	account.LastActiveAt = s.now()
	if err := s.accountRepo.TouchLastActive(ctx, account.ID, account.LastActiveAt); err != nil {
		s.logger.Warn().Err(err).Int64("accountID", account.ID).Msg("Failed to update last active time")
	}

	return s.issue(account)
}

// Authenticate validates a bearer token and records the account as active
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.TouchLastActive(ctx, claims.UserID, s.now()); err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error updating last active time: %w", err)
	}
	return claims, nil
}

func (s *AuthService) issue(account *models.Account) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(account)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		Account: account,
	}, nil
}
