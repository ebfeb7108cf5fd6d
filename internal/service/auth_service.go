package service

import (
	"context"
	"fmt"

	"hinglaj-store/internal/auth"
	"hinglaj-store/internal/model"
	"hinglaj-store/internal/repository"

	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	logger   zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a new account. Email and phone must both be unused; only
// the bcrypt hash of the password is stored.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisteredUser, error) {
	if req == nil || req.Name == "" || req.Phone == "" || req.Email == "" || req.Password == "" {
		return nil, model.ValidationError("Missing fields")
	}

	exists, err := s.userRepo.ExistsByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to check existing accounts")
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	if exists {
		s.logger.Warn().Str("email", req.Email).Msg("registration rejected, email or phone taken")
		return nil, model.ErrAlreadyRegistered
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	s.logger.Info().Int("user_id", user.ID).Msg("user registered")

	return &model.RegisteredUser{
		ID:    user.ID,
		Name:  user.Name,
		Phone: user.Phone,
		Email: user.Email,
	}, nil
}

// Login verifies credentials by phone and issues a signed token. Unknown
// phone and wrong password return the same generic error so account
// existence is not leaked.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (string, error) {
	if req == nil || req.Phone == "" || req.Password == "" {
		return "", model.ValidationError("Missing fields")
	}

	user, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user")
		return "", fmt.Errorf("failed to login: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("phone", req.Phone).Msg("login failed")
		return "", model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", user.ID).Msg("failed to issue token")
		return "", fmt.Errorf("failed to login: %w", err)
	}

	s.logger.Info().Int("user_id", user.ID).Msg("user logged in")

	return token, nil
}
