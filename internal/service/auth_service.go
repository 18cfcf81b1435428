package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/supermarket/internal/auth"
	"github.com/rogerio-castellano/supermarket/internal/models"
	"github.com/rogerio-castellano/supermarket/internal/repo"
	"github.com/rs/zerolog"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Address  string
	Contact  string
	Role     string
}

type AuthService struct {
	users  repo.UserRepository
	logger zerolog.Logger
}

func NewAuthService(users repo.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

// Register hashes the password and stores the account. Duplicate emails and
// store failures both surface as ErrPersistence.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return models.User{}, ErrMissingCredentials
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return models.User{}, fmt.Errorf("hash password: %w", ErrPersistence)
	}

	u, err := s.users.CreateUser(ctx, models.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Address:      in.Address,
		Contact:      in.Contact,
		Role:         models.ParseRole(in.Role),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			s.logger.Warn().Str("email", in.Email).Msg("registration with existing email")
		} else {
			s.logger.Error().Err(err).Msg("failed to create user")
		}
		return models.User{}, fmt.Errorf("create user: %w", ErrPersistence)
	}

	s.logger.Info().Int("user_id", u.ID).Str("role", string(u.Role)).Msg("user registered")
	return u, nil
}

// Login checks the credentials. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, ErrMissingCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("failed to load user")
		return models.User{}, fmt.Errorf("load user: %w", ErrPersistence)
	}

	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("check password: %w", ErrPersistence)
	}
	return u, nil
}
