package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/nextstep/nextstep-api/internal/config"
	"github.com/nextstep/nextstep-api/internal/db"
	"github.com/nextstep/nextstep-api/internal/types"
)

// UserService provides business logic for account operations
type UserService struct {
	store          Store
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store Store, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new account with password authentication
func (s *UserService) Register(ctx context.Context, req *types.SignupRequest) (*db.User, error) {
	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, &db.UserCreateInput{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		EmployerFlag: req.EmployerFlag,
	})
	if err != nil {
		if errors.Is(err, db.ErrEmailTaken) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates an account and returns user data
func (s *UserService) Login(ctx context.Context, req *types.SigninRequest) (*db.User, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Security: always return generic error if user not found or password wrong
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}

	// Google-only accounts have no local password
	if user.PasswordHash == "" {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return user, nil
}

// LoginWithGoogle resolves a verified Google identity to a platform account,
// creating the account on first sign-in
func (s *UserService) LoginWithGoogle(ctx context.Context, input *db.GoogleUserInput) (*db.User, error) {
	user, err := s.store.FindOrCreateGoogleUser(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve google user: %w", err)
	}
	return user, nil
}
