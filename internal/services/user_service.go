package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bee-edu/askbee/internal/auth"
	"github.com/bee-edu/askbee/internal/core"
	"github.com/bee-edu/askbee/internal/models"
)

// UserService is the credential store: it owns user records and token
// issuance.
type UserService struct {
	db     core.DbClient
	tokens *auth.TokenManager
}

func NewUserService(db core.DbClient, tokens *auth.TokenManager) *UserService {
	return &UserService{db: db, tokens: tokens}
}

// Signup creates a user and issues a session token. Duplicate emails fail
// with core.ErrConflict; uniqueness is enforced by the storage layer's
// unique index, not an application-level existence check.
func (s *UserService) Signup(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.db.CreateUser(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// Login checks credentials and issues a session token. Unknown email and
// wrong password both return core.ErrInvalidCredentials so the response
// never reveals which factor failed.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || auth.CheckPassword(user.PasswordHash, password) != nil {
		return "", nil, core.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// VerifyToken validates a bearer token and returns the embedded identity.
func (s *UserService) VerifyToken(token string) (*auth.Claims, error) {
	return s.tokens.VerifyToken(token)
}
