package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-todo-api/internal/domain"
	"github.com/go-todo-api/internal/pkg/id"
	"github.com/go-todo-api/internal/pkg/password"
	"github.com/go-todo-api/internal/pkg/validate"
)

// Service implements the sign-up and sign-in flows. Both return a signed
// bearer token on success; neither ever returns the stored hash.
type Service interface {
	SignUp(ctx context.Context, req domain.SignUpRequest) (string, error)
	SignIn(ctx context.Context, req domain.SignInRequest) (string, error)
}

// userStore is the credential-store contract: lookup by email and insert.
// The store owns the uniqueness constraint; a duplicate insert must come
// back wrapping domain.ErrConflict.
type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
}

type tokenSigner interface {
	Sign(userID string) (string, error)
}

type service struct {
	users  userStore
	signer tokenSigner
}

func NewService(users userStore, signer tokenSigner) Service {
	return &service{users: users, signer: signer}
}

func (s *service) SignUp(ctx context.Context, req domain.SignUpRequest) (string, error) {
	if err := validate.Struct(&req); err != nil {
		return "", fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}

	_, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return "", fmt.Errorf("account already exists: %w", domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		// Store failure, not "email is free". Propagate as-is so the
		// handler maps it to an internal error, not a conflict.
		return "", err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return "", err
	}
	u := &domain.User{
		UserID:       id.New(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Put(ctx, u); err != nil {
		// A concurrent sign-up with the same email loses the race here and
		// gets the same conflict as the pre-check.
		return "", err
	}
	return s.signer.Sign(u.UserID)
}

func (s *service) SignIn(ctx context.Context, req domain.SignInRequest) (string, error) {
	if err := validate.Struct(&req); err != nil {
		return "", fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same error as a wrong password so responses don't reveal
			// which emails are registered.
			return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return "", err
	}
	if !password.Verify(req.Password, u.PasswordHash) {
		return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return s.signer.Sign(u.UserID)
}
