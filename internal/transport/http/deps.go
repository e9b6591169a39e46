package http

import (
	"context"

	"github.com/go-todo-api/internal/domain"
	jwtinfra "github.com/go-todo-api/internal/infrastructure/jwt"
)

// UserRepository is the minimal interface the router requires from a
// credential store: lookup-by-email and insert. The store enforces email
// uniqueness and reports a duplicate insert as domain.ErrConflict.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
}

// TodoRepository is the minimal interface the router requires from a todo store.
type TodoRepository interface {
	Put(ctx context.Context, t *domain.Todo) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)
	Complete(ctx context.Context, todoID, ownerID string) (*domain.Todo, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	TodoRepo    TodoRepository
	JWTProvider *jwtinfra.Provider
}
