package todo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-todo-api/internal/domain"
	"github.com/go-todo-api/internal/pkg/id"
	"github.com/go-todo-api/internal/pkg/validate"
)

type Service interface {
	List(ctx context.Context, ownerID string) ([]domain.Todo, error)
	Create(ctx context.Context, ownerID string, req domain.CreateTodoRequest) (*domain.Todo, error)
	Complete(ctx context.Context, ownerID, todoID string) (*domain.Todo, error)
}

type todoStore interface {
	Put(ctx context.Context, t *domain.Todo) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)
	Complete(ctx context.Context, todoID, ownerID string) (*domain.Todo, error)
}

type service struct {
	todos todoStore
}

func NewService(todos todoStore) Service {
	return &service{todos: todos}
}

func (s *service) List(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	return s.todos.ListByOwner(ctx, ownerID)
}

func (s *service) Create(ctx context.Context, ownerID string, req domain.CreateTodoRequest) (*domain.Todo, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	t := &domain.Todo{
		TodoID:    id.New(),
		Task:      req.Task,
		Severity:  req.Severity,
		IsDone:    req.IsDone,
		OwnerID:   ownerID, // always the caller, never from the body
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.todos.Put(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Complete(ctx context.Context, ownerID, todoID string) (*domain.Todo, error) {
	return s.todos.Complete(ctx, todoID, ownerID)
}
