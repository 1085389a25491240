// Package services – TodoService
//
// This file implements the TodoService, which coordinates repository
// operations for the todo lifecycle: create, fetch, list, rename, delete.
// The service is deliberately thin; field-level validation (presence,
// id shape, duplicate titles) runs in the validation pipeline before any
// service call, so each method performs essentially one repository
// operation plus error mapping.
//
// Service-level errors (e.g., ErrTodoNotFound) are returned for predictable
// cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-todo-backend/internal/domain"
)

// TodoRepo defines the repository contract required by TodoService.
// Implementations are responsible for persistence of the todo collection.
type TodoRepo interface {
	// CreateTodo inserts a new todo row, assigning id and timestamps.
	CreateTodo(ctx context.Context, db *gorm.DB, title string) (*domain.Todo, error)

	// GetTodo fetches a todo by ID.
	GetTodo(ctx context.Context, db *gorm.DB, id string) (*domain.Todo, error)

	// FindTodoByTitle fetches the first todo with an exactly matching title.
	FindTodoByTitle(ctx context.Context, db *gorm.DB, title string) (*domain.Todo, error)

	// ListTodos returns the whole collection.
	ListTodos(ctx context.Context, db *gorm.DB) ([]domain.Todo, error)

	// CountTodos returns the collection size.
	CountTodos(ctx context.Context, db *gorm.DB) (int64, error)

	// UpdateTodoTitle updates one todo's title.
	UpdateTodoTitle(ctx context.Context, db *gorm.DB, id, title string) error

	// DeleteTodos removes all rows matching id and reports the count.
	DeleteTodos(ctx context.Context, db *gorm.DB, id string) (int64, error)
}

// TodoService provides todo-level operations. It holds the explicitly
// constructed store handle and a repository implementation; it keeps no
// other state and is safe for concurrent use.
type TodoService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the todo repository used by this service.
	Repo TodoRepo
}

// NewTodoService constructs a TodoService bound to db and r.
func NewTodoService(db *gorm.DB, r TodoRepo) *TodoService {
	return &TodoService{DB: db, Repo: r}
}

// Create inserts a new todo with the trimmed title and returns the
// persisted entity including generated id and timestamps.
func (s *TodoService) Create(ctx context.Context, title string) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return s.Repo.CreateTodo(ctx, s.DB, title)
}

// Get fetches a todo by id, mapping a missing row to ErrTodoNotFound.
func (s *TodoService) Get(ctx context.Context, id string) (*domain.Todo, error) {
	t, err := s.Repo.GetTodo(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns every todo. The result is never nil so the HTTP layer can
// serialize an empty collection as [] rather than null.
func (s *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	items, err := s.Repo.ListTodos(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Todo{}
	}
	return items, nil
}

// UpdateTitle renames a todo. It pre-checks existence so a missing todo
// surfaces as ErrTodoNotFound before any mutation is attempted, then
// returns the updated entity as persisted.
func (s *TodoService) UpdateTitle(ctx context.Context, id, title string) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if _, err := s.Repo.GetTodo(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	if err := s.Repo.UpdateTodoTitle(ctx, s.DB, id, title); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the todo with the given id and returns the number of rows
// deleted. Zero is a valid outcome, not an error.
func (s *TodoService) Delete(ctx context.Context, id string) (int64, error) {
	return s.Repo.DeleteTodos(ctx, s.DB, id)
}

// TitleTaken reports whether a todo with exactly this title already exists.
// It backs the duplicate-title validation rule for POST /todo.
func (s *TodoService) TitleTaken(ctx context.Context, title string) (bool, error) {
	_, err := s.Repo.FindTodoByTitle(ctx, s.DB, title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
