// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Todo model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a todo is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - CreateTodo(ctx, db, title) -> *domain.Todo, error
//     Inserts a new Todo row with UUID primary key and UTC timestamps.
//
//   - GetTodo(ctx, db, id) -> *domain.Todo, error
//     Fetches a single todo by ID, or ErrNotFound if missing.
//
//   - FindTodoByTitle(ctx, db, title) -> *domain.Todo, error
//     Fetches the first todo whose title matches exactly (case-sensitive),
//     or ErrNotFound.
//
//   - ListTodos(ctx, db) -> []domain.Todo, error
//     Returns every todo, ordered by creation time descending.
//
//   - CountTodos(ctx, db) -> (int64, error)
//     Returns the total number of todos.
//
//   - UpdateTodoTitle(ctx, db, id, title) -> error
//     Updates the title of one todo; ErrNotFound when no row matched.
//     Callers are expected to pre-check existence.
//
//   - DeleteTodos(ctx, db, id) -> (int64, error)
//     Removes all rows matching the id and returns the deletion count.
//     Zero matches is a successful outcome, not an error.
//
//   - IsValidID(id) -> bool
//     Structural validity of an identifier string, independent of existence.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.TodoService) which enforces business rules and maps
// persistence errors to service-level sentinels.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-todo-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateTodo inserts a new Todo row with the given title. The id is a
// randomly generated UUID (string) and both timestamps are set to UTC now.
//
// On success, it returns the persisted Todo including the generated fields.
// On failure, it returns a DB error.
//
// Note: title uniqueness is checked by the validation layer before this
// call; there is no storage-level constraint, so two concurrent creates
// with the same title can both succeed. This race is a documented
// limitation of the check-then-insert design.
func CreateTodo(ctx context.Context, db *gorm.DB, title string) (*domain.Todo, error) {
	now := time.Now().UTC()
	t := &domain.Todo{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTodo fetches a single todo by its ID. If the record does not exist,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetTodo(ctx context.Context, db *gorm.DB, id string) (*domain.Todo, error) {
	var t domain.Todo
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindTodoByTitle returns the first todo whose title equals the given value
// exactly (case-sensitive). If none matches, it returns ErrNotFound.
func FindTodoByTitle(ctx context.Context, db *gorm.DB, title string) (*domain.Todo, error) {
	var t domain.Todo
	err := db.WithContext(ctx).
		Where("title = ?", title).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTodos returns all todos ordered by creation time descending (most
// recent first). It returns an empty slice when the collection is empty.
// On DB error, it returns the error.
func ListTodos(ctx context.Context, db *gorm.DB) ([]domain.Todo, error) {
	var out []domain.Todo
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CountTodos returns the total number of todos. On DB error, it returns
// the error.
func CountTodos(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Todo{}).
		Count(&total).Error
	return total, err
}

// UpdateTodoTitle applies a partial update changing the title (and
// UpdatedAt) of the todo identified by id. If no rows are affected, it
// returns ErrNotFound. On DB error, the raw error is returned.
func UpdateTodoTitle(ctx context.Context, db *gorm.DB, id, title string) error {
	res := db.WithContext(ctx).
		Model(&domain.Todo{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":      title,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTodos removes all todos matching id and returns the number of rows
// deleted. Matching zero rows is not an error; callers that care about
// existence inspect the returned count.
func DeleteTodos(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Todo{})
	return res.RowsAffected, res.Error
}

// IsValidID reports whether id is structurally a valid todo identifier
// (UUID form). It says nothing about whether such a todo exists.
func IsValidID(id string) bool {
	return uuid.Validate(id) == nil
}
