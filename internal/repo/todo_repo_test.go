package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-todo-backend/internal/domain"
)

func newTodoRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("todo_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreateTodo_Error_NoTable(t *testing.T) {
	db := newTodoRepoDB(t /* no migrations */)
	todo, err := CreateTodo(context.Background(), db, "walk the dog")
	if err == nil || todo != nil {
		t.Fatalf("expected error creating without table, got todo=%v err=%v", todo, err)
	}
}

func TestCreateTodo_Success_PersistsAndSetsFields(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Todo{})

	start := time.Now().UTC().Add(-time.Minute)
	todo, err := CreateTodo(context.Background(), db, "walk the dog")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if todo.ID == "" || todo.Title != "walk the dog" {
		t.Fatalf("unexpected Todo fields: %+v", todo)
	}
	if !IsValidID(todo.ID) {
		t.Fatalf("generated id is not a UUID: %q", todo.ID)
	}
	if todo.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset/really old: %v", todo.CreatedAt)
	}
	if !todo.UpdatedAt.Equal(todo.CreatedAt) {
		t.Fatalf("fresh todo should have UpdatedAt == CreatedAt: %v vs %v", todo.UpdatedAt, todo.CreatedAt)
	}
	// round-trip
	var got domain.Todo
	if err := db.First(&got, "id = ?", todo.ID).Error; err != nil {
		t.Fatalf("load created todo: %v", err)
	}
	if got.Title != "walk the dog" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestGetTodo_MissingReturnsErrNotFound(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Todo{})
	_, err := GetTodo(context.Background(), db, "11111111-2222-3333-4444-555555555555")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetTodo_FindsExisting(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Todo{})
	created, err := CreateTodo(context.Background(), db, "read a book")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	got, err := GetTodo(context.Background(), db, created.ID)
	if err != nil {
		t.Fatalf("GetTodo: %v", err)
	}
	if got.ID != created.ID || got.Title != "read a book" {
		t.Fatalf("unexpected todo: %+v", got)
	}
}

func TestFindTodoByTitle_ExactMatchOnly(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Todo{})
	if _, err := CreateTodo(context.Background(), db, "Buy milk"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := FindTodoByTitle(context.Background(), db, "Buy milk"); err != nil {
		t.Fatalf("expected exact title to match: %v", err)
	}
	if _, err := FindTodoByTitle(context.Background(), db, "buy milk"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected case-sensitive miss, got %v", err)
	}
	if _, err := FindTodoByTitle(context.Background(), db, "Buy"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected prefix miss, got %v", err)
	}
}

func TestListTodos_OrderDescending(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Todo{})

	// Seed with known CreatedAt so order is deterministic.
	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC) // oldest
	t2 := t1.Add(1 * time.Hour)
	t3 := t2.Add(1 * time.Hour) // newest
	seed := []domain.Todo{
		{ID: "aaaaaaaa-0000-0000-0000-000000000001", Title: "old", CreatedAt: t1, UpdatedAt: t1},
		{ID: "aaaaaaaa-0000-0000-0000-000000000002", Title: "mid", CreatedAt: t2, UpdatedAt: t2},
		{ID: "aaaaaaaa-0000-0000-0000-000000000003", Title: "new", CreatedAt: t3, UpdatedAt: t3},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	out, err := ListTodos(context.Background(), db)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(out))
	}
	if out[0].Title != "new" || out[1].Title != "mid" || out[2].Title != "old" {
		t.Fatalf("unexpected order: %q %q %q", out[0].Title, out[1].Title, out[2].Title)
	}
}

func TestCountTodos_TracksInsertions(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Todo{})

	n, err := CountTodos(context.Background(), db)
	if err != nil || n != 0 {
		t.Fatalf("empty count: n=%d err=%v", n, err)
	}
	for i := 0; i < 3; i++ {
		if _, err := CreateTodo(context.Background(), db, fmt.Sprintf("task %d", i)); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	n, err = CountTodos(context.Background(), db)
	if err != nil || n != 3 {
		t.Fatalf("count after seed: n=%d err=%v", n, err)
	}
}

func TestUpdateTodoTitle_UpdatesRowAndTimestamp(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Todo{})
	created, err := CreateTodo(context.Background(), db, "before")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Push created/updated into the past so the bump is observable.
	past := time.Now().UTC().Add(-time.Hour)
	if err := db.Model(&domain.Todo{}).Where("id = ?", created.ID).
		Update("updated_at", past).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	if err := UpdateTodoTitle(context.Background(), db, created.ID, "after"); err != nil {
		t.Fatalf("UpdateTodoTitle: %v", err)
	}

	got, err := GetTodo(context.Background(), db, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Title != "after" {
		t.Fatalf("title not updated: %+v", got)
	}
	if !got.UpdatedAt.After(past) {
		t.Fatalf("UpdatedAt not bumped: %v", got.UpdatedAt)
	}
}

func TestUpdateTodoTitle_MissingRowReturnsErrNotFound(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Todo{})
	err := UpdateTodoTitle(context.Background(), db, "11111111-2222-3333-4444-555555555555", "x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTodos_ReportsCountAndZeroIsNotError(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Todo{})
	created, err := CreateTodo(context.Background(), db, "to delete")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	n, err := DeleteTodos(context.Background(), db, created.ID)
	if err != nil || n != 1 {
		t.Fatalf("first delete: n=%d err=%v", n, err)
	}
	// Second delete matches nothing and must still succeed.
	n, err = DeleteTodos(context.Background(), db, created.ID)
	if err != nil || n != 0 {
		t.Fatalf("second delete: n=%d err=%v", n, err)
	}
	if _, err := GetTodo(context.Background(), db, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("row should be gone, got %v", err)
	}
}

func TestIsValidID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"123e4567-e89b-12d3-a456-426614174000", true},
		{"123E4567-E89B-12D3-A456-426614174000", true},
		{"", false},
		{"not-a-uuid", false},
		{"123e4567-e89b-12d3-a456-42661417400", false},   // too short
		{"123e4567-e89b-12d3-a456-4266141740000", false}, // too long
	}
	for _, tc := range cases {
		if got := IsValidID(tc.id); got != tc.want {
			t.Errorf("IsValidID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}
