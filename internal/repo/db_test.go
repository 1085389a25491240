package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tbourn/go-todo-backend/internal/domain"
)

func TestOpenSQLite_CreatesFileAndMigrationsWork(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	// The schema should be usable end to end.
	todo, err := CreateTodo(context.Background(), db, "first")
	if err != nil {
		t.Fatalf("CreateTodo after migrate: %v", err)
	}
	got, err := GetTodo(context.Background(), db, todo.ID)
	if err != nil || got.Title != "first" {
		t.Fatalf("round-trip: got=%+v err=%v", got, err)
	}

	// Idempotency table must exist too.
	if db.Migrator().HasTable(&domain.Idempotency{}) == false {
		t.Fatal("idempotency table missing after migrate")
	}
}

func TestOpenSQLite_MissingParentDirFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist", "todos.db")
	if _, err := OpenSQLite(path); err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}
