package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (Todo{}).TableName() != "todos" {
		t.Fatalf("Todo.TableName() = %q; want %q", (Todo{}).TableName(), "todos")
	}
	if (Idempotency{}).TableName() != "idempotency" {
		t.Fatalf("Idempotency.TableName() = %q; want %q", (Idempotency{}).TableName(), "idempotency")
	}
}

func TestTodo_JSONFieldNames(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	todo := Todo{
		ID:        "123e4567-e89b-12d3-a456-426614174000",
		Title:     "Buy groceries",
		CreatedAt: now,
		UpdatedAt: now,
	}

	b, err := json.Marshal(todo)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"id"`, `"title"`, `"createdAt"`, `"updatedAt"`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON missing field %s: %s", want, s)
		}
	}
	// Snake case must not leak into the wire format.
	for _, bad := range []string{`"created_at"`, `"updated_at"`} {
		if strings.Contains(s, bad) {
			t.Errorf("JSON contains %s, want camelCase only: %s", bad, s)
		}
	}
}

func TestMigrations_TablesAndIndexes(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Todo{}, &Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	for _, tbl := range []any{&Todo{}, &Idempotency{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&Idempotency{}, "ux_idem_key") {
		t.Fatalf("expected unique index ux_idem_key on idempotency")
	}

	// A round-trip through the schema keeps values intact.
	now := time.Now().UTC().Truncate(time.Second)
	todo := &Todo{ID: "t1", Title: "hello", CreatedAt: now, UpdatedAt: now}
	if err := db.Create(todo).Error; err != nil {
		t.Fatalf("insert todo: %v", err)
	}
	var got Todo
	if err := db.First(&got, "id = ?", "t1").Error; err != nil {
		t.Fatalf("load todo: %v", err)
	}
	if got.Title != "hello" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}
