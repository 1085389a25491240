package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-todo-backend/internal/domain"
)

func TestGetIdempotency_EmptyKeyIsNotFound(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Idempotency{})
	_, err := GetIdempotency(context.Background(), db, "  ", time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateAndGetIdempotency_RoundTrip(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Idempotency{})

	rec, err := CreateIdempotency(context.Background(), db, "key-1", "todo-1", 201, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.ID == "" || rec.Key != "key-1" || rec.TodoID != "todo-1" || rec.Status != 201 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !rec.ExpiresAt.After(rec.CreatedAt) {
		t.Fatalf("ExpiresAt should be after CreatedAt: %+v", rec)
	}

	got, err := GetIdempotency(context.Background(), db, "key-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetIdempotency: %v", err)
	}
	if got.TodoID != "todo-1" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestGetIdempotency_ExpiredRecordIsNotFound(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Idempotency{})

	if _, err := CreateIdempotency(context.Background(), db, "key-exp", "todo-1", 201, time.Millisecond); err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	// Query from well past the TTL window.
	_, err := GetIdempotency(context.Background(), db, "key-exp", time.Now().UTC().Add(time.Hour))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired record to be ErrNotFound, got %v", err)
	}
}

func TestCreateIdempotency_DuplicateKey(t *testing.T) {
	db := newTodoRepoDB(t, &domain.Idempotency{})

	if _, err := CreateIdempotency(context.Background(), db, "key-dup", "todo-1", 201, time.Hour); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := CreateIdempotency(context.Background(), db, "key-dup", "todo-2", 201, time.Hour)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}
