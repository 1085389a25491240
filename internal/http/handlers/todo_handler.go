// Todo HTTP handlers.
//
// This file exposes the REST endpoints for the todo resource:
//   - POST   /todo       (create)
//   - GET    /todo       (list, ETag support)
//   - GET    /todo/{id}  (fetch one)
//   - PUT    /todo/{id}  (rename)
//   - DELETE /todo/{id}  (remove)
//
// Handlers are transport-thin and all follow the same linear shape:
// evaluate the endpoint's validation rule set, render the accumulated
// failures as a 400 envelope when present, otherwise perform exactly one
// service operation and map its result to an HTTP response. No mutation is
// ever attempted while the failure list is non-empty.
//
// Idempotency:
// If the client supplies an Idempotency-Key header on POST /todo and a
// previous successful result exists for that key, the handler returns the
// originally created todo and sets `Idempotency-Replayed: true`.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-todo-backend/internal/domain"
	"github.com/tbourn/go-todo-backend/internal/http/middleware"
	"github.com/tbourn/go-todo-backend/internal/i18n"
	"github.com/tbourn/go-todo-backend/internal/repo"
	"github.com/tbourn/go-todo-backend/internal/services"
	"github.com/tbourn/go-todo-backend/internal/validation"
)

//
// Service contract (context-aware)
//

// TodoService defines the todo lifecycle operations consumed by HTTP
// handlers. It also carries the TitleTaken capability consumed by the
// create rule set (see validation.TitleIndex).
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type TodoService interface {
	// Create persists a new todo with the given title.
	Create(ctx context.Context, title string) (*domain.Todo, error)
	// Get fetches a todo by id; ErrTodoNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Todo, error)
	// List returns the whole collection (never nil).
	List(ctx context.Context) ([]domain.Todo, error)
	// UpdateTitle renames a todo and returns the updated entity.
	UpdateTitle(ctx context.Context, id, title string) (*domain.Todo, error)
	// Delete removes matching rows and reports the deletion count.
	Delete(ctx context.Context, id string) (int64, error)
	// TitleTaken reports whether a title already exists (exact match).
	TitleTaken(ctx context.Context, title string) (bool, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the todo resource. It depends on
// an abstract service interface to keep transport concerns separate from
// business logic.
type Handlers struct {
	todoSvc TodoService

	// IdempotencyTTL bounds how long a stored create result can be
	// replayed. Zero falls back to 24h.
	IdempotencyTTL time.Duration
}

// New constructs a Handlers instance bound to the given service.
func New(todoSvc TodoService) *Handlers {
	return &Handlers{todoSvc: todoSvc}
}

// svcDB returns the underlying store handle when the concrete TodoService
// is in use. Optional features (ETag pre-checks, idempotency records) are
// skipped gracefully when a test stub without a DB is injected.
func (h *Handlers) svcDB() *gorm.DB {
	if svc, ok := h.todoSvc.(*services.TodoService); ok {
		return svc.DB
	}
	return nil
}

//
// DTOs
//

// CreateTodoRequest is the JSON payload for creating a todo.
type CreateTodoRequest struct {
	// Title is the task title. It must be non-empty and not already in use.
	Title string `json:"title" example:"Buy groceries"`
}

// UpdateTodoRequest is the JSON payload for renaming a todo.
type UpdateTodoRequest struct {
	// Title is the new task title. It must be non-empty.
	Title string `json:"title" example:"Buy groceries and milk"`
}

//
// Handlers
//

// CreateTodo godoc
// @ID          createTodo
// @Summary     Create a new todo
// @Description Creates a todo with a unique, non-empty title. All rule
// @Description failures are accumulated and reported together.
// @Description Supports idempotency via the Idempotency-Key header (same key → same todo).
// @Tags        Todos
// @Accept      json
// @Produce     json
//
// @Param       Accept-Language  header  string  false "Preferred locale for error messages"  example(es)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"
// @Param       body             body    handlers.CreateTodoRequest  true  "Create todo payload"
//
// @Success     201  {object}  domain.Todo
// @Failure     400  {object}  handlers.ValidationErrorResponse  "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse            "Internal error"
// @Router      /todo [post]
func (h *Handlers) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	loc := middleware.LocalizerFrom(c)

	// A malformed body leaves the title empty and lets the presence rule
	// report it as a field failure, like any other invalid input.
	var req CreateTodoRequest
	_ = c.ShouldBindJSON(&req)

	// Trim once here so the uniqueness lookup and the insert compare the
	// same value; stored titles are always trimmed.
	title := strings.TrimSpace(req.Title)

	// Idempotency (replay path). Checked before validation: the first
	// request already persisted the title, so a retry would otherwise
	// trip the duplicate rule instead of replaying.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" {
		if db := h.svcDB(); db != nil {
			if rec, err := repo.GetIdempotency(ctx, db, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if prev, err2 := repo.GetTodo(ctx, db, rec.TodoID); err2 == nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, http.StatusCreated, prev)
					return
				}
			}
		}
	}

	failures, err := validation.Evaluate(ctx, validation.CreateTodoRules(h.todoSvc, title))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, loc.Message(i18n.KeyInternalError))
		return
	}
	if len(failures) > 0 {
		failValidation(c, loc, failures)
		return
	}

	t, err := h.todoSvc.Create(ctx, title)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" {
		if db := h.svcDB(); db != nil {
			ttl := h.IdempotencyTTL
			if ttl <= 0 {
				ttl = 24 * time.Hour
			}
			_, _ = repo.CreateIdempotency(ctx, db, idemKey, t.ID, http.StatusCreated, ttl)
		}
	}

	ok(c, http.StatusCreated, t)
}

// collectionETag derives a weak validator from the collection stats.
// Nanosecond precision: two updates landing within the same second must
// still produce distinct tags, or a conditional GET would serve stale data.
func collectionETag(count int64, maxUpdated *time.Time) string {
	var ts int64
	if maxUpdated != nil {
		ts = maxUpdated.UnixNano()
	}
	return fmt.Sprintf(`W/"todos:%d:%d"`, count, ts)
}

// ListTodos godoc
// @ID          listTodos
// @Summary     List all todos
// @Description Returns every todo. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Todos
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}  domain.Todo
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /todo [get]
func (h *Handlers) ListTodos(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if db := h.svcDB(); db != nil {
		count, maxTS, err := repo.TodosStats(ctx, db)
		if err == nil {
			etag := collectionETag(count, maxTS)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.todoSvc.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetTodo godoc
// @ID          getTodo
// @Summary     Fetch a todo by id
// @Description Returns the todo, or an empty JSON object when no todo has
// @Description this id. The empty object is the deliberate non-error
// @Description "not found" representation for this endpoint.
// @Tags        Todos
// @Produce     json
//
// @Param       Accept-Language  header  string  false "Preferred locale for error messages"  example(es)
// @Param       id               path    string  true  "Todo ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Todo
// @Failure     400  {object}  handlers.ValidationErrorResponse "Invalid id"
// @Failure     500  {object}  handlers.ErrorResponse           "Internal error"
// @Router      /todo/{id} [get]
func (h *Handlers) GetTodo(c *gin.Context) {
	ctx := c.Request.Context()
	loc := middleware.LocalizerFrom(c)
	id := c.Param("id")

	failures, err := validation.Evaluate(ctx, validation.GetTodoRules(id))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, loc.Message(i18n.KeyInternalError))
		return
	}
	if len(failures) > 0 {
		failValidation(c, loc, failures)
		return
	}

	t, err := h.todoSvc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			// Contract: 200 with an empty object, not a 404. Update uses the
			// opposite convention; the asymmetry is intentional.
			ok(c, http.StatusOK, gin.H{})
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, t)
}

// UpdateTodo godoc
// @ID          updateTodo
// @Summary     Rename a todo
// @Description Updates the title of an existing todo. Rule failures for the
// @Description title and the id are accumulated and reported together.
// @Tags        Todos
// @Accept      json
// @Produce     json
//
// @Param       Accept-Language  header  string  false "Preferred locale for error messages"  example(es)
// @Param       id               path    string  true  "Todo ID (UUID)"  format(uuid)
// @Param       body             body    handlers.UpdateTodoRequest  true  "New title"
//
// @Success     200  {object}  domain.Todo
// @Failure     400  {object}  handlers.ValidationErrorResponse "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse           "Todo not found"
// @Failure     500  {object}  handlers.ErrorResponse           "Internal error"
// @Router      /todo/{id} [put]
func (h *Handlers) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	loc := middleware.LocalizerFrom(c)
	id := c.Param("id")

	var req UpdateTodoRequest
	_ = c.ShouldBindJSON(&req)

	failures, err := validation.Evaluate(ctx, validation.UpdateTodoRules(req.Title, id))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, loc.Message(i18n.KeyInternalError))
		return
	}
	if len(failures) > 0 {
		failValidation(c, loc, failures)
		return
	}

	t, err := h.todoSvc.UpdateTitle(ctx, id, req.Title)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, loc.Message(i18n.KeyTaskNotExist))
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, t)
}

// DeleteTodo godoc
// @ID          deleteTodo
// @Summary     Delete a todo
// @Description Removes the todo with the given id. Deleting an id that does
// @Description not exist is still a successful 204.
// @Tags        Todos
// @Produce     json
//
// @Param       Accept-Language  header  string  false "Preferred locale for error messages"  example(es)
// @Param       id               path    string  true  "Todo ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ValidationErrorResponse "Invalid id"
// @Failure     500  {object}  handlers.ErrorResponse           "Internal error"
// @Router      /todo/{id} [delete]
func (h *Handlers) DeleteTodo(c *gin.Context) {
	ctx := c.Request.Context()
	loc := middleware.LocalizerFrom(c)
	id := c.Param("id")

	failures, err := validation.Evaluate(ctx, validation.DeleteTodoRules(id))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, loc.Message(i18n.KeyInternalError))
		return
	}
	if len(failures) > 0 {
		failValidation(c, loc, failures)
		return
	}

	if _, err := h.todoSvc.Delete(ctx, id); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	noContent(c)
}
