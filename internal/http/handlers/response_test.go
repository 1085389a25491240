package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/tbourn/go-todo-backend/internal/i18n"
	"github.com/tbourn/go-todo-backend/internal/validation"
)

func TestFail_WritesEnvelopeAndEchoesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	c.Writer.Header().Set("X-Request-ID", "req-42")

	Fail(c, http.StatusNotFound, ErrCodeNotFound, "task not found")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RequestID != "req-42" || resp.Code != ErrCodeNotFound || resp.Message != "task not found" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if !c.IsAborted() {
		t.Fatal("fail must abort the chain")
	}
}

func TestFailValidation_LocalizesEveryFailure(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/todo", nil)

	failures := []validation.Failure{
		{Field: "title", MessageKey: i18n.KeyInvalidTitle},
		{Field: "id", MessageKey: i18n.KeyInvalidTaskID},
	}
	failValidation(c, i18n.ForTag(language.Spanish), failures)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != ErrCodeValidationFailed || resp.Message != "Error de validación" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("expected 2 failures, got %+v", resp.Errors)
	}
	if resp.Errors[0].Message != "Introduzca un título válido" {
		t.Fatalf("field message not localized: %+v", resp.Errors[0])
	}
	if resp.Errors[1].Field != "id" {
		t.Fatalf("failure order not preserved: %+v", resp.Errors)
	}
}

func TestNoContent_EmptyBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/todo/x", nil)

	noContent(c)
	c.Writer.WriteHeaderNow()

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("204 body must be empty, got %q", w.Body.String())
	}
}
