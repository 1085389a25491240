// Per-endpoint rule sets for the todo API.
//
// Each constructor declares the ordered rules for one endpoint, closing
// over the already-parsed request values. Declaration order fixes the order
// in which failures are reported.
package validation

import (
	"context"
	"strings"

	"github.com/tbourn/go-todo-backend/internal/i18n"
	"github.com/tbourn/go-todo-backend/internal/repo"
)

// TitleIndex answers whether a todo title is already taken. It is the only
// repository capability the rule sets need; the service layer implements it.
type TitleIndex interface {
	TitleTaken(ctx context.Context, title string) (bool, error)
}

// titleNotEmpty fails when the title is empty or whitespace-only.
func titleNotEmpty(title string) Rule {
	return Rule{
		Field:      "title",
		MessageKey: i18n.KeyInvalidTitle,
		Check: func(context.Context) (bool, error) {
			return strings.TrimSpace(title) != "", nil
		},
	}
}

// idWellFormed fails when the path id is not structurally a valid
// identifier. Existence is checked later by the handler, not here.
func idWellFormed(id string) Rule {
	return Rule{
		Field:      "id",
		MessageKey: i18n.KeyInvalidTaskID,
		Check: func(context.Context) (bool, error) {
			return repo.IsValidID(id), nil
		},
	}
}

// CreateTodoRules validates POST /todo: the title must be non-empty and not
// already present in the collection (case-sensitive exact match).
//
// The uniqueness rule and the subsequent insert are two separate store
// operations; two concurrent creates with the same title can both pass the
// rule. The race is accepted and documented, matching the lack of a
// storage-level constraint.
func CreateTodoRules(idx TitleIndex, title string) []Rule {
	return []Rule{
		titleNotEmpty(title),
		{
			Field:      "title",
			MessageKey: i18n.KeyDuplicateTitle,
			Check: func(ctx context.Context) (bool, error) {
				// Stored titles are trimmed, so the lookup must use the
				// trimmed value or whitespace variants slip past the check.
				trimmed := strings.TrimSpace(title)
				// An empty title already fails the presence rule; skip the
				// lookup so the outcome lists one failure per cause.
				if trimmed == "" {
					return true, nil
				}
				taken, err := idx.TitleTaken(ctx, trimmed)
				if err != nil {
					return false, err
				}
				return !taken, nil
			},
		},
	}
}

// UpdateTodoRules validates PUT /todo/:id: non-empty title and a
// structurally valid path id.
func UpdateTodoRules(title, id string) []Rule {
	return []Rule{
		titleNotEmpty(title),
		idWellFormed(id),
	}
}

// GetTodoRules validates GET /todo/:id: structural id validity only.
func GetTodoRules(id string) []Rule {
	return []Rule{idWellFormed(id)}
}

// DeleteTodoRules validates DELETE /todo/:id: structural id validity only.
func DeleteTodoRules(id string) []Rule {
	return []Rule{idWellFormed(id)}
}
