// Package validation implements the request validation pipeline shared by
// every todo endpoint: ordered, named field rules whose failures are
// accumulated into a single outcome rather than short-circuiting on the
// first violation.
//
// A Rule is a predicate over the incoming request. Rules may consult the
// repository (e.g. the duplicate-title check), which is why Check receives
// a context and may fail with a store error; such errors abort evaluation
// and surface as internal errors, never as field failures.
package validation

import "context"

// Failure is a single field-level rule violation. MessageKey addresses the
// localized text via the i18n catalog; the raw key is also part of the API
// contract for clients that localize on their side.
type Failure struct {
	Field      string
	MessageKey string
}

// Rule is a named, possibly repository-backed predicate over a request.
// Check returns true when the rule passes. A non-nil error means the rule
// could not be evaluated (store failure) and is distinct from a violation.
type Rule struct {
	Field      string
	MessageKey string
	Check      func(ctx context.Context) (bool, error)
}

// Evaluate runs every rule in declaration order and returns the accumulated
// failures. It never stops early on a violation: a request with two invalid
// fields reports both. It does stop on a Check error, returning it so the
// caller can map it to a generic server error before any mutation happens.
//
// An empty slice signals a fully valid request.
func Evaluate(ctx context.Context, rules []Rule) ([]Failure, error) {
	failures := make([]Failure, 0, len(rules))
	for _, r := range rules {
		passed, err := r.Check(ctx)
		if err != nil {
			return nil, err
		}
		if !passed {
			failures = append(failures, Failure{Field: r.Field, MessageKey: r.MessageKey})
		}
	}
	return failures, nil
}
