// Package validation evaluates data-driven rule tables and collects every
// violation instead of stopping at the first one.
package validation

import "github.com/Raymond9734/customer-registry/internal/models"

// Rule is a single (field, predicate, message) entry.
// Check returns true when the subject satisfies the rule. When, if set,
// decides whether the rule applies at all.
type Rule[T any] struct {
	Field   string
	Message string
	Check   func(T) bool
	When    func(T) bool
}

// Rules is an ordered rule table evaluated in a single pass
type Rules[T any] []Rule[T]

// Apply evaluates every rule against subject and records the failures
func (rs Rules[T]) Apply(subject T, errs Errors) {
	for _, rule := range rs {
		if rule.When != nil && !rule.When(subject) {
			continue
		}
		if !rule.Check(subject) {
			errs.Add(rule.Field, rule.Message)
		}
	}
}

// Validate runs the passes in order. A later pass only runs when every
// earlier pass was clean, so cross-field rules can rely on well-formed fields.
func Validate[T any](subject T, passes ...Rules[T]) error {
	errs := Errors{}
	for _, pass := range passes {
		pass.Apply(subject, errs)
		if !errs.Empty() {
			break
		}
	}
	return errs.Err()
}

// Errors maps a field name to its violation messages
type Errors map[string][]string

// Add records a message for field
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no violation was recorded
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Err converts the collected violations into a ValidationError, or nil
func (e Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return models.NewValidationError(map[string][]string(e))
}
