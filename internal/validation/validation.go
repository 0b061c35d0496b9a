// Package validation is the declarative schema validator behind every form
// submission. A RuleSet describes the required shape of one record kind;
// Validate evaluates every rule and returns all failures at once so the
// caller can display them together, never failing fast.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Values is the raw field-name → value mapping a form submits.
type Values map[string]any

// Str returns the trimmed string form of a field, or "" when absent.
func (v Values) Str(field string) string {
	switch s := v[field].(type) {
	case string:
		return strings.TrimSpace(s)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}

// Bool returns the boolean form of a field; anything non-bool is false.
func (v Values) Bool(field string) bool {
	b, _ := v[field].(bool)
	return b
}

// Time returns the time form of a field, or the zero time.
func (v Values) Time(field string) time.Time {
	t, _ := v[field].(time.Time)
	return t
}

func (v Values) isEmpty(field string) bool {
	switch x := v[field].(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case time.Time:
		return x.IsZero()
	default:
		return false
	}
}

// Rule is a single declarative constraint: a predicate over the full record
// attributed to one field, with the human-readable message shown when the
// predicate fails.
type Rule struct {
	Field   string
	Message string
	Check   func(v Values) bool
}

// RuleSet is the rule collection for one record kind.
type RuleSet struct {
	Kind  string
	Rules []Rule
}

// Validate evaluates every rule against the record and collects failures
// into a field → message map. The first failing rule for a field supplies
// its message; evaluation still continues over the remaining fields.
func (rs *RuleSet) Validate(v Values) map[string]string {
	errs := make(map[string]string)
	for _, r := range rs.Rules {
		if _, seen := errs[r.Field]; seen {
			continue
		}
		if !r.Check(v) {
			errs[r.Field] = r.Message
		}
	}
	return errs
}

// Required fails when the field is absent, blank, or the zero time.
func Required(field, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v Values) bool {
		return !v.isEmpty(field)
	}}
}

// MinLen applies only when the field has a value; pair with Required for
// mandatory fields.
func MinLen(field string, n int, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v Values) bool {
		s := v.Str(field)
		return s == "" || len(s) >= n
	}}
}

func MaxLen(field string, n int, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v Values) bool {
		return len(v.Str(field)) <= n
	}}
}

// OneOf fails when a present value is outside the closed set.
func OneOf(field string, options []string, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v Values) bool {
		s := v.Str(field)
		if s == "" {
			return true
		}
		for _, o := range options {
			if s == o {
				return true
			}
		}
		return false
	}}
}

// Pattern fails when a present value does not match the expression.
func Pattern(field string, re *regexp.Regexp, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v Values) bool {
		s := v.Str(field)
		return s == "" || re.MatchString(s)
	}}
}

// RequiredWhen is the cross-field conditional: the field must be present
// whenever the predicate over the full record holds.
func RequiredWhen(field, message string, when func(v Values) bool) Rule {
	return Rule{Field: field, Message: message, Check: func(v Values) bool {
		if !when(v) {
			return true
		}
		return !v.isEmpty(field)
	}}
}
