package service

import (
	"encoding/json"
	"sort"
	"strings"
)

// ValidationError carries the full field → message map produced by a
// schema validation pass, so the client can render every failure at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// DuplicateIdentityError reports an intake submission whose email already
// has an identity record. The existing user rides along so the caller can
// resume the flow instead of dead-ending.
type DuplicateIdentityError struct {
	Existing any
}

func (e *DuplicateIdentityError) Error() string {
	return "a user with this email is already registered"
}

// AuditEntry is the layer-crossing form of an audit record, queued by the
// services and persisted asynchronously.
type AuditEntry struct {
	ActorID      string
	Action       string
	ResourceType string
	ResourceID   string
	IPAddress    string
	Changes      string
}

func changesJSON(pairs map[string]string) string {
	if len(pairs) == 0 {
		return ""
	}
	raw, err := json.Marshal(pairs)
	if err != nil {
		return ""
	}
	return string(raw)
}
