package lifecycle

import (
	"regexp"
	"strings"

	"request-tracker/internal/domain"
)

// Field is a searchable request attribute. Unknown keys are rejected at
// parse time, not at match time.
type Field string

const (
	FieldID       Field = "id"
	FieldTitle    Field = "title"
	FieldAssignee Field = "assignee"
	FieldStatus   Field = "status"
	FieldPriority Field = "priority"
	FieldCreator  Field = "creator"
	FieldSystem   Field = "system"
)

type Condition struct {
	Field Field
	Value string
}

// Query is either a plain substring search or, when the input carries
// key=value tokens, a set of per-field conditions. AND and OR join
// tokens but both combine conjunctively; the distinction is accepted and
// ignored.
type Query struct {
	raw        string
	conditions []Condition
}

var operatorSplit = regexp.MustCompile(`(?i)\s+(?:AND|OR)\s+`)

func ParseQuery(s string) (Query, error) {
	q := Query{raw: strings.ToLower(strings.TrimSpace(s))}
	if q.raw == "" {
		return q, nil
	}

	for _, part := range operatorSplit.Split(q.raw, -1) {
		if !strings.Contains(part, "=") {
			continue
		}

		kv := strings.SplitN(part, "=", 2)
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])

		field := Field(key)
		switch field {
		case FieldID, FieldTitle, FieldAssignee, FieldStatus, FieldPriority, FieldCreator, FieldSystem:
		default:
			return Query{}, &domain.ValidationError{Action: "search", Field: key, Reason: "unknown search field"}
		}

		q.conditions = append(q.conditions, Condition{Field: field, Value: value})
	}

	return q, nil
}

func (q Query) Empty() bool { return q.raw == "" }

// Conditions exposes the parsed per-field filters.
func (q Query) Conditions() []Condition { return q.conditions }

func (q Query) Match(r domain.Request) bool {
	if q.raw == "" {
		return true
	}
	if len(q.conditions) > 0 {
		return q.matchConditions(r)
	}
	return q.matchSubstring(r)
}

func (q Query) matchSubstring(r domain.Request) bool {
	for _, field := range []string{
		r.ID,
		r.Title,
		r.Description,
		string(r.Status),
		string(r.Priority),
		r.System,
		r.CreatedByName,
	} {
		if strings.Contains(strings.ToLower(field), q.raw) {
			return true
		}
	}
	for _, name := range r.AssignedDeveloperNames {
		if strings.Contains(strings.ToLower(name), q.raw) {
			return true
		}
	}
	return false
}

func (q Query) matchConditions(r domain.Request) bool {
	for _, c := range q.conditions {
		switch c.Field {
		case FieldID:
			if !strings.Contains(strings.ToLower(r.ID), c.Value) {
				return false
			}
		case FieldTitle:
			if !strings.Contains(strings.ToLower(r.Title), c.Value) {
				return false
			}
		case FieldAssignee:
			if !anyContains(r.AssignedDeveloperNames, c.Value) {
				return false
			}
		case FieldStatus:
			if strings.ToLower(string(r.Status)) != c.Value {
				return false
			}
		case FieldPriority:
			if strings.ToLower(string(r.Priority)) != c.Value {
				return false
			}
		case FieldCreator:
			if !strings.Contains(strings.ToLower(r.CreatedByName), c.Value) {
				return false
			}
		case FieldSystem:
			if !strings.Contains(strings.ToLower(r.System), c.Value) {
				return false
			}
		}
	}
	return true
}

func anyContains(values []string, sub string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), sub) {
			return true
		}
	}
	return false
}
