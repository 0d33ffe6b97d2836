package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"request-tracker/internal/domain"
)

func searchFixture() domain.Request {
	return domain.Request{
		ID:                     "REQ-001",
		Title:                  "Add export functionality to reports",
		Description:            "Users need Excel export",
		Status:                 domain.StatusInDevelopment,
		Priority:               domain.PriorityHigh,
		System:                 "CRM System",
		CreatedByName:          "Emily Davis",
		AssignedDeveloperNames: []string{"Sarah Johnson"},
	}
}

func TestParseQueryRejectsUnknownField(t *testing.T) {
	_, err := ParseQuery("reporter=emily")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "reporter", validationErr.Field)
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	q, err := ParseQuery("   ")
	require.NoError(t, err)
	assert.True(t, q.Empty())
	assert.True(t, q.Match(searchFixture()))
}

func TestSubstringSearch(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"export", true},
		{"EXPORT", true},
		{"req-001", true},
		{"excel", true},
		{"in_development", true},
		{"sarah", true},
		{"emily", true},
		{"crm", true},
		{"billing", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Match(searchFixture()))
		})
	}
}

func TestFieldSearch(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"status=in_development", true},
		{"status=completed", false},
		// status and priority are exact matches, not substrings
		{"status=in", false},
		{"priority=high", true},
		{"priority=hi", false},
		{"title=export", true},
		{"assignee=sarah", true},
		{"assignee=mike", false},
		{"creator=davis", true},
		{"system=crm", true},
		{"id=001", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Match(searchFixture()))
		})
	}
}

// AND and OR both combine conjunctively.
func TestOperatorsAreConjunctive(t *testing.T) {
	r := searchFixture()

	q, err := ParseQuery("status=in_development AND assignee=sarah")
	require.NoError(t, err)
	assert.True(t, q.Match(r))

	q, err = ParseQuery("status=in_development OR assignee=mike")
	require.NoError(t, err)
	assert.False(t, q.Match(r))

	q, err = ParseQuery("status=in_development or priority=high")
	require.NoError(t, err)
	assert.True(t, q.Match(r))
}
