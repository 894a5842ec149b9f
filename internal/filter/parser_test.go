package filter

import (
	"testing"

	apperrors "task-cli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(f Field, v string) Leaf { return Leaf{Field: f, Value: v} }

func TestParse_Blank(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		p, err := Parse(in)
		require.NoError(t, err)
		assert.Nil(t, p)
	}
}

func TestParse_Structure(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Predicate
	}{
		{
			name:     "single clause",
			input:    "status:done",
			expected: leaf(FieldStatus, "done"),
		},
		{
			name:     "field names are case-insensitive",
			input:    "STATUS:done",
			expected: leaf(FieldStatus, "done"),
		},
		{
			name:     "and",
			input:    "status:done AND due:today",
			expected: And{Terms: []Predicate{leaf(FieldStatus, "done"), leaf(FieldDue, "today")}},
		},
		{
			name:     "operators are case-insensitive",
			input:    "status:done and tag:work or tag:home",
			expected: Or{Terms: []Predicate{And{Terms: []Predicate{leaf(FieldStatus, "done"), leaf(FieldTag, "work")}}, leaf(FieldTag, "home")}},
		},
		{
			name:  "and binds tighter than or",
			input: "status:pending OR status:doing AND urgency:high",
			expected: Or{Terms: []Predicate{
				leaf(FieldStatus, "pending"),
				And{Terms: []Predicate{leaf(FieldStatus, "doing"), leaf(FieldUrgency, "high")}},
			}},
		},
		{
			name:  "parentheses override precedence",
			input: "(status:pending OR status:doing) AND urgency:high",
			expected: And{Terms: []Predicate{
				Or{Terms: []Predicate{leaf(FieldStatus, "pending"), leaf(FieldStatus, "doing")}},
				leaf(FieldUrgency, "high"),
			}},
		},
		{
			name:     "fully wrapping parentheses",
			input:    "((status:done))",
			expected: leaf(FieldStatus, "done"),
		},
		{
			name:  "adjacent groups",
			input: "(tag:work)AND(tag:home OR tag:errands)",
			expected: And{Terms: []Predicate{
				leaf(FieldTag, "work"),
				Or{Terms: []Predicate{leaf(FieldTag, "home"), leaf(FieldTag, "errands")}},
			}},
		},
		{
			name:  "nested same-kind groups flatten",
			input: "(tag:a AND tag:b) AND (tag:c AND tag:d)",
			expected: And{Terms: []Predicate{
				leaf(FieldTag, "a"), leaf(FieldTag, "b"), leaf(FieldTag, "c"), leaf(FieldTag, "d"),
			}},
		},
		{
			name:     "multi-word value",
			input:    "title:buy milk AND status:pending",
			expected: And{Terms: []Predicate{leaf(FieldTitle, "buy milk"), leaf(FieldStatus, "pending")}},
		},
		{
			name:     "quoted value",
			input:    `title:"call bob (re: invoice)" OR title:"and"`,
			expected: Or{Terms: []Predicate{leaf(FieldTitle, "call bob (re: invoice)"), leaf(FieldTitle, "and")}},
		},
		{
			name:     "value with colon",
			input:    "id:abc:def",
			expected: leaf(FieldID, "abc:def"),
		},
		{
			name:     "continuation word with colon",
			input:    "title:meet at 10:30",
			expected: leaf(FieldTitle, "meet at 10:30"),
		},
		{
			name:     "continuation word with unknown prefix",
			input:    "title:re foo:bar AND tag:work",
			expected: And{Terms: []Predicate{leaf(FieldTitle, "re foo:bar"), leaf(FieldTag, "work")}},
		},
		{
			name:     "continuation word naming a field",
			input:    "title:meet at 10:30 OR Tag:work",
			expected: Or{Terms: []Predicate{leaf(FieldTitle, "meet at 10:30"), leaf(FieldTag, "work")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse("foo:bar")
	require.ErrorIs(t, err, apperrors.ErrUnknownFilterField)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	field, _ := appErr.GetContext("field")
	assert.Equal(t, "foo", field)
	valid, _ := appErr.GetContext("valid_fields")
	assert.Equal(t, []string{"title", "urgency", "status", "tag", "due", "id"}, valid)
	assert.Contains(t, err.Error(), "title, urgency, status, tag, due, id")
}

func TestParse_UnknownFieldInsideGroup(t *testing.T) {
	_, err := Parse("status:done AND (tag:work OR priority:high)")
	assert.ErrorIs(t, err, apperrors.ErrUnknownFilterField)
}

func TestParse_MalformedClause(t *testing.T) {
	for _, in := range []string{"done", "status:", "status: AND tag:work", `"status:done"`} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.ErrorIs(t, err, apperrors.ErrMalformedClause)
		})
	}
}

func TestParse_MalformedFilter(t *testing.T) {
	tests := []struct {
		input  string
		reason string
	}{
		{"(status:done", "missing ')'"},
		{"status:done)", "unbalanced ')'"},
		{"status:done AND", "expected a clause"},
		{"AND status:done", "expected a clause"},
		{"status:done OR OR tag:work", "expected a clause"},
		{"()", "empty parentheses"},
		{"status:done tag:work", "expected AND or OR"},
		{`title:"unterminated`, "unterminated quote"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.ErrorIs(t, err, apperrors.ErrMalformedFilter)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestPredicate_String(t *testing.T) {
	p, err := Parse("(status:pending OR status:doing) AND title:buy milk")
	require.NoError(t, err)
	assert.Equal(t, `(status:pending OR status:doing) AND title:"buy milk"`, p.String())

	again, err := Parse(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestLeaves(t *testing.T) {
	p, err := Parse("tag:a OR (tag:b AND due:today) OR id:x")
	require.NoError(t, err)
	assert.Equal(t, []Leaf{
		leaf(FieldTag, "a"), leaf(FieldTag, "b"), leaf(FieldDue, "today"), leaf(FieldID, "x"),
	}, Leaves(p))
	assert.Nil(t, Leaves(nil))
}
