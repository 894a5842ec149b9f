package sqlite

import (
	"testing"

	"task-cli/internal/domain"
	"task-cli/internal/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPredicate(t *testing.T) {
	tests := []struct {
		name         string
		predicate    filter.Predicate
		expectedSQL  string
		expectedArgs []interface{}
	}{
		{
			name:         "status leaf",
			predicate:    filter.Leaf{Field: filter.FieldStatus, Value: "done"},
			expectedSQL:  "t.status = ?",
			expectedArgs: []interface{}{"done"},
		},
		{
			name:         "title is an escaped substring match",
			predicate:    filter.Leaf{Field: filter.FieldTitle, Value: `50%_OFF\`},
			expectedSQL:  `casefold(t.title) LIKE ? ESCAPE '\'`,
			expectedArgs: []interface{}{`%50\%\_off\\%`},
		},
		{
			name: "args follow left-to-right order",
			predicate: filter.And{Terms: []filter.Predicate{
				filter.Or{Terms: []filter.Predicate{
					filter.Leaf{Field: filter.FieldStatus, Value: "pending"},
					filter.Leaf{Field: filter.FieldTag, Value: "work"},
				}},
				filter.Leaf{Field: filter.FieldUrgency, Value: "high"},
				filter.Leaf{Field: filter.FieldDue, Value: "2024-05-10"},
				filter.Leaf{Field: filter.FieldID, Value: "abc"},
			}},
			expectedSQL:  "((t.status = ? OR g.name = ?) AND u.name = ? AND t.due = ? AND t.id = ?)",
			expectedArgs: []interface{}{"pending", "work", "high", "2024-05-10", "abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := BuildPredicate(tt.predicate)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSQL, sql)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestBuildPredicate_Unsupported(t *testing.T) {
	_, _, err := BuildPredicate(filter.Leaf{Field: "priority", Value: "x"})
	assert.Error(t, err)

	_, _, err = BuildPredicate(nil)
	assert.Error(t, err)
}

func TestBuildOrderBy(t *testing.T) {
	tests := []struct {
		spec     domain.SortSpec
		expected string
	}{
		{domain.DefaultSort(), "ORDER BY u.rank IS NULL, u.rank ASC, t.created_at ASC, t.id ASC"},
		{domain.SortSpec{Field: domain.SortByDue, Direction: domain.SortDesc}, "ORDER BY t.due IS NULL, t.due DESC, t.created_at ASC, t.id ASC"},
		{domain.SortSpec{}, "ORDER BY u.rank IS NULL, u.rank ASC, t.created_at ASC, t.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			got, err := buildOrderBy(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := buildOrderBy(domain.SortSpec{Field: "title; DROP TABLE tasks"})
	assert.Error(t, err)
	_, err = buildOrderBy(domain.SortSpec{Field: domain.SortByDue, Direction: "sideways"})
	assert.Error(t, err)
}

func TestBuildTaskQuery_HiddenArgComesFirst(t *testing.T) {
	query, args, err := buildTaskQuery(TaskQuery{
		Predicate: filter.Leaf{Field: filter.FieldStatus, Value: "done"},
		Sort:      domain.DefaultSort(),
		Today:     "2024-05-10",
	})
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE (t.hide_until IS NULL OR t.hide_until <= ?) AND t.status = ?")
	assert.Equal(t, []interface{}{"2024-05-10", "done"}, args)

	query, args, err = buildTaskQuery(TaskQuery{IncludeHidden: true, Sort: domain.DefaultSort()})
	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
