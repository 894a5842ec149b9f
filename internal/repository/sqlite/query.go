package sqlite

import (
	"fmt"
	"strings"

	"task-cli/internal/domain"
	"task-cli/internal/filter"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so s matches literally under ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// BuildPredicate translates a compiled filter into a SQL boolean expression
// over the joined task columns. Args are ordered to match the placeholders
// in left-to-right tree order.
func BuildPredicate(p filter.Predicate) (string, []interface{}, error) {
	switch n := p.(type) {
	case filter.Leaf:
		return buildLeaf(n)
	case filter.And:
		return buildGroup(n.Terms, " AND ")
	case filter.Or:
		return buildGroup(n.Terms, " OR ")
	case nil:
		return "", nil, fmt.Errorf("nil predicate")
	}
	return "", nil, fmt.Errorf("unsupported predicate %T", p)
}

func buildGroup(terms []filter.Predicate, op string) (string, []interface{}, error) {
	parts := make([]string, 0, len(terms))
	var args []interface{}
	for _, t := range terms {
		sql, a, err := BuildPredicate(t)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, a...)
	}
	return "(" + strings.Join(parts, op) + ")", args, nil
}

func buildLeaf(l filter.Leaf) (string, []interface{}, error) {
	switch l.Field {
	case filter.FieldTitle:
		return casefoldFunc + `(t.title) LIKE ? ESCAPE '\'`, []interface{}{"%" + escapeLike(strings.ToLower(l.Value)) + "%"}, nil
	case filter.FieldUrgency:
		return "u.name = ?", []interface{}{l.Value}, nil
	case filter.FieldStatus:
		return "t.status = ?", []interface{}{l.Value}, nil
	case filter.FieldTag:
		return "g.name = ?", []interface{}{l.Value}, nil
	case filter.FieldDue:
		return "t.due = ?", []interface{}{l.Value}, nil
	case filter.FieldID:
		return "t.id = ?", []interface{}{l.Value}, nil
	}
	return "", nil, fmt.Errorf("unsupported filter field %q", l.Field)
}

// buildOrderBy places rows missing the sort column last in both directions,
// then breaks ties by creation order.
func buildOrderBy(spec domain.SortSpec) (string, error) {
	var column string
	switch spec.Field {
	case domain.SortByDue:
		column = "t.due"
	case domain.SortByUrgency, "":
		column = "u.rank"
	default:
		return "", fmt.Errorf("unsupported sort field %q", spec.Field)
	}

	dir := "ASC"
	switch spec.Direction {
	case domain.SortDesc:
		dir = "DESC"
	case domain.SortAsc, "":
	default:
		return "", fmt.Errorf("unsupported sort direction %q", spec.Direction)
	}

	return fmt.Sprintf("ORDER BY %s IS NULL, %s %s, t.created_at ASC, t.id ASC", column, column, dir), nil
}

// buildTaskQuery assembles the full list query and its bound arguments.
func buildTaskQuery(q TaskQuery) (string, []interface{}, error) {
	var conditions []string
	var args []interface{}

	if !q.IncludeHidden {
		conditions = append(conditions, "(t.hide_until IS NULL OR t.hide_until <= ?)")
		args = append(args, q.Today)
	}

	if q.Predicate != nil {
		sql, predArgs, err := BuildPredicate(q.Predicate)
		if err != nil {
			return "", nil, err
		}
		conditions = append(conditions, sql)
		args = append(args, predArgs...)
	}

	orderBy, err := buildOrderBy(q.Sort)
	if err != nil {
		return "", nil, err
	}

	query := "SELECT " + taskColumns + "\n" + taskFrom
	if len(conditions) > 0 {
		query += "\nWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n" + orderBy

	return query, args, nil
}
