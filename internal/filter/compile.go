package filter

import (
	"time"

	"task-cli/internal/validation"
)

// Compile parses input and canonicalizes every clause value: status and
// urgency are validated and lowercased, tags are normalized, and due values
// are resolved to YYYY-MM-DD relative to today. A blank filter compiles to nil.
func Compile(input string, today time.Time) (Predicate, error) {
	pred, err := Parse(input)
	if err != nil || pred == nil {
		return nil, err
	}
	return normalize(pred, today)
}

func normalize(p Predicate, today time.Time) (Predicate, error) {
	switch n := p.(type) {
	case Leaf:
		return normalizeLeaf(n, today)
	case And:
		terms, err := normalizeAll(n.Terms, today)
		if err != nil {
			return nil, err
		}
		return And{Terms: terms}, nil
	case Or:
		terms, err := normalizeAll(n.Terms, today)
		if err != nil {
			return nil, err
		}
		return Or{Terms: terms}, nil
	}
	return p, nil
}

func normalizeAll(terms []Predicate, today time.Time) ([]Predicate, error) {
	out := make([]Predicate, len(terms))
	for i, t := range terms {
		n, err := normalize(t, today)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func normalizeLeaf(l Leaf, today time.Time) (Leaf, error) {
	switch l.Field {
	case FieldStatus:
		status, err := validation.NormalizeStatus(l.Value)
		if err != nil {
			return Leaf{}, err
		}
		l.Value = string(status)
	case FieldUrgency:
		name, err := validation.NormalizeUrgencyName(l.Value)
		if err != nil {
			return Leaf{}, err
		}
		l.Value = name
	case FieldTag:
		name, err := validation.NormalizeTag(l.Value)
		if err != nil {
			return Leaf{}, err
		}
		l.Value = name
	case FieldDue:
		d, err := validation.ResolveDate("due", l.Value, today)
		if err != nil {
			return Leaf{}, err
		}
		l.Value = d
	}
	return l, nil
}
