// Package filter compiles list filter expressions such as
//
//	(status:pending OR status:doing) AND urgency:high
//
// into a predicate tree that a storage layer can translate into its own
// query form. AND binds tighter than OR; parentheses override.
package filter

import (
	"strconv"
	"strings"
)

// Field is a task attribute a filter clause can compare against.
type Field string

const (
	FieldTitle   Field = "title"
	FieldUrgency Field = "urgency"
	FieldStatus  Field = "status"
	FieldTag     Field = "tag"
	FieldDue     Field = "due"
	FieldID      Field = "id"
)

// Fields returns the filterable field names.
func Fields() []string {
	return []string{
		string(FieldTitle),
		string(FieldUrgency),
		string(FieldStatus),
		string(FieldTag),
		string(FieldDue),
		string(FieldID),
	}
}

func lookupField(name string) (Field, bool) {
	name = strings.ToLower(name)
	for _, f := range Fields() {
		if name == f {
			return Field(f), true
		}
	}
	return "", false
}

// Predicate is a node of a compiled filter: a Leaf, an And or an Or.
type Predicate interface {
	String() string
	isPredicate()
}

// Leaf compares one field against a value. Title matches by
// case-insensitive substring; every other field matches exactly.
type Leaf struct {
	Field Field
	Value string
}

// And holds when every term holds.
type And struct {
	Terms []Predicate
}

// Or holds when any term holds.
type Or struct {
	Terms []Predicate
}

func (Leaf) isPredicate() {}
func (And) isPredicate()  {}
func (Or) isPredicate()   {}

func (l Leaf) String() string {
	v := l.Value
	if v == "" || strings.ContainsAny(v, " \t\"():") || isOperator(v) {
		v = strconv.Quote(v)
	}
	return string(l.Field) + ":" + v
}

func (a And) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		if _, ok := t.(Or); ok {
			parts[i] = "(" + t.String() + ")"
		} else {
			parts[i] = t.String()
		}
	}
	return strings.Join(parts, " AND ")
}

func (o Or) String() string {
	parts := make([]string, len(o.Terms))
	for i, t := range o.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " OR ")
}

// Leaves returns the leaves of p in left-to-right order.
func Leaves(p Predicate) []Leaf {
	var out []Leaf
	var walk func(Predicate)
	walk = func(p Predicate) {
		switch n := p.(type) {
		case Leaf:
			out = append(out, n)
		case And:
			for _, t := range n.Terms {
				walk(t)
			}
		case Or:
			for _, t := range n.Terms {
				walk(t)
			}
		}
	}
	if p != nil {
		walk(p)
	}
	return out
}
