package domain

// SortField is a whitelisted column tasks can be ordered by.
type SortField string

const (
	SortByDue     SortField = "due"
	SortByUrgency SortField = "urgency"
)

// ValidSortFields returns the sortable fields.
func ValidSortFields() []string {
	return []string{string(SortByDue), string(SortByUrgency)}
}

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec is a whitelisted field plus direction. Tasks missing the sort
// field are always ordered last, whichever the direction.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort orders by urgency rank, most urgent first.
func DefaultSort() SortSpec {
	return SortSpec{Field: SortByUrgency, Direction: SortAsc}
}

// IsDescending reports whether the direction is desc.
func (s SortSpec) IsDescending() bool {
	return s.Direction == SortDesc
}

func (s SortSpec) String() string {
	return string(s.Field) + ":" + string(s.Direction)
}
