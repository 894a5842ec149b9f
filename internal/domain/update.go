package domain

// Update is a three-state field value for partial updates: unspecified
// (leave as-is), explicit clear, or explicit value. The zero value is
// unspecified.
type Update[T any] struct {
	specified bool
	clear     bool
	value     T
}

// Set returns an update that assigns v.
func Set[T any](v T) Update[T] {
	return Update[T]{specified: true, value: v}
}

// Clear returns an update that removes the current value.
func Clear[T any]() Update[T] {
	return Update[T]{specified: true, clear: true}
}

// IsSpecified reports whether the update changes the field at all.
func (u Update[T]) IsSpecified() bool {
	return u.specified
}

// IsClear reports whether the update removes the field value.
func (u Update[T]) IsClear() bool {
	return u.specified && u.clear
}

// Value returns the assigned value and whether one was assigned.
func (u Update[T]) Value() (T, bool) {
	if !u.specified || u.clear {
		var zero T
		return zero, false
	}
	return u.value, true
}

// TaskUpdate lists the user-editable task fields. Date fields hold raw
// date expressions; urgency and tag hold raw names.
type TaskUpdate struct {
	Title     Update[string]
	Due       Update[string]
	Urgency   Update[string]
	Tag       Update[string]
	HideUntil Update[string]
}

// IsEmpty reports whether no field is specified.
func (u TaskUpdate) IsEmpty() bool {
	return !u.Title.IsSpecified() &&
		!u.Due.IsSpecified() &&
		!u.Urgency.IsSpecified() &&
		!u.Tag.IsSpecified() &&
		!u.HideUntil.IsSpecified()
}
