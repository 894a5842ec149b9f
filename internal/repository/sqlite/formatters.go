package sqlite

import (
	"database/sql"
	"time"
)

// FormatTimeForDB formats a time.Time value as an RFC3339 UTC string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtrForDB formats a *time.Time value as RFC3339, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ParseNullTimeFromDB parses a nullable RFC3339 column
func ParseNullTimeFromDB(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := ParseTimeFromDB(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatStringPtrForDB returns nil for a nil pointer so the column is stored as NULL
func FormatStringPtrForDB(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// FormatInt64PtrForDB returns nil for a nil pointer so the column is stored as NULL
func FormatInt64PtrForDB(n *int64) interface{} {
	if n == nil {
		return nil
	}
	return *n
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
