package validation

import (
	"regexp"
	"strings"
	"time"

	"task-cli/internal/dates"
	"task-cli/internal/domain"
	apperrors "task-cli/internal/errors"
)

var tagPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Expected forms reported in field errors.
const (
	tagFormat  = "lowercase letters and numbers joined by hyphens"
	dateFormat = "YYYY-MM-DD, today, tomorrow, next <weekday> or +N[d|w|m|y]"
)

// withFieldError records the rejected field as appErr's cause so callers can
// inspect it as a ValidationError.
func withFieldError(appErr *apperrors.AppError, record func(ve *ValidationError)) *apperrors.AppError {
	ve := NewValidationError()
	record(ve)
	appErr.Cause = ve
	return appErr
}

// NormalizeTag lowercases a tag name and checks it is hyphen-joined
// lowercase alphanumeric segments.
func NormalizeTag(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if !tagPattern.MatchString(name) {
		return "", withFieldError(apperrors.NewInvalidTagError(raw), func(ve *ValidationError) {
			ve.AddInvalidFormatError("tag", raw, tagFormat)
		})
	}
	return name, nil
}

// NormalizeUrgencyName lowercases raw and checks it against the fixed vocabulary.
func NormalizeUrgencyName(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, valid := range domain.UrgencyNames() {
		if name == valid {
			return name, nil
		}
	}
	return "", withFieldError(apperrors.NewInvalidUrgencyError(raw, domain.UrgencyNames()), func(ve *ValidationError) {
		ve.AddInvalidValueError("urgency", raw, "not one of "+strings.Join(domain.UrgencyNames(), ", "))
	})
}

// ResolveUrgency matches raw case-insensitively against the known urgencies
// and returns the matching id. The error lists the valid names in rank order.
func ResolveUrgency(raw string, known []domain.Urgency) (int64, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	options := make([]string, 0, len(known))
	for _, u := range known {
		if u.Name == name {
			return u.ID, nil
		}
		options = append(options, u.Name)
	}
	return 0, withFieldError(apperrors.NewInvalidUrgencyError(raw, options), func(ve *ValidationError) {
		ve.AddInvalidValueError("urgency", raw, "not one of "+strings.Join(options, ", "))
	})
}

// NormalizeStatus lowercases raw and checks it is a known status.
func NormalizeStatus(raw string) (domain.Status, error) {
	status := domain.Status(strings.ToLower(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", withFieldError(apperrors.NewInvalidStatusError(raw, domain.StatusNames()), func(ve *ValidationError) {
			ve.AddInvalidValueError("status", raw, "not one of "+strings.Join(domain.StatusNames(), ", "))
		})
	}
	return status, nil
}

// ParseSortSpec parses "field" or "field:direction". An empty value yields
// the default urgency ascending order.
func ParseSortSpec(raw string) (domain.SortSpec, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return domain.DefaultSort(), nil
	}

	field, dir, hasDir := strings.Cut(s, ":")
	spec := domain.SortSpec{Field: domain.SortField(field), Direction: domain.SortAsc}

	switch spec.Field {
	case domain.SortByDue, domain.SortByUrgency:
	default:
		return domain.SortSpec{}, apperrors.NewInvalidSortError(raw, domain.ValidSortFields())
	}

	if hasDir {
		switch domain.SortDirection(dir) {
		case domain.SortAsc, domain.SortDesc:
			spec.Direction = domain.SortDirection(dir)
		default:
			return domain.SortSpec{}, apperrors.NewInvalidSortError(raw, domain.ValidSortFields()).
				WithContext("direction", dir)
		}
	}
	return spec, nil
}

// ResolveDate resolves a date expression for field relative to ref.
func ResolveDate(field, expr string, ref time.Time) (string, error) {
	d, err := dates.Resolve(expr, ref)
	if err != nil {
		return "", withFieldError(apperrors.NewInvalidDateError(field, expr), func(ve *ValidationError) {
			ve.AddInvalidFormatError(field, expr, dateFormat)
		})
	}
	return d, nil
}
