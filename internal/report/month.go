package report

import (
	"strings"
	"time"
)

// ValidationError is a caller-correctable input problem: a malformed month
// token or a report that does not match the expected layout. Handlers map it
// to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParseMonth parses a "YYYY-MM" token into the first day of that month (UTC).
// Every month filter and every upload goes through this normalization so that
// stored purchase_month values compare equal across operations.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ValidationError{Message: "invalid month format, expected YYYY-MM"}
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}
