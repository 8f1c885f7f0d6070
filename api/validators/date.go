package validators

import (
	"strings"
	"time"

	pkgerrors "github.com/wishlane/wishlane-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD wire value into a UTC midnight timestamp.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	parsed, err := time.ParseInLocation(dateLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "date must be YYYY-MM-DD")
	}
	return parsed, nil
}
