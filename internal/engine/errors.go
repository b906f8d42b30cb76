package engine

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/grindstone/internal/calendar"
)

// LockedMessage is the user-facing text for a rejected mutation.
const LockedMessage = "Day is locked"

// LockedError is returned when a task creation or deletion is attempted while
// the day is locked. Callers render it as a failure result.
type LockedError struct {
	Operation string
	Day       calendar.Day
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s: cannot %s on %s", LockedMessage, e.Operation, e.Day)
}

// ValidationError reports a malformed session input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrNoActiveDomain is returned when a task cannot be filed under any domain.
var ErrNoActiveDomain = errors.New("no active domain to file the task under")

// IsLocked reports whether err is (or wraps) a LockedError.
func IsLocked(err error) bool {
	var le *LockedError
	return errors.As(err, &le)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
