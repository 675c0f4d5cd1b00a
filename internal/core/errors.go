package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNoMembers signals a goal with an empty member list. Goal creation
	// always inserts the creator as first member, so hitting this means
	// the data is structurally broken; it is still checked defensively.
	ErrNoMembers = errors.New("goal must have at least one member")

	// ErrNoSalaryData signals a salary-proportional split where no member
	// has any salary income recorded.
	ErrNoSalaryData = errors.New("no salary income found for any member")
)

// ValidationError reports malformed numeric or enum input to a calculator
// or request boundary. Recoverable: the HTTP layer maps it to a 422.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError or one
// of the domain validation sentinels.
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrInvalidCategory)
}
