package record

import (
	"errors"
)

var (
	ErrEmptyID      = errors.New("record id is empty")
	ErrUnavailable  = errors.New("record unavailable")
	ErrUpdateFailed = errors.New("record status update failed")
)

// Reason returns the text of the domain error behind err, without the
// wrapped cause. The cause may carry upstream addresses.
func Reason(err error) string {
	for _, known := range []error{ErrEmptyID, ErrUnavailable, ErrUpdateFailed} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return ErrUnavailable.Error()
}
