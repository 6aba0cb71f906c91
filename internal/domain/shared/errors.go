package shared

import (
	"errors"
	"fmt"
)

// RejectionError is returned when a player command breaks a game rule,
// such as buying without the money or starting a trip with no job.
// The session is left untouched apart from the log line.
type RejectionError struct {
	Command string
	reason  string
}

func NewRejectionError(command, reason string) *RejectionError {
	return &RejectionError{Command: command, reason: reason}
}

// Reason is the sentence shown to the player
func (e *RejectionError) Reason() string {
	return e.reason
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Command, e.reason)
}

// AsRejection unwraps err to a rejection if it is one
func AsRejection(err error) (*RejectionError, bool) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}
