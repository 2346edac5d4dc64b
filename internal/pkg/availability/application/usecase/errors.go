package usecase

import (
	"errors"
	"fmt"
)

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("availability use case persistence error")

var (
	// ErrUnknownParticipant rejects names that are not configured.
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrOutOfRange rejects writes outside the selectable months.
	ErrOutOfRange = errors.New("date outside selectable range")
)
