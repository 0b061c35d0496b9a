package appointment

import "errors"

var (
	ErrAppointmentNotFound       = errors.New("appointment not found")
	ErrInvalidStatusTransition   = errors.New("invalid appointment status transition")
	ErrCancellationReasonMissing = errors.New("a cancelled appointment must carry a cancellation reason")
	ErrUnknownPhysician          = errors.New("physician is not on the roster")
)
