package patient

import "errors"

var (
	ErrPatientNotFound          = errors.New("patient not found")
	ErrPatientAlreadyRegistered = errors.New("this user already has a patient record")
	ErrConsentRequired          = errors.New("all consent flags must be given")
)
