package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateIdentity = errors.New("a user with this email is already registered")
)
