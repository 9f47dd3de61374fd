package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("unknown role")
	ErrClinicRequired     = errors.New("clinic is required for this role")
	ErrUserInactive       = errors.New("user is inactive")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrClinicNotFound     = errors.New("clinic not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSearchSuperseded   = errors.New("search superseded by a newer query")
)
