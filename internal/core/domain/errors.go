package domain

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	ErrUserNotFound     = errors.New("team member not found")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrTaskNotFound     = errors.New("task not found")

	ErrUserExists = errors.New("email already registered")
	ErrForbidden  = errors.New("cannot delete your own account")
)
