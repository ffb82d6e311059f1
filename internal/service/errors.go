package service

import "errors"

var (
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDisabled is returned when a deactivated user tries to authenticate.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrForbidden is returned when a user touches a todo they do not own.
	ErrForbidden = errors.New("access to this todo is forbidden")

	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
)
