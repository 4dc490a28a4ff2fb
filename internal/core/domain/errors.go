package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskForbidden      = errors.New("task owned by another user")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserConflict       = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("could not validate credentials")
)

// InvalidFieldError reports which field of a payload failed validation.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid value for field %q", e.Field)
}
