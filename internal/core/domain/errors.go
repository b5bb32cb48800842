package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials = errors.New("could not verify")
	ErrInvalidCredentials = errors.New("wrong credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenMissing       = errors.New("token is missing")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrForbidden          = errors.New("access forbidden")

	ErrProgramNotFound = errors.New("program not found")
	ErrClientNotFound  = errors.New("client not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// MissingProgramError names the program id that failed lookup.
type MissingProgramError struct {
	ID string
}

func (e *MissingProgramError) Error() string {
	return fmt.Sprintf("Program %s not found", e.ID)
}

func (e *MissingProgramError) Is(target error) bool {
	return target == ErrProgramNotFound
}

// InputError carries a caller-facing message for a rejected request.
type InputError struct {
	Msg string
}

// InvalidInput builds an error matching ErrInvalidInput.
func InvalidInput(msg string) error {
	return &InputError{Msg: msg}
}

func (e *InputError) Error() string { return e.Msg }

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
