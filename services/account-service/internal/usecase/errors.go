package usecase

import (
	"errors"

	"github.com/vasapolrittideah/school-site-api/shared/i18n"
)

// Failure kinds carried by AccountError. Match them with errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrProvider        = errors.New("provider error")
	ErrProfileNotFound = errors.New("profile not found")
	ErrAccountBanned   = errors.New("account banned")
)

// AccountError is the failure result of an account or site operation. Message
// is already localized for the end user.
type AccountError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AccountError) Error() string {
	return e.Message
}

func (e *AccountError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func validationError(t *i18n.Translator, key string) *AccountError {
	return &AccountError{Kind: ErrValidation, Message: t.Message(key)}
}

func providerError(t *i18n.Translator, err error) *AccountError {
	return &AccountError{Kind: ErrProvider, Message: t.Translate(err), Err: err}
}
