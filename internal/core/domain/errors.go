package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure so the transport layer can pick a status code
// without inspecting messages.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// Error is the tagged error returned across the service boundary.
// Message is safe to show to clients; Err holds the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a tagged error without a cause.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Internal wraps cause as an internal failure with a public message.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrMissingSignupFields = NewError(KindValidation, "Faltan campos obligatorios: nombre, email o password")
	ErrMissingBookFields   = NewError(KindValidation, "Faltan campos obligatorios")
	ErrPasswordTooLong     = NewError(KindValidation, "La contraseña admite como máximo 72 bytes")
	ErrInvalidCredentials  = NewError(KindAuth, "Credenciales inválidas")
	ErrMissingToken        = NewError(KindAuth, "Token requerido")
	ErrInvalidToken        = NewError(KindAuth, "Token inválido")
	ErrEmailTaken          = NewError(KindConflict, "El email ya está registrado")
	ErrBookNotFound        = NewError(KindNotFound, "Libro no encontrado")
	ErrAssetNotFound       = NewError(KindNotFound, "Archivo no encontrado")
	ErrTooManyAttempts     = NewError(KindTooManyRequests, "Demasiados intentos, inténtalo más tarde")

	// ErrUserNotFound and ErrDuplicate are store-level signals; services
	// translate them before they reach the API.
	ErrUserNotFound = errors.New("user not found")
	ErrDuplicate    = errors.New("duplicate key")
)

// Forbidden returns an admin-only rejection with an operation specific message.
func Forbidden(msg string) *Error {
	return NewError(KindForbidden, msg)
}
