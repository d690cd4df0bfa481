package util

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials         = errors.New("invalid credentials")
	ErrPasswordMismatch           = errors.New("las contraseñas no coinciden")
	ErrInvalidInstitutionalDomain = errors.New("el correo institucional debe pertenecer a un dominio '.edu.ar'")
	ErrUsernameTaken              = errors.New("ya existe un usuario registrado con este correo electrónico")
	ErrInstitutionalEmailTaken    = errors.New("ya existe un usuario registrado con este correo institucional")
	ErrUserNotFound               = errors.New("usuario no existe")
)

// FieldErrors maps a submitted form field to its validation message, so the
// frontend can redisplay errors inline next to each input.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(e))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// AsFieldErrors unwraps err as FieldErrors if possible.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
