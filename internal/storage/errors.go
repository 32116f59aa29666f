package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound wird zurückgegeben, wenn Kurs, Lektion oder Aufgabe fehlen
	ErrNotFound = errors.New("nicht gefunden")
	// ErrValidation ist die Basis aller Eingabefehler
	ErrValidation = errors.New("ungültige Eingabe")
	// ErrContactLimit: das Netzwerk eines Kurses ist voll
	ErrContactLimit = errors.New("maximale Anzahl an Kontakten erreicht")
)

// ValidationError benennt das fehlerhafte Feld
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
