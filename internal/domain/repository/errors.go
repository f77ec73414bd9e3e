package repository

import "errors"

// Errores centinela que devuelven todos los adapters. La capa HTTP los
// traduce a 404/409/400.
var (
	ErrNotFound     = errors.New("repository: not found")
	ErrConflict     = errors.New("repository: conflict")
	ErrInvalidInput = errors.New("repository: invalid input")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
