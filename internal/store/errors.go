package store

import "errors"

// ErrUnknownAdapter indica que storage.driver no corresponde a ningún adapter registrado.
var ErrUnknownAdapter = errors.New("store: unknown adapter")
