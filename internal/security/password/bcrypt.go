package password

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmpty se devuelve al intentar hashear un password vacío.
var ErrEmpty = errors.New("password: empty")

// Cost es el costo bcrypt usado en producción. Los tests pueden bajarlo.
var Cost = bcrypt.DefaultCost

// Hash devuelve el hash bcrypt de plain.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara plain contra un hash bcrypt. Hash vacío nunca verifica.
func Verify(plain, hash string) bool {
	if hash == "" || plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// TemporaryHash genera un secreto aleatorio y devuelve solo su hash.
// El secreto se descarta: la cuenta queda sin password utilizable hasta
// que alguien lo establezca.
func TemporaryHash() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return Hash(base64.RawURLEncoding.EncodeToString(b))
}
