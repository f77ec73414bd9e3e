// Package password concentra hashing (bcrypt) y política de passwords.
package password

import (
	"strings"
	"unicode"
)

// MinLength por defecto para registro y alta de usuarios.
const MinLength = 6

// Policy son las reglas de fuerza. Los códigos que devuelve Validate son
// estables y viajan al cliente en el detail del error.
type Policy struct {
	MinLength     int
	RequireUpper  bool
	RequireLower  bool
	RequireDigit  bool
	RequireSymbol bool
	Blacklist     *Blacklist
}

// DefaultPolicy solo exige largo mínimo.
func DefaultPolicy() Policy { return Policy{MinLength: MinLength} }

type charClasses struct{ upper, lower, digit, symbol bool }

func classify(s string) charClasses {
	var c charClasses
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsDigit(r):
			c.digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			c.symbol = true
		}
	}
	return c
}

// Validate devuelve ok y los códigos incumplidos: too_short, missing_upper,
// missing_lower, missing_digit, missing_symbol, blacklisted.
func (p Policy) Validate(s string) (ok bool, reasons []string) {
	if len([]rune(s)) < p.MinLength {
		reasons = append(reasons, "too_short")
	}

	c := classify(s)
	for _, rule := range []struct {
		required, present bool
		code              string
	}{
		{p.RequireUpper, c.upper, "missing_upper"},
		{p.RequireLower, c.lower, "missing_lower"},
		{p.RequireDigit, c.digit, "missing_digit"},
		{p.RequireSymbol, c.symbol, "missing_symbol"},
	} {
		if rule.required && !rule.present {
			reasons = append(reasons, rule.code)
		}
	}

	if p.Blacklist.Contains(s) {
		reasons = append(reasons, "blacklisted")
	}
	return len(reasons) == 0, reasons
}

// ValidateFor agrega la regla contains_email: la password no puede contener
// la parte local del email del usuario (si tiene 3+ caracteres).
func (p Policy) ValidateFor(s, email string) (bool, []string) {
	_, reasons := p.Validate(s)
	local, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(email)), "@")
	if len(local) >= 3 && strings.Contains(strings.ToLower(s), local) {
		reasons = append(reasons, "contains_email")
	}
	return len(reasons) == 0, reasons
}
