package password

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Blacklist es un conjunto inmutable de passwords prohibidas, comparadas
// en minúsculas y sin espacios alrededor.
type Blacklist struct {
	words map[string]struct{}
}

// NewBlacklist arma una lista en memoria.
func NewBlacklist(words ...string) *Blacklist {
	bl := &Blacklist{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		bl.add(w)
	}
	return bl
}

// LoadBlacklist lee un archivo con una password por línea (# comenta).
// Path vacío devuelve una lista vacía.
func LoadBlacklist(path string) (*Blacklist, error) {
	if strings.TrimSpace(path) == "" {
		return NewBlacklist(), nil
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBlacklist(f)
}

func ReadBlacklist(r io.Reader) (*Blacklist, error) {
	bl := NewBlacklist()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		bl.add(line)
	}
	return bl, sc.Err()
}

func (b *Blacklist) add(w string) {
	if k := normalizeWord(w); k != "" {
		b.words[k] = struct{}{}
	}
}

// Contains es nil-safe: una lista nil no prohíbe nada.
func (b *Blacklist) Contains(pwd string) bool {
	if b == nil {
		return false
	}
	_, ok := b.words[normalizeWord(pwd)]
	return ok
}

func (b *Blacklist) Len() int {
	if b == nil {
		return 0
	}
	return len(b.words)
}

func normalizeWord(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
