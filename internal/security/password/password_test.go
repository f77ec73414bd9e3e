package password

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() { Cost = bcrypt.MinCost }

func TestHashVerify(t *testing.T) {
	h, err := Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", h)

	assert.True(t, Verify("s3cret!", h))
	assert.False(t, Verify("wrong", h))
	assert.False(t, Verify("s3cret!", ""))
	assert.False(t, Verify("", h))

	_, err = Hash("")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestTemporaryHash_IsUnique(t *testing.T) {
	a, err := TemporaryHash()
	require.NoError(t, err)
	b, err := TemporaryHash()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPolicy(t *testing.T) {
	ok, reasons := DefaultPolicy().Validate("12345")
	assert.False(t, ok)
	assert.Equal(t, []string{"too_short"}, reasons)

	ok, _ = DefaultPolicy().Validate("123456")
	assert.True(t, ok)

	strict := Policy{MinLength: 8, RequireUpper: true, RequireDigit: true, RequireSymbol: true}
	ok, reasons = strict.Validate("abcdefgh")
	assert.False(t, ok)
	assert.ElementsMatch(t, []string{"missing_upper", "missing_digit", "missing_symbol"}, reasons)
}

func TestPolicy_Blacklist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bl.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comunes\nPassword1\nqwerty\n"), 0o600))

	bl, err := LoadBlacklist(path)
	require.NoError(t, err)

	p := Policy{MinLength: 6, Blacklist: bl}
	ok, reasons := p.Validate("password1")
	assert.False(t, ok)
	assert.Equal(t, []string{"blacklisted"}, reasons)

	ok, _ = p.Validate("dealer-portal")
	assert.True(t, ok)

	empty, err := LoadBlacklist("")
	require.NoError(t, err)
	assert.False(t, empty.Contains("qwerty"))
}

func TestPolicy_ValidateFor(t *testing.T) {
	p := DefaultPolicy()

	ok, reasons := p.ValidateFor("OpsTeam-2024", "ops@acme.com")
	assert.False(t, ok)
	assert.Equal(t, []string{"contains_email"}, reasons)

	ok, _ = p.ValidateFor("dealer-portal", "ops@acme.com")
	assert.True(t, ok)

	// partes locales cortas no cuentan
	ok, _ = p.ValidateFor("my-jo-password", "jo@acme.com")
	assert.True(t, ok)
}

func TestReadBlacklist(t *testing.T) {
	bl, err := ReadBlacklist(strings.NewReader("  # header\n\n  LetMeIn \nadmin123\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, bl.Len())
	assert.True(t, bl.Contains("letmein"))
	assert.True(t, bl.Contains(" ADMIN123"))

	var nilList *Blacklist
	assert.False(t, nilList.Contains("anything"))
	assert.Equal(t, 0, nilList.Len())
}
