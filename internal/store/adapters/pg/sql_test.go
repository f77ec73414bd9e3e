package pg

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

func TestSetList(t *testing.T) {
	var set setList
	assert.True(t, set.empty())

	set.add("org", "Acme")
	set.add("status", repository.DealerActive)
	assert.False(t, set.empty())
	assert.Equal(t, "org = $1, status = $2", set.sql())

	// el id del WHERE va a continuación de los valores del SET
	args := append(set.args, "d-1")
	assert.Equal(t, "$3", "$"+itoa(len(args)))
	assert.Equal(t, []any{"Acme", repository.DealerActive, "d-1"}, args)
}

func TestWhereList(t *testing.T) {
	var where whereList
	assert.Empty(t, where.sql())

	where.add("status = ?", "New")
	where.add("(name ILIKE ? OR email ILIKE ?)", "%a%", "%a%")
	where.add("deleted_at IS NULL")

	assert.Equal(t, " WHERE status = $1 AND (name ILIKE $2 OR email ILIKE $3) AND deleted_at IS NULL", where.sql())
	assert.Equal(t, []any{"New", "%a%", "%a%"}, where.args)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%acme%", likePattern("  acme "))
	assert.Equal(t, `%50\%\_off\\x%`, likePattern(`50%_off\x`))
}

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr("op", nil))
	assert.ErrorIs(t, mapErr("get", pgx.ErrNoRows), repository.ErrNotFound)

	dup := mapErr("create dealer", &pgconn.PgError{Code: uniqueViolation})
	assert.ErrorIs(t, dup, repository.ErrConflict)
	assert.Contains(t, dup.Error(), "create dealer")

	other := errors.New("conn reset")
	got := mapErr("list", other)
	assert.ErrorIs(t, got, other)
	assert.False(t, repository.IsConflict(got))
}
