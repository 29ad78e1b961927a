package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bloodconnect-api/internal/domain"
)

func TestContainsPattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%del%`, containsPattern("del"))
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
}

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	assert.Empty(t, w.sql())

	w.contains("d.city", "del")
	w.contains("d.area", "")
	w.add("d.blood_group = $%d", "O-")
	assert.Equal(t, ` WHERE d.city ILIKE $1 ESCAPE '\' AND d.blood_group = $2`, w.sql())
	assert.Equal(t, []any{"%del%", "O-"}, w.args)
}

func TestWrapWrite_UniqueViolation(t *testing.T) {
	err := wrapWrite("insert user", &pgconn.PgError{Code: "23505"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	err = wrapWrite("insert user", fmt.Errorf("timeout"))
	assert.False(t, errors.Is(err, domain.ErrConflict))
}

func TestValidUUID(t *testing.T) {
	assert.True(t, validUUID("6f1c1c8e-3a0a-4d5e-9f7a-1b2c3d4e5f60"))
	assert.False(t, validUUID("no-existe"))
}
