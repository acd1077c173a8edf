package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

func TestWhereBuilder_PlaceholdersYPaginado(t *testing.T) {
	var w whereBuilder
	assert.Empty(t, w.sql())

	w.add("(origin_company_id = ? OR destination_company_id = ?)", "c1")
	w.addRaw("active")
	w.add("movement_type = ?", "transfer")

	assert.Equal(t, " WHERE (origin_company_id = $1 OR destination_company_id = $1) AND active AND movement_type = $2", w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", w.page(repository.Page{Limit: 500, Offset: -3}))
	assert.Equal(t, []any{"c1", "transfer", 100, 0}, w.args)
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, repository.Page{Limit: 20}, normalizePage(repository.Page{}))
	assert.Equal(t, repository.Page{Limit: 100, Offset: 40}, normalizePage(repository.Page{Limit: 1000, Offset: 40}))
	assert.Equal(t, repository.Page{Limit: 7}, normalizePage(repository.Page{Limit: 7, Offset: -1}))
}

func TestTranslateWriteError(t *testing.T) {
	err := translateWriteError("crear lote", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = translateWriteError("crear movimiento", &pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	base := errors.New("conexión cerrada")
	err = translateWriteError("crear lote", base)
	assert.ErrorIs(t, err, base)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestRequireAffected(t *testing.T) {
	assert.ErrorIs(t, requireAffected(pgconn.NewCommandTag("UPDATE 0"), "actualizar"), domain.ErrNotFound)
	assert.NoError(t, requireAffected(pgconn.NewCommandTag("UPDATE 1"), "actualizar"))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	if v := nullIfEmpty("x"); assert.NotNil(t, v) {
		assert.Equal(t, "x", *v)
	}
}
