package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
)

// failingQuerier responde a toda consulta con el mismo error de Postgres.
type failingQuerier struct{ err error }

func (q failingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q failingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q failingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{q.err}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func TestRepos_IDMalFormadoEsInexistente(t *testing.T) {
	ctx := context.Background()
	q := failingQuerier{err: &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}}

	batch, err := NewBatchRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, batch)

	company, err := NewCompanyRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, company)

	product, err := NewProductRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, product)

	tpl, err := NewLabelTemplateRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, tpl)

	user, err := NewUserRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, user)

	assert.ErrorIs(t, NewBatchRepository(q).Delete(ctx, "abc"), domain.ErrNotFound)
	assert.ErrorIs(t, NewBatchRepository(q).UpdateQRCode(ctx, "abc", "x"), domain.ErrNotFound)
	assert.ErrorIs(t, NewCompanyRepository(q).SetActive(ctx, "abc", false), domain.ErrNotFound)
	assert.ErrorIs(t, NewProductRepository(q).SetActive(ctx, "abc", false), domain.ErrNotFound)
	assert.ErrorIs(t, NewUserRepository(q).Delete(ctx, "abc"), domain.ErrNotFound)
}

func TestBatchRepo_DeleteConMovimientosEsConflict(t *testing.T) {
	q := failingQuerier{err: &pgconn.PgError{Code: "23503", ConstraintName: "batch_movements_batch_id_fkey"}}
	err := NewBatchRepository(q).Delete(context.Background(), "2b1f4f8e-7a9c-4a4e-9b7e-0c1c6f0a1d11")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRepos_OtrosErroresNoSeOcultan(t *testing.T) {
	q := failingQuerier{err: &pgconn.PgError{Code: "57014"}} // query_canceled
	_, err := NewBatchRepository(q).GetByID(context.Background(), "abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
