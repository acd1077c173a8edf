package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, seq, batch_id, origin_company_id::text, destination_company_id::text, quantity, unit,
	movement_type, status, movement_date, latitude, longitude, additional_info, created_by::text,
	created_at, updated_at`

// MovementRepo persistencia de batch_movements (solo inserción y lectura).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y devuelve en m.Seq el orden de inserción asignado.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	lat, lon := geoArgs(m.Location)
	query := `
		INSERT INTO batch_movements (id, batch_id, origin_company_id, destination_company_id, quantity, unit,
			movement_type, status, movement_date, latitude, longitude, additional_info, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.BatchID, m.OriginCompanyID, m.DestinationCompanyID, m.Quantity, m.Unit,
		string(m.Type), m.Status, m.MovementDate, lat, lon, m.AdditionalInfo, m.CreatedBy,
		m.CreatedAt, m.UpdatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return translateWriteError("insert movement", err)
	}
	return nil
}

// ListByBatch devuelve la cadena completa del lote en orden cronológico.
func (r *MovementRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM batch_movements WHERE batch_id = $1 ORDER BY movement_date, seq`
	rows, err := r.q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list movements by batch: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// List lista movimientos de todos los lotes, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	var w whereBuilder
	if f.BatchID != "" {
		w.add("batch_id = ?", f.BatchID)
	}
	if f.CompanyID != "" {
		w.add("(origin_company_id = ? OR destination_company_id = ?)", f.CompanyID)
	}
	if f.Type != "" {
		w.add("movement_type = ?", f.Type)
	}
	if f.From != nil {
		w.add("movement_date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("movement_date <= ?", *f.To)
	}
	query := `SELECT ` + movementColumns + `, COUNT(*) OVER() FROM batch_movements` + w.sql() +
		` ORDER BY movement_date DESC, seq DESC` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Movement
		total int
	)
	for rows.Next() {
		m, err := scanMovement(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

func scanMovement(row pgx.Row, extra ...any) (*entity.Movement, error) {
	var (
		m        entity.Movement
		typ      string
		lat, lon *decimal.Decimal
	)
	dest := []any{&m.ID, &m.Seq, &m.BatchID, &m.OriginCompanyID, &m.DestinationCompanyID, &m.Quantity, &m.Unit,
		&typ, &m.Status, &m.MovementDate, &lat, &lon, &m.AdditionalInfo, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	m.Location = entity.NewGeoPoint(lat, lon)
	return &m, nil
}
