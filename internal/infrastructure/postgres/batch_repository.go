package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, batch_number, product_id, company_id, quantity, unit, production_date, expiration_date,
	status, COALESCE(qr_code, ''), COALESCE(barcode, ''), additional_info, COALESCE(created_by::text, ''),
	created_at, updated_at`

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de persistencia para lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote. batch_number duplicado -> ErrConflict; producto o empresa inexistente -> ErrNotFound.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, batch_number, product_id, company_id, quantity, unit, production_date,
			expiration_date, status, qr_code, barcode, additional_info, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.BatchNumber, b.ProductID, b.CompanyID, b.Quantity, b.Unit, b.ProductionDate,
		b.ExpirationDate, b.Status, nullIfEmpty(b.QRCode), nullIfEmpty(b.Barcode), b.AdditionalInfo,
		nullIfEmpty(b.CreatedBy), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("insert batch", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetByNumber obtiene un lote por su número (consulta pública del QR).
func (r *BatchRepo) GetByNumber(ctx context.Context, batchNumber string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE batch_number = $1`, batchNumber))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch by number: %w", err)
	}
	return b, nil
}

// Update actualiza los datos editables del lote.
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `
		UPDATE batches SET batch_number = $2, product_id = $3, company_id = $4, quantity = $5, unit = $6,
			production_date = $7, expiration_date = $8, status = $9, barcode = $10, additional_info = $11,
			updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.BatchNumber, b.ProductID, b.CompanyID, b.Quantity, b.Unit, b.ProductionDate,
		b.ExpirationDate, b.Status, nullIfEmpty(b.Barcode), b.AdditionalInfo, b.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("update batch", err)
	}
	return requireAffected(tag, "update batch")
}

// UpdateQRCode guarda el payload del código QR del lote.
func (r *BatchRepo) UpdateQRCode(ctx context.Context, id, qrCode string) error {
	tag, err := r.q.Exec(ctx, `UPDATE batches SET qr_code = $2, updated_at = now() WHERE id = $1`, id, qrCode)
	if err != nil {
		return translateWriteError("update batch qr", err)
	}
	return requireAffected(tag, "update batch qr")
}

// Delete elimina un lote y sus impresiones. Los movimientos lo bloquean (ON DELETE RESTRICT).
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete batch: tiene movimientos: %w", domain.ErrConflict)
		}
		return translateWriteError("delete batch", err)
	}
	return requireAffected(tag, "delete batch")
}

// List lista lotes más recientes primero.
func (r *BatchRepo) List(ctx context.Context, f repository.BatchFilter) ([]*entity.Batch, int, error) {
	var w whereBuilder
	if f.Search != "" {
		w.add("batch_number ILIKE ?", "%"+f.Search+"%")
	}
	if f.ProductID != "" {
		w.add("product_id = ?", f.ProductID)
	}
	if f.CompanyID != "" {
		w.add("company_id = ?", f.CompanyID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	query := `SELECT ` + batchColumns + `, COUNT(*) OVER() FROM batches` + w.sql() +
		` ORDER BY production_date DESC, created_at DESC` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Batch
		total int
	)
	for rows.Next() {
		b, err := scanBatch(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}

func scanBatch(row pgx.Row, extra ...any) (*entity.Batch, error) {
	var b entity.Batch
	dest := []any{&b.ID, &b.BatchNumber, &b.ProductID, &b.CompanyID, &b.Quantity, &b.Unit, &b.ProductionDate,
		&b.ExpirationDate, &b.Status, &b.QRCode, &b.Barcode, &b.AdditionalInfo, &b.CreatedBy,
		&b.CreatedAt, &b.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}
