package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para dashboard y reportes de movimientos.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetTotals cuenta productos, empresas, lotes y movimientos en una sola consulta.
func (r *ReportRepo) GetTotals(ctx context.Context) (repository.Totals, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products)        AS products,
	    (SELECT COUNT(*) FROM companies)       AS companies,
	    (SELECT COUNT(*) FROM batches)         AS batches,
	    (SELECT COUNT(*) FROM batch_movements) AS movements`
	var t repository.Totals
	if err := r.q.QueryRow(ctx, query).Scan(&t.Products, &t.Companies, &t.Batches, &t.Movements); err != nil {
		return t, fmt.Errorf("report.GetTotals: %w", err)
	}
	return t, nil
}

// GetProductionByMonth agrupa lotes por mes de producción. Meses sin lotes no aparecen.
func (r *ReportRepo) GetProductionByMonth(ctx context.Context, since time.Time) ([]repository.MonthlyProduction, error) {
	const query = `
	SELECT
	    date_trunc('month', production_date AT TIME ZONE 'UTC') AS month,
	    COUNT(*)                                                AS batches,
	    COALESCE(SUM(quantity), 0)                              AS quantity
	FROM batches
	WHERE production_date >= $1
	GROUP BY month
	ORDER BY month`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("report.GetProductionByMonth: %w", err)
	}
	defer rows.Close()
	list := make([]repository.MonthlyProduction, 0)
	for rows.Next() {
		var row repository.MonthlyProduction
		if err := rows.Scan(&row.Month, &row.Batches, &row.Quantity); err != nil {
			return nil, fmt.Errorf("report.GetProductionByMonth scan: %w", err)
		}
		row.Month = row.Month.UTC()
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetBatchesByStatus cuenta lotes por estado.
func (r *ReportRepo) GetBatchesByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM batches GROUP BY status ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("report.GetBatchesByStatus: %w", err)
	}
	defer rows.Close()
	list := make([]repository.StatusCount, 0)
	for rows.Next() {
		var row repository.StatusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("report.GetBatchesByStatus scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetMovementsByType cuenta movimientos y suma cantidades por tipo en el período.
func (r *ReportRepo) GetMovementsByType(ctx context.Context, from, to *time.Time) ([]repository.TypeCount, error) {
	var w whereBuilder
	periodFilter(&w, "movement_date", from, to)
	query := `
	SELECT movement_type, COUNT(*), COALESCE(SUM(quantity), 0)
	FROM batch_movements` + w.sql() + `
	GROUP BY movement_type
	ORDER BY COUNT(*) DESC`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("report.GetMovementsByType: %w", err)
	}
	defer rows.Close()
	list := make([]repository.TypeCount, 0)
	for rows.Next() {
		var row repository.TypeCount
		if err := rows.Scan(&row.Type, &row.Count, &row.Quantity); err != nil {
			return nil, fmt.Errorf("report.GetMovementsByType scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetCompanyActivity movimientos enviados (origen) y recibidos (destino) por empresa.
func (r *ReportRepo) GetCompanyActivity(ctx context.Context, from, to *time.Time) ([]repository.CompanyActivity, error) {
	var w whereBuilder
	periodFilter(&w, "m.movement_date", from, to)
	query := `
	SELECT
	    c.id::text,
	    c.name,
	    COUNT(*) FILTER (WHERE m.origin_company_id = c.id)      AS outgoing,
	    COUNT(*) FILTER (WHERE m.destination_company_id = c.id) AS incoming
	FROM companies c
	JOIN batch_movements m ON m.origin_company_id = c.id OR m.destination_company_id = c.id` + w.sql() + `
	GROUP BY c.id, c.name
	ORDER BY outgoing + incoming DESC, c.name`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("report.GetCompanyActivity: %w", err)
	}
	defer rows.Close()
	list := make([]repository.CompanyActivity, 0)
	for rows.Next() {
		var row repository.CompanyActivity
		if err := rows.Scan(&row.CompanyID, &row.CompanyName, &row.Outgoing, &row.Incoming); err != nil {
			return nil, fmt.Errorf("report.GetCompanyActivity scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetRecentBatches últimos lotes creados con producto y empresa.
func (r *ReportRepo) GetRecentBatches(ctx context.Context, limit int) ([]repository.BatchSummary, error) {
	const query = `
	SELECT b.id::text, b.batch_number, p.name, c.name, b.quantity, b.unit, b.status, b.production_date, b.created_at
	FROM batches b
	JOIN products  p ON p.id = b.product_id
	JOIN companies c ON c.id = b.company_id
	ORDER BY b.created_at DESC
	LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("report.GetRecentBatches: %w", err)
	}
	defer rows.Close()
	list := make([]repository.BatchSummary, 0)
	for rows.Next() {
		var row repository.BatchSummary
		if err := rows.Scan(&row.ID, &row.BatchNumber, &row.ProductName, &row.CompanyName, &row.Quantity,
			&row.Unit, &row.Status, &row.ProductionDate, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("report.GetRecentBatches scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

const movementSummarySelect = `
	SELECT m.id::text, m.batch_id::text, b.batch_number, p.name, m.movement_type, m.status,
	    COALESCE(o.name, ''), COALESCE(d.name, ''), m.quantity, m.unit, m.movement_date, m.latitude, m.longitude
	FROM batch_movements m
	JOIN batches   b ON b.id = m.batch_id
	JOIN products  p ON p.id = b.product_id
	LEFT JOIN companies o ON o.id = m.origin_company_id
	LEFT JOIN companies d ON d.id = m.destination_company_id`

// GetRecentMovements últimos movimientos registrados.
func (r *ReportRepo) GetRecentMovements(ctx context.Context, limit int) ([]repository.MovementSummary, error) {
	return r.queryMovements(ctx, "report.GetRecentMovements",
		movementSummarySelect+` ORDER BY m.movement_date DESC, m.seq DESC LIMIT $1`, limit)
}

// GetMovements movimientos del período en orden cronológico (exportación).
func (r *ReportRepo) GetMovements(ctx context.Context, from, to *time.Time) ([]repository.MovementSummary, error) {
	var w whereBuilder
	periodFilter(&w, "m.movement_date", from, to)
	return r.queryMovements(ctx, "report.GetMovements",
		movementSummarySelect+w.sql()+` ORDER BY m.movement_date, m.seq`, w.args...)
}

func (r *ReportRepo) queryMovements(ctx context.Context, op, query string, args ...any) ([]repository.MovementSummary, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]repository.MovementSummary, 0)
	for rows.Next() {
		var row repository.MovementSummary
		if err := rows.Scan(&row.ID, &row.BatchID, &row.BatchNumber, &row.ProductName, &row.Type, &row.Status,
			&row.OriginName, &row.DestinationName, &row.Quantity, &row.Unit, &row.MovementDate,
			&row.Latitude, &row.Longitude); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func periodFilter(w *whereBuilder, column string, from, to *time.Time) {
	if from != nil {
		w.add(column+" >= ?", *from)
	}
	if to != nil {
		w.add(column+" <= ?", *to)
	}
}
