package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var (
	_ repository.LabelTemplateRepository = (*LabelTemplateRepo)(nil)
	_ repository.LabelPrintRepository    = (*LabelPrintRepo)(nil)
)

const labelTemplateColumns = `id, name, COALESCE(description, ''), width, height, unit, fields, zpl_template,
	COALESCE(preview_url, ''), active, COALESCE(created_by::text, ''), created_at, updated_at`

// LabelTemplateRepo persistencia de plantillas ZPL.
type LabelTemplateRepo struct {
	q Querier
}

// NewLabelTemplateRepository construye el adaptador de plantillas.
func NewLabelTemplateRepository(q Querier) *LabelTemplateRepo {
	return &LabelTemplateRepo{q: q}
}

// Create persiste una plantilla.
func (r *LabelTemplateRepo) Create(ctx context.Context, t *entity.LabelTemplate) error {
	query := `
		INSERT INTO label_templates (id, name, description, width, height, unit, fields, zpl_template,
			preview_url, active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Name, nullIfEmpty(t.Description), t.Width, t.Height, t.Unit, t.Fields, t.ZPLTemplate,
		nullIfEmpty(t.PreviewURL), t.Active, nullIfEmpty(t.CreatedBy), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("insert label template", err)
	}
	return nil
}

// GetByID obtiene una plantilla por ID.
func (r *LabelTemplateRepo) GetByID(ctx context.Context, id string) (*entity.LabelTemplate, error) {
	t, err := scanLabelTemplate(r.q.QueryRow(ctx, `SELECT `+labelTemplateColumns+` FROM label_templates WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get label template: %w", err)
	}
	return t, nil
}

// Update actualiza la plantilla.
func (r *LabelTemplateRepo) Update(ctx context.Context, t *entity.LabelTemplate) error {
	query := `
		UPDATE label_templates SET name = $2, description = $3, width = $4, height = $5, unit = $6, fields = $7,
			zpl_template = $8, preview_url = $9, active = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.Name, nullIfEmpty(t.Description), t.Width, t.Height, t.Unit, t.Fields, t.ZPLTemplate,
		nullIfEmpty(t.PreviewURL), t.Active, t.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("update label template", err)
	}
	return requireAffected(tag, "update label template")
}

// SetActive activa o desactiva una plantilla.
func (r *LabelTemplateRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE label_templates SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return translateWriteError("set label template active", err)
	}
	return requireAffected(tag, "set label template active")
}

// List lista plantillas por nombre.
func (r *LabelTemplateRepo) List(ctx context.Context, f repository.LabelTemplateFilter) ([]*entity.LabelTemplate, int, error) {
	var w whereBuilder
	if f.ActiveOnly {
		w.addRaw("active")
	}
	query := `SELECT ` + labelTemplateColumns + `, COUNT(*) OVER() FROM label_templates` + w.sql() + ` ORDER BY name` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list label templates: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.LabelTemplate
		total int
	)
	for rows.Next() {
		t, err := scanLabelTemplate(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan label template: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

func scanLabelTemplate(row pgx.Row, extra ...any) (*entity.LabelTemplate, error) {
	var t entity.LabelTemplate
	dest := []any{&t.ID, &t.Name, &t.Description, &t.Width, &t.Height, &t.Unit, &t.Fields, &t.ZPLTemplate,
		&t.PreviewURL, &t.Active, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &t, nil
}

// LabelPrintRepo historial de impresiones.
type LabelPrintRepo struct {
	q Querier
}

// NewLabelPrintRepository construye el adaptador de impresiones.
func NewLabelPrintRepository(q Querier) *LabelPrintRepo {
	return &LabelPrintRepo{q: q}
}

// Create registra una impresión.
func (r *LabelPrintRepo) Create(ctx context.Context, p *entity.LabelPrint) error {
	var port *int
	if p.PrinterPort > 0 {
		port = &p.PrinterPort
	}
	query := `
		INSERT INTO label_prints (id, batch_id, label_template_id, quantity, zpl_data, printer_name, printer_ip,
			printer_port, status, print_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.BatchID, p.LabelTemplateID, p.Quantity, p.ZPLData, nullIfEmpty(p.PrinterName),
		nullIfEmpty(p.PrinterIP), port, p.Status, p.PrintDate, nullIfEmpty(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("insert label print", err)
	}
	return nil
}

// ListByBatch historial de impresiones del lote, más recientes primero.
func (r *LabelPrintRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.LabelPrint, error) {
	query := `
		SELECT id, batch_id, label_template_id::text, quantity, zpl_data, COALESCE(printer_name, ''),
			COALESCE(printer_ip, ''), COALESCE(printer_port, 0), status, print_date, COALESCE(created_by::text, ''),
			created_at, updated_at
		FROM label_prints WHERE batch_id = $1 ORDER BY print_date DESC`
	rows, err := r.q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list label prints: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.LabelPrint, 0)
	for rows.Next() {
		var p entity.LabelPrint
		if err := rows.Scan(&p.ID, &p.BatchID, &p.LabelTemplateID, &p.Quantity, &p.ZPLData, &p.PrinterName,
			&p.PrinterIP, &p.PrinterPort, &p.Status, &p.PrintDate, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan label print: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
