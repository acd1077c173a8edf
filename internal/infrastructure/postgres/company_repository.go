package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, COALESCE(trading_name, ''), document, document_type, company_type,
	COALESCE(email, ''), COALESCE(phone, ''), COALESCE(website, ''), COALESCE(logo_url, ''),
	address, latitude, longitude, active, COALESCE(created_by::text, ''), created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa. Documento duplicado -> ErrConflict.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	lat, lon := geoArgs(c.Location)
	query := `
		INSERT INTO companies (id, name, trading_name, document, document_type, company_type, email, phone,
			website, logo_url, address, latitude, longitude, active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, nullIfEmpty(c.TradingName), c.Document, c.DocumentType, c.CompanyType,
		nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Website), nullIfEmpty(c.LogoURL),
		c.Address, lat, lon, c.Active, nullIfEmpty(c.CreatedBy), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("insert company", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByDocument obtiene una empresa por documento (CNPJ, NIT...).
func (r *CompanyRepo) GetByDocument(ctx context.Context, document string) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE document = $1`, document))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by document: %w", err)
	}
	return c, nil
}

// Update actualiza los datos de la empresa.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	lat, lon := geoArgs(c.Location)
	query := `
		UPDATE companies SET name = $2, trading_name = $3, document = $4, document_type = $5, company_type = $6,
			email = $7, phone = $8, website = $9, logo_url = $10, address = $11, latitude = $12, longitude = $13,
			active = $14, updated_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, nullIfEmpty(c.TradingName), c.Document, c.DocumentType, c.CompanyType,
		nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Website), nullIfEmpty(c.LogoURL),
		c.Address, lat, lon, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("update company", err)
	}
	return requireAffected(tag, "update company")
}

// SetActive activa o desactiva (borrado lógico) una empresa.
func (r *CompanyRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE companies SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return translateWriteError("set company active", err)
	}
	return requireAffected(tag, "set company active")
}

// List lista empresas por nombre con filtros opcionales.
func (r *CompanyRepo) List(ctx context.Context, f repository.CompanyFilter) ([]*entity.Company, int, error) {
	var w whereBuilder
	if f.Search != "" {
		w.add("(name ILIKE ? OR trading_name ILIKE ? OR document ILIKE ?)", "%"+f.Search+"%")
	}
	if f.CompanyType != "" {
		w.add("company_type = ?", f.CompanyType)
	}
	if f.ActiveOnly {
		w.addRaw("active")
	}
	query := `SELECT ` + companyColumns + `, COUNT(*) OVER() FROM companies` + w.sql() + ` ORDER BY name` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Company
		total int
	)
	for rows.Next() {
		c, err := scanCompany(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// scanCompany lee una fila con companyColumns; extra recibe columnas adicionales (COUNT OVER).
func scanCompany(row pgx.Row, extra ...any) (*entity.Company, error) {
	var (
		c        entity.Company
		lat, lon *decimal.Decimal
	)
	dest := []any{&c.ID, &c.Name, &c.TradingName, &c.Document, &c.DocumentType, &c.CompanyType,
		&c.Email, &c.Phone, &c.Website, &c.LogoURL, &c.Address, &lat, &lon, &c.Active, &c.CreatedBy,
		&c.CreatedAt, &c.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	c.Location = entity.NewGeoPoint(lat, lon)
	return &c, nil
}
