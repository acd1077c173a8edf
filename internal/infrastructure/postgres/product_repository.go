package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, COALESCE(description, ''), COALESCE(sku, ''), COALESCE(barcode, ''),
	COALESCE(category, ''), COALESCE(brand, ''), unit, weight, COALESCE(weight_unit, ''), nutritional_info,
	COALESCE(variety, ''), COALESCE(cultivar, ''), COALESCE(origin, ''), COALESCE(image_url, ''), active,
	COALESCE(created_by::text, ''), created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU duplicado -> ErrConflict; SKU vacío se guarda como NULL.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, sku, barcode, category, brand, unit, weight, weight_unit,
			nutritional_info, variety, cultivar, origin, image_url, active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.SKU), nullIfEmpty(p.Barcode),
		nullIfEmpty(p.Category), nullIfEmpty(p.Brand), p.Unit, p.Weight, nullIfEmpty(p.WeightUnit),
		p.NutritionalInfo, nullIfEmpty(p.Variety), nullIfEmpty(p.Cultivar), nullIfEmpty(p.Origin),
		nullIfEmpty(p.ImageURL), p.Active, nullIfEmpty(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, sku = $4, barcode = $5, category = $6, brand = $7,
			unit = $8, weight = $9, weight_unit = $10, nutritional_info = $11, variety = $12, cultivar = $13,
			origin = $14, image_url = $15, active = $16, updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.SKU), nullIfEmpty(p.Barcode),
		nullIfEmpty(p.Category), nullIfEmpty(p.Brand), p.Unit, p.Weight, nullIfEmpty(p.WeightUnit),
		p.NutritionalInfo, nullIfEmpty(p.Variety), nullIfEmpty(p.Cultivar), nullIfEmpty(p.Origin),
		nullIfEmpty(p.ImageURL), p.Active, p.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("update product", err)
	}
	return requireAffected(tag, "update product")
}

// SetActive activa o desactiva un producto.
func (r *ProductRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return translateWriteError("set product active", err)
	}
	return requireAffected(tag, "set product active")
}

// List lista productos por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var w whereBuilder
	if f.Search != "" {
		w.add("(name ILIKE ? OR sku ILIKE ?)", "%"+f.Search+"%")
	}
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if f.ActiveOnly {
		w.addRaw("active")
	}
	query := `SELECT ` + productColumns + `, COUNT(*) OVER() FROM products` + w.sql() + ` ORDER BY name` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Product
		total int
	)
	for rows.Next() {
		p, err := scanProduct(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func scanProduct(row pgx.Row, extra ...any) (*entity.Product, error) {
	var p entity.Product
	dest := []any{&p.ID, &p.Name, &p.Description, &p.SKU, &p.Barcode, &p.Category, &p.Brand, &p.Unit,
		&p.Weight, &p.WeightUnit, &p.NutritionalInfo, &p.Variety, &p.Cultivar, &p.Origin, &p.ImageURL,
		&p.Active, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}
