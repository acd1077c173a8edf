package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos rastreables.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. SKU repetido -> ErrConflict; unidad por defecto "un".
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	if err := uc.ensureSKUFree(ctx, sku, ""); err != nil {
		return nil, err
	}
	if in.Unit == "" {
		in.Unit = "un"
	}
	if in.Weight != nil && in.Weight.IsNegative() {
		return nil, fmt.Errorf("peso negativo: %w", domain.ErrValidation)
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		SKU:             sku,
		Barcode:         in.Barcode,
		Category:        in.Category,
		Brand:           in.Brand,
		Unit:            in.Unit,
		Weight:          in.Weight,
		WeightUnit:      in.WeightUnit,
		NutritionalInfo: in.NutritionalInfo,
		Variety:         in.Variety,
		Cultivar:        in.Cultivar,
		Origin:          in.Origin,
		ImageURL:        in.ImageURL,
		Active:          true,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Update actualiza un producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku != product.SKU {
			if err := uc.ensureSKUFree(ctx, sku, product.ID); err != nil {
				return nil, err
			}
		}
		product.SKU = sku
	}
	setIfPresent(&product.Name, in.Name)
	setIfPresent(&product.Description, in.Description)
	setIfPresent(&product.Barcode, in.Barcode)
	setIfPresent(&product.Category, in.Category)
	setIfPresent(&product.Brand, in.Brand)
	setIfPresent(&product.Unit, in.Unit)
	if in.Weight != nil {
		if in.Weight.IsNegative() {
			return nil, fmt.Errorf("peso negativo: %w", domain.ErrValidation)
		}
		product.Weight = in.Weight
	}
	setIfPresent(&product.WeightUnit, in.WeightUnit)
	if len(in.NutritionalInfo) > 0 {
		product.NutritionalInfo = in.NutritionalInfo
	}
	setIfPresent(&product.Variety, in.Variety)
	setIfPresent(&product.Cultivar, in.Cultivar)
	setIfPresent(&product.Origin, in.Origin)
	setIfPresent(&product.ImageURL, in.ImageURL)
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		Page:       repository.Page{Limit: q.Limit, Offset: q.Offset},
		Search:     q.Search,
		Category:   q.Category,
		ActiveOnly: q.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Deactivate marca el producto como inactivo; sus lotes no se tocan.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, false)
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

func (uc *ProductUseCase) ensureSKUFree(ctx context.Context, sku, selfID string) error {
	if sku == "" {
		return nil
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("SKU %s ya registrado: %w", sku, domain.ErrConflict)
	}
	return nil
}
