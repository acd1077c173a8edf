package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name            string           `json:"name" validate:"required,min=1,max=255"`
	Description     string           `json:"description"`
	SKU             string           `json:"sku" validate:"omitempty,max=64"`
	Barcode         string           `json:"barcode" validate:"omitempty,max=64"`
	Category        string           `json:"category" validate:"omitempty,max=100"`
	Brand           string           `json:"brand" validate:"omitempty,max=100"`
	Unit            string           `json:"unit" validate:"omitempty,max=16"`
	Weight          *decimal.Decimal `json:"weight"`
	WeightUnit      string           `json:"weight_unit" validate:"omitempty,max=16"`
	NutritionalInfo json.RawMessage  `json:"nutritional_info"`
	Variety         string           `json:"variety" validate:"omitempty,max=100"`
	Cultivar        string           `json:"cultivar" validate:"omitempty,max=100"`
	Origin          string           `json:"origin" validate:"omitempty,max=100"`
	ImageURL        string           `json:"image_url" validate:"omitempty,url"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description"`
	SKU             *string          `json:"sku" validate:"omitempty,max=64"`
	Barcode         *string          `json:"barcode" validate:"omitempty,max=64"`
	Category        *string          `json:"category" validate:"omitempty,max=100"`
	Brand           *string          `json:"brand" validate:"omitempty,max=100"`
	Unit            *string          `json:"unit" validate:"omitempty,min=1,max=16"`
	Weight          *decimal.Decimal `json:"weight"`
	WeightUnit      *string          `json:"weight_unit" validate:"omitempty,max=16"`
	NutritionalInfo json.RawMessage  `json:"nutritional_info"`
	Variety         *string          `json:"variety" validate:"omitempty,max=100"`
	Cultivar        *string          `json:"cultivar" validate:"omitempty,max=100"`
	Origin          *string          `json:"origin" validate:"omitempty,max=100"`
	ImageURL        *string          `json:"image_url" validate:"omitempty,url"`
	Active          *bool            `json:"active"`
}

// ProductListQuery filtros de GET /api/products.
type ProductListQuery struct {
	PageRequest
	Search     string `query:"search"`
	Category   string `query:"category"`
	ActiveOnly bool   `query:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	SKU             string           `json:"sku,omitempty"`
	Barcode         string           `json:"barcode,omitempty"`
	Category        string           `json:"category,omitempty"`
	Brand           string           `json:"brand,omitempty"`
	Unit            string           `json:"unit"`
	Weight          *decimal.Decimal `json:"weight,omitempty"`
	WeightUnit      string           `json:"weight_unit,omitempty"`
	NutritionalInfo json.RawMessage  `json:"nutritional_info,omitempty"`
	Variety         string           `json:"variety,omitempty"`
	Cultivar        string           `json:"cultivar,omitempty"`
	Origin          string           `json:"origin,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	Active          bool             `json:"active"`
	CreatedBy       string           `json:"created_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
