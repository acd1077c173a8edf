package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest entrada para registrar un lote.
type CreateBatchRequest struct {
	BatchNumber    string          `json:"batch_number" validate:"required,min=1,max=64"`
	ProductID      string          `json:"product_id" validate:"required,uuid"`
	CompanyID      string          `json:"company_id" validate:"required,uuid"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit" validate:"required,max=16"`
	ProductionDate time.Time       `json:"production_date" validate:"required"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	Status         string          `json:"status" validate:"omitempty,max=32"`
	Barcode        string          `json:"barcode" validate:"omitempty,max=64"`
	AdditionalInfo json.RawMessage `json:"additional_info"`
}

// UpdateBatchRequest entrada para actualizar un lote (campos opcionales).
type UpdateBatchRequest struct {
	BatchNumber    *string          `json:"batch_number" validate:"omitempty,min=1,max=64"`
	ProductID      *string          `json:"product_id" validate:"omitempty,uuid"`
	CompanyID      *string          `json:"company_id" validate:"omitempty,uuid"`
	Quantity       *decimal.Decimal `json:"quantity"`
	Unit           *string          `json:"unit" validate:"omitempty,min=1,max=16"`
	ProductionDate *time.Time       `json:"production_date"`
	ExpirationDate *time.Time       `json:"expiration_date"`
	Status         *string          `json:"status" validate:"omitempty,min=1,max=32"`
	Barcode        *string          `json:"barcode" validate:"omitempty,max=64"`
	AdditionalInfo json.RawMessage  `json:"additional_info"`
}

// BatchListQuery filtros de GET /api/batches.
type BatchListQuery struct {
	PageRequest
	Search    string `query:"search"`
	ProductID string `query:"product_id" validate:"omitempty,uuid"`
	CompanyID string `query:"company_id" validate:"omitempty,uuid"`
	Status    string `query:"status"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID             string          `json:"id"`
	BatchNumber    string          `json:"batch_number"`
	ProductID      string          `json:"product_id"`
	CompanyID      string          `json:"company_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	ProductionDate time.Time       `json:"production_date"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	Status         string          `json:"status"`
	StatusClass    string          `json:"status_class"` // estado conocido u "other"
	QRCode         string          `json:"qr_code,omitempty"`
	Barcode        string          `json:"barcode,omitempty"`
	AdditionalInfo json.RawMessage `json:"additional_info,omitempty"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BatchListResponse lista paginada de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// QRCodeResponse payload del código QR de un lote.
type QRCodeResponse struct {
	BatchID     string `json:"batch_id"`
	BatchNumber string `json:"batch_number"`
	QRCode      string `json:"qr_code"`
}
