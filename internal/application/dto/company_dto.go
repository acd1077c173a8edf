package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name         string           `json:"name" validate:"required,min=1,max=255"`
	TradingName  string           `json:"trading_name" validate:"omitempty,max=255"`
	Document     string           `json:"document" validate:"required,min=1,max=32"`
	DocumentType string           `json:"document_type" validate:"omitempty,max=16"`
	CompanyType  string           `json:"company_type" validate:"required,max=32"`
	Email        string           `json:"email" validate:"omitempty,email"`
	Phone        string           `json:"phone" validate:"omitempty,max=32"`
	Website      string           `json:"website" validate:"omitempty,url"`
	LogoURL      string           `json:"logo_url" validate:"omitempty,url"`
	Address      json.RawMessage  `json:"address"`
	Latitude     *decimal.Decimal `json:"latitude" validate:"required_with=Longitude"`
	Longitude    *decimal.Decimal `json:"longitude" validate:"required_with=Latitude"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=255"`
	TradingName  *string          `json:"trading_name" validate:"omitempty,max=255"`
	Document     *string          `json:"document" validate:"omitempty,min=1,max=32"`
	DocumentType *string          `json:"document_type" validate:"omitempty,max=16"`
	CompanyType  *string          `json:"company_type" validate:"omitempty,max=32"`
	Email        *string          `json:"email" validate:"omitempty,email"`
	Phone        *string          `json:"phone" validate:"omitempty,max=32"`
	Website      *string          `json:"website" validate:"omitempty,url"`
	LogoURL      *string          `json:"logo_url" validate:"omitempty,url"`
	Address      json.RawMessage  `json:"address"`
	Latitude     *decimal.Decimal `json:"latitude" validate:"required_with=Longitude"`
	Longitude    *decimal.Decimal `json:"longitude" validate:"required_with=Latitude"`
	Active       *bool            `json:"active"`
}

// CompanyListQuery filtros de GET /api/companies.
type CompanyListQuery struct {
	PageRequest
	Search      string `query:"search"`
	CompanyType string `query:"company_type"`
	ActiveOnly  bool   `query:"active"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	TradingName  string           `json:"trading_name,omitempty"`
	Document     string           `json:"document"`
	DocumentType string           `json:"document_type"`
	CompanyType  string           `json:"company_type"`
	TypeClass    string           `json:"company_type_class"` // tipo conocido u "other"
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Website      string           `json:"website,omitempty"`
	LogoURL      string           `json:"logo_url,omitempty"`
	Address      json.RawMessage  `json:"address,omitempty"`
	Latitude     *decimal.Decimal `json:"latitude"`
	Longitude    *decimal.Decimal `json:"longitude"`
	Active       bool             `json:"active"`
	CreatedBy    string           `json:"created_by,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
