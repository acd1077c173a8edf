package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/traceability/movements.
type RecordMovementRequest struct {
	BatchID              string           `json:"batch_id" validate:"required,uuid"`
	OriginCompanyID      *string          `json:"origin_company_id" validate:"omitempty,uuid"`
	DestinationCompanyID *string          `json:"destination_company_id" validate:"omitempty,uuid"`
	Quantity             decimal.Decimal  `json:"quantity"`
	Unit                 string           `json:"unit" validate:"required,max=16"`
	MovementType         string           `json:"movement_type" validate:"required,oneof=production transport storage distribution sale"`
	Status               string           `json:"status" validate:"omitempty,max=32"`
	MovementDate         time.Time        `json:"movement_date" validate:"required"`
	Latitude             *decimal.Decimal `json:"latitude" validate:"required_with=Longitude"`
	Longitude            *decimal.Decimal `json:"longitude" validate:"required_with=Latitude"`
	AdditionalInfo       json.RawMessage  `json:"additional_info"`
}

// MovementListQuery filtros de GET /api/traceability/movements.
type MovementListQuery struct {
	PageRequest
	DateRangeQuery
	BatchID      string `query:"batch_id" validate:"omitempty,uuid"`
	CompanyID    string `query:"company_id" validate:"omitempty,uuid"`
	MovementType string `query:"movement_type" validate:"omitempty,oneof=production transport storage distribution sale"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID                   string           `json:"id"`
	Seq                  int64            `json:"seq"`
	BatchID              string           `json:"batch_id"`
	OriginCompanyID      *string          `json:"origin_company_id"`
	DestinationCompanyID *string          `json:"destination_company_id"`
	Quantity             decimal.Decimal  `json:"quantity"`
	Unit                 string           `json:"unit"`
	MovementType         string           `json:"movement_type"`
	Status               string           `json:"status"`
	MovementDate         time.Time        `json:"movement_date"`
	Latitude             *decimal.Decimal `json:"latitude"`
	Longitude            *decimal.Decimal `json:"longitude"`
	AdditionalInfo       json.RawMessage  `json:"additional_info,omitempty"`
	CreatedBy            *string          `json:"created_by"`
	CreatedAt            time.Time        `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ChainResponse cadena cronológica completa de un lote.
type ChainResponse struct {
	BatchID   string             `json:"batch_id"`
	Movements []MovementResponse `json:"movements"`
}

// HolderResponse poseedor actual de un lote. CompanyID nil cuando el lote salió de la cadena.
type HolderResponse struct {
	BatchID      string    `json:"batch_id"`
	CompanyID    *string   `json:"company_id"`
	Status       string    `json:"status"`
	MovementType string    `json:"movement_type,omitempty"`
	AsOf         time.Time `json:"as_of"`
}

// TrailPointResponse punto georreferenciado del recorrido.
type TrailPointResponse struct {
	MovementID   string          `json:"movement_id"`
	Latitude     decimal.Decimal `json:"latitude"`
	Longitude    decimal.Decimal `json:"longitude"`
	MovementType string          `json:"movement_type"`
	Timestamp    time.Time       `json:"timestamp"`
}

// TrailResponse recorrido geográfico de un lote.
type TrailResponse struct {
	BatchID string               `json:"batch_id"`
	Points  []TrailPointResponse `json:"points"`
}

// PublicTraceResponse consulta pública de un lote (destino del código QR).
type PublicTraceResponse struct {
	Batch   BatchResponse        `json:"batch"`
	Product *ProductResponse     `json:"product"`
	Company *CompanyResponse     `json:"company"`
	Holder  HolderResponse       `json:"holder"`
	Chain   []MovementResponse   `json:"chain"`
	Trail   []TrailPointResponse `json:"trail"`
}
