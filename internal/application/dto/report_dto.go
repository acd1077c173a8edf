package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse respuesta de GET /api/reports/dashboard.
type DashboardResponse struct {
	TotalProducts  int `json:"total_products"`
	TotalCompanies int `json:"total_companies"`
	TotalBatches   int `json:"total_batches"`
	TotalMovements int `json:"total_movements"`

	// Últimos 12 meses, incluido el actual; meses sin producción en cero.
	ProductionByMonth []MonthlyProductionDTO `json:"production_by_month"`
	BatchesByStatus   []StatusCountDTO       `json:"batches_by_status"`
	MovementsByType   []TypeCountDTO         `json:"movements_by_type"`
	RecentBatches     []BatchSummaryDTO      `json:"recent_batches"`
	RecentMovements   []MovementSummaryDTO   `json:"recent_movements"`
	GeneratedAt       time.Time              `json:"generated_at"`
}

// MonthlyProductionDTO producción de un mes (YYYY-MM).
type MonthlyProductionDTO struct {
	Month    string          `json:"month"`
	Batches  int             `json:"batches"`
	Quantity decimal.Decimal `json:"quantity"`
}

// StatusCountDTO lotes por estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// TypeCountDTO movimientos por tipo.
type TypeCountDTO struct {
	MovementType string          `json:"movement_type"`
	Count        int             `json:"count"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// CompanyActivityDTO actividad de una empresa en el período.
type CompanyActivityDTO struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Outgoing    int    `json:"outgoing"`
	Incoming    int    `json:"incoming"`
}

// BatchSummaryDTO fila resumida de lote.
type BatchSummaryDTO struct {
	ID             string          `json:"id"`
	BatchNumber    string          `json:"batch_number"`
	ProductName    string          `json:"product_name"`
	CompanyName    string          `json:"company_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	Status         string          `json:"status"`
	ProductionDate time.Time       `json:"production_date"`
}

// MovementSummaryDTO fila resumida de movimiento.
type MovementSummaryDTO struct {
	ID              string          `json:"id"`
	BatchID         string          `json:"batch_id"`
	BatchNumber     string          `json:"batch_number"`
	ProductName     string          `json:"product_name"`
	MovementType    string          `json:"movement_type"`
	Status          string          `json:"status"`
	OriginName      string          `json:"origin_name,omitempty"`
	DestinationName string          `json:"destination_name,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	MovementDate    time.Time       `json:"movement_date"`
}

// MovementReportResponse respuesta de GET /api/reports/movements.
type MovementReportResponse struct {
	From      *time.Time           `json:"from"`
	To        *time.Time           `json:"to"`
	Total     int                  `json:"total"`
	ByType    []TypeCountDTO       `json:"by_type"`
	ByCompany []CompanyActivityDTO `json:"by_company"`
}
