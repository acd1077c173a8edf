package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Totals conteos globales para las tarjetas del dashboard.
type Totals struct {
	Products  int
	Companies int
	Batches   int
	Movements int
}

// MonthlyProduction lotes producidos en un mes (primer día del mes en UTC).
type MonthlyProduction struct {
	Month    time.Time
	Batches  int
	Quantity decimal.Decimal
}

// StatusCount lotes agrupados por estado.
type StatusCount struct {
	Status string
	Count  int
}

// TypeCount movimientos agrupados por tipo.
type TypeCount struct {
	Type     string
	Count    int
	Quantity decimal.Decimal
}

// CompanyActivity movimientos enviados y recibidos por una empresa en el período.
type CompanyActivity struct {
	CompanyID   string
	CompanyName string
	Outgoing    int
	Incoming    int
}

// BatchSummary fila de lote con nombres ya resueltos.
type BatchSummary struct {
	ID             string
	BatchNumber    string
	ProductName    string
	CompanyName    string
	Quantity       decimal.Decimal
	Unit           string
	Status         string
	ProductionDate time.Time
	CreatedAt      time.Time
}

// MovementSummary fila de movimiento con nombres ya resueltos (reportes y exportación).
// Los nombres de origen/destino quedan vacíos si la empresa fue eliminada.
type MovementSummary struct {
	ID              string
	BatchID         string
	BatchNumber     string
	ProductName     string
	Type            string
	Status          string
	OriginName      string
	DestinationName string
	Quantity        decimal.Decimal
	Unit            string
	MovementDate    time.Time
	Latitude        *decimal.Decimal
	Longitude       *decimal.Decimal
}

// ReportRepository define las consultas de lectura para dashboard y reportes.
// Las implementaciones son read-only (no modifican datos).
// from/to nil significa sin límite en ese extremo.
type ReportRepository interface {
	GetTotals(ctx context.Context) (Totals, error)

	// GetProductionByMonth agrupa lotes por mes de production_date desde since (inclusive).
	GetProductionByMonth(ctx context.Context, since time.Time) ([]MonthlyProduction, error)

	GetBatchesByStatus(ctx context.Context) ([]StatusCount, error)
	GetMovementsByType(ctx context.Context, from, to *time.Time) ([]TypeCount, error)
	GetCompanyActivity(ctx context.Context, from, to *time.Time) ([]CompanyActivity, error)

	GetRecentBatches(ctx context.Context, limit int) ([]BatchSummary, error)
	GetRecentMovements(ctx context.Context, limit int) ([]MovementSummary, error)

	// GetMovements devuelve todos los movimientos del período por movement_date, seq.
	GetMovements(ctx context.Context, from, to *time.Time) ([]MovementSummary, error)
}
