package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto rastreable (fruta, grano, procesado...). Sus lotes se registran en Batch.
type Product struct {
	ID              string
	Name            string
	Description     string
	SKU             string // opcional, único si existe
	Barcode         string
	Category        string
	Brand           string
	Unit            string // un, kg, cx...
	Weight          *decimal.Decimal
	WeightUnit      string
	NutritionalInfo json.RawMessage
	Variety         string
	Cultivar        string
	Origin          string
	ImageURL        string
	Active          bool
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
