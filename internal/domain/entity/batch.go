package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de lote conocidos. El campo es texto libre; los desconocidos se clasifican como BatchStatusOther.
const (
	BatchStatusCreated     = "created"
	BatchStatusInTransit   = "in_transit"
	BatchStatusStored      = "stored"
	BatchStatusDistributed = "distributed"
	BatchStatusSold        = "sold"
	BatchStatusConsumed    = "consumed"
	BatchStatusOther       = "other"
)

var knownBatchStatuses = map[string]bool{
	BatchStatusCreated:     true,
	BatchStatusInTransit:   true,
	BatchStatusStored:      true,
	BatchStatusDistributed: true,
	BatchStatusSold:        true,
	BatchStatusConsumed:    true,
}

// ClassifyBatchStatus devuelve el estado conocido o BatchStatusOther.
func ClassifyBatchStatus(s string) string {
	if knownBatchStatuses[s] {
		return s
	}
	return BatchStatusOther
}

// Batch representa un lote de un producto elaborado por una empresa.
// Status es un valor de conveniencia: el estado real se reconstruye desde la cadena de movimientos.
type Batch struct {
	ID             string
	BatchNumber    string // único
	ProductID      string
	CompanyID      string // empresa de origen (productora)
	Quantity       decimal.Decimal
	Unit           string
	ProductionDate time.Time
	ExpirationDate *time.Time
	Status         string
	QRCode         string
	Barcode        string
	AdditionalInfo json.RawMessage
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
