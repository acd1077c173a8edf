package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de un lote. Conjunto cerrado validado en la frontera.
type MovementType string

const (
	MovementProduction   MovementType = "production"
	MovementTransport    MovementType = "transport"
	MovementStorage      MovementType = "storage"
	MovementDistribution MovementType = "distribution"
	MovementSale         MovementType = "sale"
)

// MovementTypes lista los tipos conocidos en el orden habitual de la cadena.
var MovementTypes = []MovementType{
	MovementProduction, MovementTransport, MovementStorage, MovementDistribution, MovementSale,
}

// ParseMovementType devuelve el tipo y si es uno de los conocidos.
func ParseMovementType(s string) (MovementType, bool) {
	t := MovementType(s)
	for _, known := range MovementTypes {
		if t == known {
			return t, true
		}
	}
	return t, false
}

// Movement registro inmutable de un cambio de ubicación, custodia o estado de un lote.
// Origen y destino son opcionales: al borrar una empresa quedan en vacío (ON DELETE SET NULL)
// sin invalidar el histórico.
type Movement struct {
	ID                   string
	Seq                  int64 // orden de inserción; desempata movimientos con la misma fecha
	BatchID              string
	OriginCompanyID      *string
	DestinationCompanyID *string
	Quantity             decimal.Decimal // decimal(15,3); puede ser parcial respecto al lote
	Unit                 string
	Type                 MovementType
	Status               string
	MovementDate         time.Time
	Location             *GeoPoint
	AdditionalInfo       json.RawMessage
	CreatedBy            *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DefaultStatus estado que toma el movimiento cuando no se informa uno explícito.
func (t MovementType) DefaultStatus() string {
	switch t {
	case MovementProduction:
		return BatchStatusCreated
	case MovementTransport:
		return BatchStatusInTransit
	case MovementStorage:
		return BatchStatusStored
	case MovementDistribution:
		return BatchStatusDistributed
	case MovementSale:
		return BatchStatusSold
	}
	return BatchStatusOther
}
