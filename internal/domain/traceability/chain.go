// Package traceability contiene la lógica pura de reconstrucción de la cadena de custodia
// de un lote (servicio de dominio, sin acceso a la base).
package traceability

import (
	"iter"
	"slices"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// Chain secuencia cronológica de todos los movimientos de un lote.
type Chain []*entity.Movement

// NewChain ordena los movimientos por fecha ascendente; a igual fecha manda el orden de inserción (Seq).
// No modifica el slice recibido.
func NewChain(movements []*entity.Movement) Chain {
	chain := slices.Clone(movements)
	slices.SortStableFunc(chain, compareMovements)
	return Chain(chain)
}

func compareMovements(a, b *entity.Movement) int {
	if c := a.MovementDate.Compare(b.MovementDate); c != 0 {
		return c
	}
	switch {
	case a.Seq < b.Seq:
		return -1
	case a.Seq > b.Seq:
		return 1
	}
	return 0
}

// All recorre la cadena en orden. Se puede invocar varias veces.
func (c Chain) All() iter.Seq2[int, *entity.Movement] {
	return func(yield func(int, *entity.Movement) bool) {
		for i, m := range c {
			if !yield(i, m) {
				return
			}
		}
	}
}

// Last devuelve el movimiento más reciente o nil si la cadena está vacía.
func (c Chain) Last() *entity.Movement {
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}

// Holder poseedor actual de un lote derivado de su cadena.
type Holder struct {
	CompanyID    *string
	Status       string
	MovementType entity.MovementType // vacío si el lote no tiene movimientos
	AsOf         time.Time
}

// CurrentHolder deriva el poseedor actual desde el último movimiento.
//
// Con cadena vacía el lote sigue en su empresa de origen con estado "created".
// Si el último movimiento no tiene destino, la custodia permanece en el origen,
// salvo en una venta: el lote salió de la cadena y el poseedor queda vacío.
func (c Chain) CurrentHolder(batch *entity.Batch) Holder {
	last := c.Last()
	if last == nil {
		companyID := batch.CompanyID
		return Holder{
			CompanyID: &companyID,
			Status:    entity.BatchStatusCreated,
			AsOf:      batch.CreatedAt,
		}
	}
	holder := last.DestinationCompanyID
	if holder == nil && last.Type != entity.MovementSale {
		holder = last.OriginCompanyID
	}
	return Holder{
		CompanyID:    holder,
		Status:       last.Status,
		MovementType: last.Type,
		AsOf:         last.MovementDate,
	}
}

// TrailPoint punto georreferenciado de la ruta de un lote.
type TrailPoint struct {
	MovementID string
	Location   entity.GeoPoint
	Type       entity.MovementType
	Timestamp  time.Time
}

// LocationTrail filtra los movimientos con coordenadas conservando el orden cronológico.
func (c Chain) LocationTrail() []TrailPoint {
	trail := make([]TrailPoint, 0, len(c))
	for _, m := range c {
		if m.Location == nil {
			continue
		}
		trail = append(trail, TrailPoint{
			MovementID: m.ID,
			Location:   *m.Location,
			Type:       m.Type,
			Timestamp:  m.MovementDate,
		})
	}
	return trail
}
