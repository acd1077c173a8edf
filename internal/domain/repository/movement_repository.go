package repository

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para los movimientos de lotes.
// Los movimientos son de solo inserción: no hay Update ni Delete.
type MovementRepository interface {
	// Create inserta el movimiento y completa m.Seq con el orden asignado por la base.
	Create(ctx context.Context, m *entity.Movement) error

	// ListByBatch devuelve todos los movimientos del lote por movement_date, seq.
	ListByBatch(ctx context.Context, batchID string) ([]*entity.Movement, error)

	List(ctx context.Context, f MovementFilter) ([]*entity.Movement, int, error)
}
