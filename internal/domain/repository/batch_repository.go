package repository

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para Batch.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	GetByNumber(ctx context.Context, batchNumber string) (*entity.Batch, error)
	Update(ctx context.Context, batch *entity.Batch) error
	UpdateQRCode(ctx context.Context, id, qrCode string) error

	// Delete borra el lote; sus movimientos e impresiones caen en cascada.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f BatchFilter) ([]*entity.Batch, int, error)
}
