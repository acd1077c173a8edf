package traceability

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El registro de un movimiento (verificaciones de existencia + inserción) es atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		companyRepo repository.CompanyRepository,
		movRepo repository.MovementRepository,
	) error) error
}
