package repository

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// LabelTemplateRepository define el puerto de persistencia para plantillas de etiquetas.
type LabelTemplateRepository interface {
	Create(ctx context.Context, t *entity.LabelTemplate) error
	GetByID(ctx context.Context, id string) (*entity.LabelTemplate, error)
	Update(ctx context.Context, t *entity.LabelTemplate) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, f LabelTemplateFilter) ([]*entity.LabelTemplate, int, error)
}

// LabelPrintRepository registro histórico de impresiones.
type LabelPrintRepository interface {
	Create(ctx context.Context, p *entity.LabelPrint) error
	ListByBatch(ctx context.Context, batchID string) ([]*entity.LabelPrint, error)
}
