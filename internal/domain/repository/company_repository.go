package repository

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByDocument(ctx context.Context, document string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, f CompanyFilter) ([]*entity.Company, int, error)
}
