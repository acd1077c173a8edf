package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// defaultDocumentType tipo de documento cuando no se informa.
const defaultDocumentType = "CNPJ"

// CompanyUseCase aplica reglas de negocio para empresas de la cadena.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una empresa. Documento repetido -> ErrConflict.
func (uc *CompanyUseCase) Create(ctx context.Context, userID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	document := strings.TrimSpace(in.Document)
	existing, err := uc.repo.GetByDocument(ctx, document)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("documento %s ya registrado: %w", document, domain.ErrConflict)
	}
	location, err := geoPoint(in.Latitude, in.Longitude)
	if err != nil {
		return nil, err
	}
	docType := in.DocumentType
	if docType == "" {
		docType = defaultDocumentType
	}
	now := time.Now()
	company := &entity.Company{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		TradingName:  in.TradingName,
		Document:     document,
		DocumentType: docType,
		CompanyType:  strings.ToLower(strings.TrimSpace(in.CompanyType)),
		Email:        in.Email,
		Phone:        in.Phone,
		Website:      in.Website,
		LogoURL:      in.LogoURL,
		Address:      in.Address,
		Location:     location,
		Active:       true,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	out := dto.FromCompany(company)
	return &out, nil
}

// GetByID obtiene una empresa. ErrNotFound si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromCompany(company)
	return &out, nil
}

// List lista empresas con filtros y paginación.
func (uc *CompanyUseCase) List(ctx context.Context, q dto.CompanyListQuery) (*dto.CompanyListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.CompanyFilter{
		Page:        repository.Page{Limit: q.Limit, Offset: q.Offset},
		Search:      q.Search,
		CompanyType: q.CompanyType,
		ActiveOnly:  q.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.FromCompany(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Update aplica los campos presentes en la petición.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Document != nil && *in.Document != company.Document {
		other, err := uc.repo.GetByDocument(ctx, *in.Document)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != company.ID {
			return nil, fmt.Errorf("documento %s ya registrado: %w", *in.Document, domain.ErrConflict)
		}
		company.Document = *in.Document
	}
	setIfPresent(&company.Name, in.Name)
	setIfPresent(&company.TradingName, in.TradingName)
	setIfPresent(&company.DocumentType, in.DocumentType)
	if in.CompanyType != nil {
		company.CompanyType = strings.ToLower(strings.TrimSpace(*in.CompanyType))
	}
	setIfPresent(&company.Email, in.Email)
	setIfPresent(&company.Phone, in.Phone)
	setIfPresent(&company.Website, in.Website)
	setIfPresent(&company.LogoURL, in.LogoURL)
	if len(in.Address) > 0 {
		company.Address = in.Address
	}
	if in.Latitude != nil || in.Longitude != nil {
		location, err := geoPoint(in.Latitude, in.Longitude)
		if err != nil {
			return nil, err
		}
		company.Location = location
	}
	if in.Active != nil {
		company.Active = *in.Active
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	out := dto.FromCompany(company)
	return &out, nil
}

// Deactivate borrado lógico: los movimientos históricos siguen apuntando a la empresa.
func (uc *CompanyUseCase) Deactivate(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, false)
}

func (uc *CompanyUseCase) get(ctx context.Context, id string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrNotFound)
	}
	return company, nil
}

// geoPoint exige ambas coordenadas o ninguna, dentro de rango.
func geoPoint(lat, lon *decimal.Decimal) (*entity.GeoPoint, error) {
	if (lat == nil) != (lon == nil) {
		return nil, fmt.Errorf("latitud y longitud van juntas: %w", domain.ErrValidation)
	}
	g := entity.NewGeoPoint(lat, lon)
	if g != nil && !g.Valid() {
		return nil, fmt.Errorf("coordenadas fuera de rango: %w", domain.ErrValidation)
	}
	return g, nil
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
