package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// BatchUseCase registro de lotes y generación del payload QR.
type BatchUseCase struct {
	repo        repository.BatchRepository
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	movRepo     repository.MovementRepository
	publicURL   string
}

// NewBatchUseCase construye el caso de uso. publicURL es la base de la consulta pública del QR.
func NewBatchUseCase(
	repo repository.BatchRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	movRepo repository.MovementRepository,
	publicURL string,
) *BatchUseCase {
	return &BatchUseCase{
		repo:        repo,
		productRepo: productRepo,
		companyRepo: companyRepo,
		movRepo:     movRepo,
		publicURL:   strings.TrimRight(publicURL, "/"),
	}
}

// Create registra un lote. Producto o empresa inexistente -> ErrNotFound; número repetido -> ErrConflict.
func (uc *BatchUseCase) Create(ctx context.Context, userID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	number := strings.TrimSpace(in.BatchNumber)
	if number == "" {
		return nil, fmt.Errorf("batch_number obligatorio: %w", domain.ErrValidation)
	}
	qty := in.Quantity.Round(3)
	if !qty.IsPositive() {
		return nil, fmt.Errorf("cantidad debe ser mayor que cero: %w", domain.ErrValidation)
	}
	if in.ProductionDate.IsZero() {
		return nil, fmt.Errorf("production_date obligatorio: %w", domain.ErrValidation)
	}
	if in.ExpirationDate != nil && in.ExpirationDate.Before(in.ProductionDate) {
		return nil, fmt.Errorf("expiration_date anterior a production_date: %w", domain.ErrValidation)
	}
	if err := uc.ensureRefs(ctx, in.ProductID, in.CompanyID); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("lote %s ya registrado: %w", number, domain.ErrConflict)
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = entity.BatchStatusCreated
	}
	now := time.Now()
	batch := &entity.Batch{
		ID:             uuid.New().String(),
		BatchNumber:    number,
		ProductID:      in.ProductID,
		CompanyID:      in.CompanyID,
		Quantity:       qty,
		Unit:           in.Unit,
		ProductionDate: in.ProductionDate,
		ExpirationDate: in.ExpirationDate,
		Status:         status,
		Barcode:        in.Barcode,
		AdditionalInfo: in.AdditionalInfo,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, batch); err != nil {
		return nil, err
	}
	out := dto.FromBatch(batch)
	return &out, nil
}

// GetByID obtiene un lote.
func (uc *BatchUseCase) GetByID(ctx context.Context, id string) (*dto.BatchResponse, error) {
	batch, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromBatch(batch)
	return &out, nil
}

// List lista lotes por producto, empresa, estado o texto.
func (uc *BatchUseCase) List(ctx context.Context, q dto.BatchListQuery) (*dto.BatchListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.BatchFilter{
		Page:      repository.Page{Limit: q.Limit, Offset: q.Offset},
		Search:    q.Search,
		ProductID: q.ProductID,
		CompanyID: q.CompanyID,
		Status:    q.Status,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, dto.FromBatch(b))
	}
	return &dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Update aplica los campos presentes. No toca la cadena de movimientos.
func (uc *BatchUseCase) Update(ctx context.Context, id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	batch, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.BatchNumber != nil {
		number := strings.TrimSpace(*in.BatchNumber)
		if number != batch.BatchNumber {
			other, err := uc.repo.GetByNumber(ctx, number)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, fmt.Errorf("lote %s ya registrado: %w", number, domain.ErrConflict)
			}
			batch.BatchNumber = number
		}
	}
	productID, companyID := batch.ProductID, batch.CompanyID
	setIfPresent(&productID, in.ProductID)
	setIfPresent(&companyID, in.CompanyID)
	if productID != batch.ProductID || companyID != batch.CompanyID {
		if err := uc.ensureRefs(ctx, productID, companyID); err != nil {
			return nil, err
		}
		batch.ProductID, batch.CompanyID = productID, companyID
	}
	if in.Quantity != nil {
		qty := in.Quantity.Round(3)
		if !qty.IsPositive() {
			return nil, fmt.Errorf("cantidad debe ser mayor que cero: %w", domain.ErrValidation)
		}
		batch.Quantity = qty
	}
	setIfPresent(&batch.Unit, in.Unit)
	if in.ProductionDate != nil {
		batch.ProductionDate = *in.ProductionDate
	}
	if in.ExpirationDate != nil {
		batch.ExpirationDate = in.ExpirationDate
	}
	if batch.ExpirationDate != nil && batch.ExpirationDate.Before(batch.ProductionDate) {
		return nil, fmt.Errorf("expiration_date anterior a production_date: %w", domain.ErrValidation)
	}
	setIfPresent(&batch.Status, in.Status)
	setIfPresent(&batch.Barcode, in.Barcode)
	if len(in.AdditionalInfo) > 0 {
		batch.AdditionalInfo = in.AdditionalInfo
	}
	batch.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, batch); err != nil {
		return nil, err
	}
	out := dto.FromBatch(batch)
	return &out, nil
}

// Delete elimina un lote que aún no tiene movimientos (sus impresiones se borran en cascada).
// Un lote con cadena registrada no se puede borrar -> ErrConflict.
func (uc *BatchUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	movements, err := uc.movRepo.ListByBatch(ctx, id)
	if err != nil {
		return err
	}
	if len(movements) > 0 {
		return fmt.Errorf("lote %s tiene %d movimientos registrados: %w", id, len(movements), domain.ErrConflict)
	}
	return uc.repo.Delete(ctx, id)
}

// GenerateQRCode guarda como qr_code la URL pública de trazabilidad del lote.
func (uc *BatchUseCase) GenerateQRCode(ctx context.Context, id string) (*dto.QRCodeResponse, error) {
	batch, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	payload := PublicTraceURL(uc.publicURL, batch.BatchNumber)
	if err := uc.repo.UpdateQRCode(ctx, batch.ID, payload); err != nil {
		return nil, err
	}
	return &dto.QRCodeResponse{BatchID: batch.ID, BatchNumber: batch.BatchNumber, QRCode: payload}, nil
}

// PublicTraceURL URL que codifica el QR de un lote.
func PublicTraceURL(base, batchNumber string) string {
	return strings.TrimRight(base, "/") + "/public/trace/" + url.PathEscape(batchNumber)
}

func (uc *BatchUseCase) get(ctx context.Context, id string) (*entity.Batch, error) {
	batch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("lote %s: %w", id, domain.ErrNotFound)
	}
	return batch, nil
}

func (uc *BatchUseCase) ensureRefs(ctx context.Context, productID, companyID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}
	return nil
}
