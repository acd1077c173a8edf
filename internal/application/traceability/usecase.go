package traceability

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
	tracedomain "github.com/jhoicas/Trazabilidad-api/internal/domain/traceability"
)

// UseCase registra movimientos de lotes y reconstruye su cadena de custodia.
type UseCase struct {
	txRunner    TxRunner
	batchRepo   repository.BatchRepository
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	batchRepo repository.BatchRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		batchRepo:   batchRepo,
		movRepo:     movRepo,
		productRepo: productRepo,
		companyRepo: companyRepo,
		now:         time.Now,
	}
}

// RecordMovement valida y agrega un movimiento a la cadena del lote en una transacción.
// El lote no se modifica: su estado actual se deriva de la cadena.
func (uc *UseCase) RecordMovement(ctx context.Context, userID string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	movType, ok := entity.ParseMovementType(in.MovementType)
	if !ok {
		return nil, fmt.Errorf("tipo de movimiento %q: %w", in.MovementType, domain.ErrValidation)
	}
	qty := in.Quantity.Round(3)
	if !qty.IsPositive() {
		return nil, fmt.Errorf("la cantidad debe ser mayor a cero: %w", domain.ErrValidation)
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		return nil, fmt.Errorf("unidad requerida: %w", domain.ErrValidation)
	}
	if in.MovementDate.IsZero() {
		return nil, fmt.Errorf("fecha del movimiento requerida: %w", domain.ErrValidation)
	}
	location, err := parseLocation(in.Latitude, in.Longitude)
	if err != nil {
		return nil, err
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = movType.DefaultStatus()
	}

	now := uc.now()
	mov := &entity.Movement{
		ID:                   uuid.New().String(),
		BatchID:              in.BatchID,
		OriginCompanyID:      blankToNil(in.OriginCompanyID),
		DestinationCompanyID: blankToNil(in.DestinationCompanyID),
		Quantity:             qty,
		Unit:                 unit,
		Type:                 movType,
		Status:               status,
		MovementDate:         in.MovementDate,
		Location:             location,
		AdditionalInfo:       in.AdditionalInfo,
		CreatedBy:            blankToNil(&userID),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		companyRepo repository.CompanyRepository,
		movRepo repository.MovementRepository,
	) error {
		batch, err := batchRepo.GetByID(ctx, mov.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return fmt.Errorf("lote %s: %w", mov.BatchID, domain.ErrNotFound)
		}
		for _, id := range []*string{mov.OriginCompanyID, mov.DestinationCompanyID} {
			if id == nil {
				continue
			}
			c, err := companyRepo.GetByID(ctx, *id)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("empresa %s: %w", *id, domain.ErrNotFound)
			}
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromMovement(mov)
	return &out, nil
}

// LoadChain devuelve el lote y su cadena ordenada. ErrNotFound si el lote no existe.
func (uc *UseCase) LoadChain(ctx context.Context, batchID string) (*entity.Batch, tracedomain.Chain, error) {
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	if batch == nil {
		return nil, nil, fmt.Errorf("lote %s: %w", batchID, domain.ErrNotFound)
	}
	return uc.chainOf(ctx, batch)
}

func (uc *UseCase) chainOf(ctx context.Context, batch *entity.Batch) (*entity.Batch, tracedomain.Chain, error) {
	movements, err := uc.movRepo.ListByBatch(ctx, batch.ID)
	if err != nil {
		return nil, nil, err
	}
	return batch, tracedomain.NewChain(movements), nil
}

// GetChain cadena cronológica completa del lote (puede estar vacía).
func (uc *UseCase) GetChain(ctx context.Context, batchID string) (*dto.ChainResponse, error) {
	batch, chain, err := uc.LoadChain(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return &dto.ChainResponse{BatchID: batch.ID, Movements: movementsOf(chain)}, nil
}

// GetCurrentHolder poseedor actual derivado del último movimiento: el destino, o el origen si no hay
// destino y no fue una venta. Ver traceability.Chain.CurrentHolder.
func (uc *UseCase) GetCurrentHolder(ctx context.Context, batchID string) (*dto.HolderResponse, error) {
	batch, chain, err := uc.LoadChain(ctx, batchID)
	if err != nil {
		return nil, err
	}
	h := holderOf(batch, chain)
	return &h, nil
}

// GetLocationTrail recorrido georreferenciado del lote.
func (uc *UseCase) GetLocationTrail(ctx context.Context, batchID string) (*dto.TrailResponse, error) {
	batch, chain, err := uc.LoadChain(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return &dto.TrailResponse{BatchID: batch.ID, Points: trailOf(chain)}, nil
}

// GetPublicTrace consulta por número de lote para el código QR (sin autenticación).
func (uc *UseCase) GetPublicTrace(ctx context.Context, batchNumber string) (*dto.PublicTraceResponse, error) {
	batch, err := uc.batchRepo.GetByNumber(ctx, batchNumber)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("lote %s: %w", batchNumber, domain.ErrNotFound)
	}
	_, chain, err := uc.chainOf(ctx, batch)
	if err != nil {
		return nil, err
	}
	out := &dto.PublicTraceResponse{
		Batch:  dto.FromBatch(batch),
		Holder: holderOf(batch, chain),
		Chain:  movementsOf(chain),
		Trail:  trailOf(chain),
	}
	if p, err := uc.productRepo.GetByID(ctx, batch.ProductID); err != nil {
		return nil, err
	} else if p != nil {
		pr := dto.FromProduct(p)
		out.Product = &pr
	}
	if c, err := uc.companyRepo.GetByID(ctx, batch.CompanyID); err != nil {
		return nil, err
	} else if c != nil {
		cr := dto.FromCompany(c)
		out.Company = &cr
	}
	return out, nil
}

// ListMovements listado paginado de movimientos de todos los lotes.
func (uc *UseCase) ListMovements(ctx context.Context, q dto.MovementListQuery) (*dto.MovementListResponse, error) {
	period, err := q.DateRangeQuery.Parse()
	if err != nil {
		return nil, err
	}
	q.DefaultPage()
	list, total, err := uc.movRepo.List(ctx, repository.MovementFilter{
		Page:      repository.Page{Limit: q.Limit, Offset: q.Offset},
		BatchID:   q.BatchID,
		CompanyID: q.CompanyID,
		Type:      q.MovementType,
		From:      period.From,
		To:        period.To,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.FromMovement(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

func movementsOf(chain tracedomain.Chain) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(chain))
	for _, m := range chain.All() {
		out = append(out, dto.FromMovement(m))
	}
	return out
}

func holderOf(batch *entity.Batch, chain tracedomain.Chain) dto.HolderResponse {
	h := chain.CurrentHolder(batch)
	return dto.HolderResponse{
		BatchID:      batch.ID,
		CompanyID:    h.CompanyID,
		Status:       h.Status,
		MovementType: string(h.MovementType),
		AsOf:         h.AsOf,
	}
}

func trailOf(chain tracedomain.Chain) []dto.TrailPointResponse {
	trail := chain.LocationTrail()
	out := make([]dto.TrailPointResponse, 0, len(trail))
	for _, p := range trail {
		out = append(out, dto.TrailPointResponse{
			MovementID:   p.MovementID,
			Latitude:     p.Location.Latitude,
			Longitude:    p.Location.Longitude,
			MovementType: string(p.Type),
			Timestamp:    p.Timestamp,
		})
	}
	return out
}

// parseLocation exige ambas coordenadas o ninguna, dentro de rango.
func parseLocation(lat, lon *decimal.Decimal) (*entity.GeoPoint, error) {
	if (lat == nil) != (lon == nil) {
		return nil, fmt.Errorf("latitud y longitud van juntas: %w", domain.ErrValidation)
	}
	g := entity.NewGeoPoint(lat, lon)
	if g != nil && !g.Valid() {
		return nil, fmt.Errorf("coordenadas fuera de rango: %w", domain.ErrValidation)
	}
	return g, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
