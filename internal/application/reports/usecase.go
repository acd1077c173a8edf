package reports

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

const (
	dashboardMonths = 12
	recentLimit     = 5
)

// UseCase dashboard y reportes de movimientos. Solo lectura.
type UseCase struct {
	repo repository.ReportRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(repo repository.ReportRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Dashboard reúne totales, producción mensual, distribución por estado/tipo y lo más reciente.
// Las consultas son independientes y se ejecutan en paralelo.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	now := uc.now().UTC()
	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(dashboardMonths - 1), 0)

	var (
		totals    repository.Totals
		monthly   []repository.MonthlyProduction
		byStatus  []repository.StatusCount
		byType    []repository.TypeCount
		batches   []repository.BatchSummary
		movements []repository.MovementSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { totals, err = uc.repo.GetTotals(gctx); return })
	g.Go(func() (err error) { monthly, err = uc.repo.GetProductionByMonth(gctx, firstMonth); return })
	g.Go(func() (err error) { byStatus, err = uc.repo.GetBatchesByStatus(gctx); return })
	g.Go(func() (err error) { byType, err = uc.repo.GetMovementsByType(gctx, nil, nil); return })
	g.Go(func() (err error) { batches, err = uc.repo.GetRecentBatches(gctx, recentLimit); return })
	g.Go(func() (err error) { movements, err = uc.repo.GetRecentMovements(gctx, recentLimit); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		TotalProducts:     totals.Products,
		TotalCompanies:    totals.Companies,
		TotalBatches:      totals.Batches,
		TotalMovements:    totals.Movements,
		ProductionByMonth: fillMonths(firstMonth, dashboardMonths, monthly),
		BatchesByStatus:   make([]dto.StatusCountDTO, 0, len(byStatus)),
		MovementsByType:   toTypeCounts(byType),
		RecentBatches:     make([]dto.BatchSummaryDTO, 0, len(batches)),
		RecentMovements:   make([]dto.MovementSummaryDTO, 0, len(movements)),
		GeneratedAt:       now,
	}
	for _, s := range byStatus {
		out.BatchesByStatus = append(out.BatchesByStatus, dto.StatusCountDTO{Status: s.Status, Count: s.Count})
	}
	for _, b := range batches {
		out.RecentBatches = append(out.RecentBatches, dto.BatchSummaryDTO{
			ID:             b.ID,
			BatchNumber:    b.BatchNumber,
			ProductName:    b.ProductName,
			CompanyName:    b.CompanyName,
			Quantity:       b.Quantity,
			Unit:           b.Unit,
			Status:         b.Status,
			ProductionDate: b.ProductionDate,
		})
	}
	for _, m := range movements {
		out.RecentMovements = append(out.RecentMovements, toMovementSummary(m))
	}
	return out, nil
}

// MovementReport agrega los movimientos del período por tipo y por empresa.
func (uc *UseCase) MovementReport(ctx context.Context, period dto.DateRange) (*dto.MovementReportResponse, error) {
	var (
		byType    []repository.TypeCount
		byCompany []repository.CompanyActivity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { byType, err = uc.repo.GetMovementsByType(gctx, period.From, period.To); return })
	g.Go(func() (err error) { byCompany, err = uc.repo.GetCompanyActivity(gctx, period.From, period.To); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.MovementReportResponse{
		From:      period.From,
		To:        period.To,
		ByType:    toTypeCounts(byType),
		ByCompany: make([]dto.CompanyActivityDTO, 0, len(byCompany)),
	}
	for _, t := range byType {
		out.Total += t.Count
	}
	for _, c := range byCompany {
		out.ByCompany = append(out.ByCompany, dto.CompanyActivityDTO{
			CompanyID:   c.CompanyID,
			CompanyName: c.CompanyName,
			Outgoing:    c.Outgoing,
			Incoming:    c.Incoming,
		})
	}
	return out, nil
}

// fillMonths devuelve n meses desde first con ceros donde no hubo producción.
func fillMonths(first time.Time, n int, rows []repository.MonthlyProduction) []dto.MonthlyProductionDTO {
	byMonth := make(map[string]repository.MonthlyProduction, len(rows))
	for _, r := range rows {
		byMonth[r.Month.UTC().Format("2006-01")] = r
	}
	out := make([]dto.MonthlyProductionDTO, 0, n)
	for i := range n {
		key := first.AddDate(0, i, 0).Format("2006-01")
		row := byMonth[key]
		out = append(out, dto.MonthlyProductionDTO{Month: key, Batches: row.Batches, Quantity: row.Quantity})
	}
	return out
}

func toTypeCounts(rows []repository.TypeCount) []dto.TypeCountDTO {
	out := make([]dto.TypeCountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TypeCountDTO{MovementType: r.Type, Count: r.Count, Quantity: r.Quantity})
	}
	return out
}

func toMovementSummary(m repository.MovementSummary) dto.MovementSummaryDTO {
	return dto.MovementSummaryDTO{
		ID:              m.ID,
		BatchID:         m.BatchID,
		BatchNumber:     m.BatchNumber,
		ProductName:     m.ProductName,
		MovementType:    m.Type,
		Status:          m.Status,
		OriginName:      m.OriginName,
		DestinationName: m.DestinationName,
		Quantity:        m.Quantity,
		Unit:            m.Unit,
		MovementDate:    m.MovementDate,
	}
}
