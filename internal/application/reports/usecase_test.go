package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

type fakeReportRepo struct {
	since     time.Time
	monthly   []repository.MonthlyProduction
	byType    []repository.TypeCount
	activity  []repository.CompanyActivity
	movements []repository.MovementSummary
	from, to  *time.Time
	failTotal error
}

func (f *fakeReportRepo) GetTotals(context.Context) (repository.Totals, error) {
	return repository.Totals{Products: 3, Companies: 4, Batches: 5, Movements: 6}, f.failTotal
}

func (f *fakeReportRepo) GetProductionByMonth(_ context.Context, since time.Time) ([]repository.MonthlyProduction, error) {
	f.since = since
	return f.monthly, nil
}

func (f *fakeReportRepo) GetBatchesByStatus(context.Context) ([]repository.StatusCount, error) {
	return []repository.StatusCount{{Status: "created", Count: 2}, {Status: "sold", Count: 3}}, nil
}

func (f *fakeReportRepo) GetMovementsByType(_ context.Context, from, to *time.Time) ([]repository.TypeCount, error) {
	f.from, f.to = from, to
	return f.byType, nil
}

func (f *fakeReportRepo) GetCompanyActivity(context.Context, *time.Time, *time.Time) ([]repository.CompanyActivity, error) {
	return f.activity, nil
}

func (f *fakeReportRepo) GetRecentBatches(_ context.Context, limit int) ([]repository.BatchSummary, error) {
	return []repository.BatchSummary{{ID: "b1", BatchNumber: "L-1", Quantity: decimal.NewFromInt(10)}}, nil
}

func (f *fakeReportRepo) GetRecentMovements(_ context.Context, limit int) ([]repository.MovementSummary, error) {
	return f.movements, nil
}

func (f *fakeReportRepo) GetMovements(_ context.Context, from, to *time.Time) ([]repository.MovementSummary, error) {
	f.from, f.to = from, to
	return f.movements, nil
}

func TestDashboard_FillsTwelveMonths(t *testing.T) {
	repo := &fakeReportRepo{
		monthly: []repository.MonthlyProduction{
			{Month: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Batches: 2, Quantity: decimal.RequireFromString("150.5")},
			{Month: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), Batches: 1, Quantity: decimal.NewFromInt(20)},
		},
		byType: []repository.TypeCount{{Type: "transport", Count: 4, Quantity: decimal.NewFromInt(40)}},
	}
	uc := NewUseCase(repo)
	uc.now = func() time.Time { return time.Date(2024, 8, 17, 15, 0, 0, 0, time.UTC) }

	out, err := uc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), repo.since)
	require.Len(t, out.ProductionByMonth, 12)
	assert.Equal(t, "2023-09", out.ProductionByMonth[0].Month)
	assert.Equal(t, "2024-08", out.ProductionByMonth[11].Month)
	assert.Equal(t, 2, out.ProductionByMonth[6].Batches)
	assert.Equal(t, "150.5", out.ProductionByMonth[6].Quantity.String())
	assert.Equal(t, 0, out.ProductionByMonth[7].Batches)
	assert.True(t, out.ProductionByMonth[7].Quantity.IsZero())

	assert.Equal(t, 3, out.TotalProducts)
	assert.Equal(t, 6, out.TotalMovements)
	assert.Len(t, out.BatchesByStatus, 2)
	assert.Len(t, out.RecentBatches, 1)
	assert.NotNil(t, out.RecentMovements)
	assert.Nil(t, repo.from)
}

func TestDashboard_PropagatesErrors(t *testing.T) {
	boom := errors.New("db caída")
	uc := NewUseCase(&fakeReportRepo{failTotal: boom})
	_, err := uc.Dashboard(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestMovementReport(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{
		byType: []repository.TypeCount{
			{Type: "production", Count: 2, Quantity: decimal.NewFromInt(100)},
			{Type: "sale", Count: 3, Quantity: decimal.NewFromInt(30)},
		},
		activity: []repository.CompanyActivity{{CompanyID: "c1", CompanyName: "Fazenda", Outgoing: 3, Incoming: 1}},
	}
	out, err := NewUseCase(repo).MovementReport(context.Background(), dto.DateRange{From: &from})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Total)
	assert.Len(t, out.ByType, 2)
	require.Len(t, out.ByCompany, 1)
	assert.Equal(t, 3, out.ByCompany[0].Outgoing)
	assert.Equal(t, &from, repo.from)
}

func TestExportMovements(t *testing.T) {
	lat, lon := decimal.RequireFromString("-23.55"), decimal.RequireFromString("-46.63")
	repo := &fakeReportRepo{movements: []repository.MovementSummary{
		{BatchNumber: "L-1", ProductName: "Café", Type: "production", Status: "created", DestinationName: "Fazenda",
			Quantity: decimal.RequireFromString("12.5"), Unit: "kg", MovementDate: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
			Latitude: &lat, Longitude: &lon},
		{BatchNumber: "L-1", ProductName: "Café", Type: "sale", Status: "sold", OriginName: "Fazenda",
			Quantity: decimal.NewFromInt(5), Unit: "kg", MovementDate: time.Date(2024, 5, 3, 9, 30, 0, 0, time.UTC)},
	}}
	data, err := NewUseCase(repo).ExportMovements(context.Background(), dto.DateRange{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(movementsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, movementHeaders, rows[0])
	assert.Equal(t, "2024-05-01 08:00:00", rows[1][0])
	assert.Equal(t, "production", rows[1][3])
	assert.Equal(t, "-23.55", rows[1][9])
	assert.Equal(t, "sold", rows[2][4])
	assert.Equal(t, "Fazenda", rows[2][5])
}
