package labels_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/labels"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type stubBatches struct {
	repository.BatchRepository
	byID map[string]*entity.Batch
}

func (s stubBatches) GetByID(_ context.Context, id string) (*entity.Batch, error) { return s.byID[id], nil }

type stubProducts struct {
	repository.ProductRepository
	byID map[string]*entity.Product
}

func (s stubProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return s.byID[id], nil
}

type stubCompanies struct {
	repository.CompanyRepository
	byID map[string]*entity.Company
}

func (s stubCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return s.byID[id], nil
}

type stubTemplates struct {
	repository.LabelTemplateRepository
	byID map[string]*entity.LabelTemplate
}

func (s stubTemplates) GetByID(_ context.Context, id string) (*entity.LabelTemplate, error) {
	return s.byID[id], nil
}

type memPrints struct{ rows []*entity.LabelPrint }

func (m *memPrints) Create(_ context.Context, p *entity.LabelPrint) error {
	m.rows = append(m.rows, p)
	return nil
}

func (m *memPrints) ListByBatch(_ context.Context, batchID string) ([]*entity.LabelPrint, error) {
	var out []*entity.LabelPrint
	for _, r := range m.rows {
		if r.BatchID == batchID {
			out = append(out, r)
		}
	}
	return out, nil
}

type echoRenderer struct{}

func (echoRenderer) Render(tpl string, d labels.LabelData, copies int) string {
	return fmt.Sprintf("%s|%s|%s|PQ%d", tpl, d.BatchNumber, d.QRCodeData, copies)
}

type fakePDF struct{ last labels.PreviewSpec }

func (f *fakePDF) Generate(spec labels.PreviewSpec) ([]byte, error) {
	f.last = spec
	return []byte("%PDF-1.4"), nil
}

type fakePrinter struct {
	addr    string
	payload string
	err     error
}

func (f *fakePrinter) Send(_ context.Context, addr string, payload []byte) error {
	f.addr, f.payload = addr, string(payload)
	return f.err
}

type fixture struct {
	uc      *labels.UseCase
	prints  *memPrints
	pdf     *fakePDF
	printer *fakePrinter
}

func newFixture(unit string) fixture {
	exp := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	batches := stubBatches{byID: map[string]*entity.Batch{
		"b1": {ID: "b1", BatchNumber: "L-001", ProductID: "p1", CompanyID: "c1", Quantity: decimal.RequireFromString("12.500"),
			Unit: "kg", ProductionDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), ExpirationDate: &exp},
	}}
	products := stubProducts{byID: map[string]*entity.Product{"p1": {ID: "p1", Name: "Café Especial", SKU: "CAF-1"}}}
	companies := stubCompanies{byID: map[string]*entity.Company{"c1": {ID: "c1", Name: "Fazenda São João", Document: "123"}}}
	templates := stubTemplates{byID: map[string]*entity.LabelTemplate{
		"t1": {ID: "t1", Width: 100, Height: 50, Unit: unit, ZPLTemplate: "^XA^FD{batch_number}^FS^XZ"},
	}}
	f := fixture{prints: &memPrints{}, pdf: &fakePDF{}, printer: &fakePrinter{}}
	f.uc = labels.NewUseCase(batches, products, companies, templates, f.prints, echoRenderer{}, f.pdf, f.printer,
		labels.Options{PublicURL: "https://trace.example.com"}, logger.Nop())
	return f
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestPreview(t *testing.T) {
	f := newFixture("mm")
	out, err := f.uc.Preview(context.Background(), dto.LabelPreviewRequest{BatchID: "b1", TemplateID: "t1"})
	require.NoError(t, err)

	assert.Equal(t, "https://trace.example.com/public/trace/L-001", out.QRCodeData)
	assert.Contains(t, out.ZPL, "PQ1")
	assert.Equal(t, 100, out.WidthMM)
	assert.Equal(t, 50, out.HeightMM)
	pdf, err := base64.StdEncoding.DecodeString(out.PDFBase64)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(pdf))

	assert.Equal(t, "Café Especial", f.pdf.last.Data.ProductName)
	assert.Equal(t, "L-001", f.pdf.last.Data.Barcode)
	assert.Equal(t, "2025-01-31", f.pdf.last.Data.ExpirationDate)
	assert.Equal(t, "12.5", f.pdf.last.Data.Quantity)
}

func TestPreview_SizeInDots(t *testing.T) {
	f := newFixture("dots")
	out, err := f.uc.Preview(context.Background(), dto.LabelPreviewRequest{BatchID: "b1", TemplateID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, 13, out.WidthMM)
	assert.InDelta(t, 12.5, f.pdf.last.WidthMM, 0.001)
}

func TestPreview_NotFound(t *testing.T) {
	f := newFixture("mm")
	_, err := f.uc.Preview(context.Background(), dto.LabelPreviewRequest{BatchID: "nope", TemplateID: "t1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.Preview(context.Background(), dto.LabelPreviewRequest{BatchID: "b1", TemplateID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPrint_WithoutPrinterIsPending(t *testing.T) {
	f := newFixture("mm")
	out, err := f.uc.Print(context.Background(), "u1", dto.LabelPrintRequest{BatchID: "b1", TemplateID: "t1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, entity.LabelPrintPending, out.Status)
	assert.Contains(t, out.ZPLData, "PQ3")
	assert.Empty(t, f.printer.addr)
	require.Len(t, f.prints.rows, 1)
}

func TestPrint_SendsToDefaultPort(t *testing.T) {
	f := newFixture("mm")
	out, err := f.uc.Print(context.Background(), "u1", dto.LabelPrintRequest{
		BatchID: "b1", TemplateID: "t1", Quantity: 2, PrinterIP: "192.168.0.50", PrinterName: "Zebra GK420",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LabelPrintPrinted, out.Status)
	assert.Equal(t, "192.168.0.50:9100", f.printer.addr)
	assert.Equal(t, out.ZPLData, f.printer.payload)
	assert.Equal(t, 9100, out.PrinterPort)
	require.NotNil(t, out.LabelTemplateID)
	assert.Equal(t, "t1", *out.LabelTemplateID)
}

func TestPrint_FailureIsRecorded(t *testing.T) {
	f := newFixture("mm")
	f.printer.err = errors.New("connection refused")
	out, err := f.uc.Print(context.Background(), "u1", dto.LabelPrintRequest{
		BatchID: "b1", TemplateID: "t1", Quantity: 1, PrinterIP: "10.0.0.9", PrinterPort: 6101,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LabelPrintFailed, out.Status)
	assert.Equal(t, "connection refused", out.Error)
	assert.Equal(t, "10.0.0.9:6101", f.printer.addr)
	require.Len(t, f.prints.rows, 1)
	assert.Equal(t, entity.LabelPrintFailed, f.prints.rows[0].Status)
}

func TestPrint_InvalidQuantity(t *testing.T) {
	f := newFixture("mm")
	_, err := f.uc.Print(context.Background(), "u1", dto.LabelPrintRequest{BatchID: "b1", TemplateID: "t1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.prints.rows)
}

func TestListPrints(t *testing.T) {
	f := newFixture("mm")
	_, err := f.uc.Print(context.Background(), "u1", dto.LabelPrintRequest{BatchID: "b1", TemplateID: "t1", Quantity: 1})
	require.NoError(t, err)

	list, err := f.uc.ListPrints(context.Background(), "b1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.uc.ListPrints(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
