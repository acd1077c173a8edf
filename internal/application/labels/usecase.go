package labels

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

// dotsPerMM resolución de las impresoras Zebra de 203 dpi.
const dotsPerMM = 8.0

// Options parámetros de despliegue.
type Options struct {
	PublicURL   string
	DefaultPort int
}

// UseCase genera, previsualiza e imprime etiquetas de lotes.
type UseCase struct {
	batchRepo    repository.BatchRepository
	productRepo  repository.ProductRepository
	companyRepo  repository.CompanyRepository
	templateRepo repository.LabelTemplateRepository
	printRepo    repository.LabelPrintRepository
	renderer     ZPLRenderer
	pdf          PDFGenerator
	printer      Printer
	opts         Options
	log          *logger.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso de etiquetas.
func NewUseCase(
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	templateRepo repository.LabelTemplateRepository,
	printRepo repository.LabelPrintRepository,
	renderer ZPLRenderer,
	pdf PDFGenerator,
	printer Printer,
	opts Options,
	log *logger.Logger,
) *UseCase {
	if opts.DefaultPort <= 0 {
		opts.DefaultPort = 9100
	}
	return &UseCase{
		batchRepo:    batchRepo,
		productRepo:  productRepo,
		companyRepo:  companyRepo,
		templateRepo: templateRepo,
		printRepo:    printRepo,
		renderer:     renderer,
		pdf:          pdf,
		printer:      printer,
		opts:         opts,
		log:          log,
		now:          time.Now,
	}
}

// Preview renderiza la plantilla con los datos del lote y genera el PDF de muestra.
func (uc *UseCase) Preview(ctx context.Context, in dto.LabelPreviewRequest) (*dto.LabelPreviewResponse, error) {
	tpl, data, err := uc.load(ctx, in.BatchID, in.TemplateID)
	if err != nil {
		return nil, err
	}
	zpl := uc.renderer.Render(tpl.ZPLTemplate, data, 1)
	w, h := sizeInMM(tpl)
	pdf, err := uc.pdf.Generate(PreviewSpec{WidthMM: w, HeightMM: h, Data: data})
	if err != nil {
		return nil, fmt.Errorf("vista previa PDF: %w", err)
	}
	return &dto.LabelPreviewResponse{
		ZPL:        zpl,
		PDFBase64:  base64.StdEncoding.EncodeToString(pdf),
		WidthMM:    int(math.Round(w)),
		HeightMM:   int(math.Round(h)),
		QRCodeData: data.QRCodeData,
	}, nil
}

// Print renderiza quantity copias y, si hay IP, las envía a la impresora.
// El registro se guarda siempre: pending sin impresora, printed o failed según el envío.
func (uc *UseCase) Print(ctx context.Context, userID string, in dto.LabelPrintRequest) (*dto.LabelPrintResponse, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("quantity debe ser al menos 1: %w", domain.ErrValidation)
	}
	tpl, data, err := uc.load(ctx, in.BatchID, in.TemplateID)
	if err != nil {
		return nil, err
	}
	zpl := uc.renderer.Render(tpl.ZPLTemplate, data, in.Quantity)

	now := uc.now()
	templateID := tpl.ID
	rec := &entity.LabelPrint{
		ID:              uuid.New().String(),
		BatchID:         in.BatchID,
		LabelTemplateID: &templateID,
		Quantity:        in.Quantity,
		ZPLData:         zpl,
		PrinterName:     in.PrinterName,
		PrinterIP:       in.PrinterIP,
		Status:          entity.LabelPrintPending,
		PrintDate:       now,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var sendErr error
	if in.PrinterIP != "" {
		rec.PrinterPort = in.PrinterPort
		if rec.PrinterPort <= 0 {
			rec.PrinterPort = uc.opts.DefaultPort
		}
		addr := net.JoinHostPort(in.PrinterIP, strconv.Itoa(rec.PrinterPort))
		if sendErr = uc.printer.Send(ctx, addr, []byte(zpl)); sendErr != nil {
			rec.Status = entity.LabelPrintFailed
			uc.log.Warn().Err(sendErr).Str("printer", addr).Str("batch_id", in.BatchID).Msg("impresión de etiquetas fallida")
		} else {
			rec.Status = entity.LabelPrintPrinted
			uc.log.Info().Str("printer", addr).Int("copies", in.Quantity).Msg("etiquetas enviadas")
		}
	}

	if err := uc.printRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	out := dto.FromLabelPrint(rec)
	if sendErr != nil {
		out.Error = sendErr.Error()
	}
	return &out, nil
}

// ListPrints historial de impresiones de un lote, más recientes primero.
func (uc *UseCase) ListPrints(ctx context.Context, batchID string) ([]dto.LabelPrintResponse, error) {
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("lote %s: %w", batchID, domain.ErrNotFound)
	}
	prints, err := uc.printRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LabelPrintResponse, 0, len(prints))
	for _, p := range prints {
		out = append(out, dto.FromLabelPrint(p))
	}
	return out, nil
}

func (uc *UseCase) load(ctx context.Context, batchID, templateID string) (*entity.LabelTemplate, LabelData, error) {
	tpl, err := uc.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, LabelData{}, err
	}
	if tpl == nil {
		return nil, LabelData{}, fmt.Errorf("plantilla %s: %w", templateID, domain.ErrNotFound)
	}
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, LabelData{}, err
	}
	if batch == nil {
		return nil, LabelData{}, fmt.Errorf("lote %s: %w", batchID, domain.ErrNotFound)
	}
	product, err := uc.productRepo.GetByID(ctx, batch.ProductID)
	if err != nil {
		return nil, LabelData{}, err
	}
	company, err := uc.companyRepo.GetByID(ctx, batch.CompanyID)
	if err != nil {
		return nil, LabelData{}, err
	}
	return tpl, uc.dataFor(batch, product, company), nil
}

func (uc *UseCase) dataFor(b *entity.Batch, p *entity.Product, c *entity.Company) LabelData {
	d := LabelData{
		BatchNumber:    b.BatchNumber,
		Quantity:       b.Quantity.String(),
		Unit:           b.Unit,
		ProductionDate: b.ProductionDate.Format(time.DateOnly),
		Barcode:        b.Barcode,
		QRCodeData:     b.QRCode,
	}
	if d.Barcode == "" {
		d.Barcode = b.BatchNumber
	}
	if d.QRCodeData == "" {
		d.QRCodeData = usecase.PublicTraceURL(uc.opts.PublicURL, b.BatchNumber)
	}
	if b.ExpirationDate != nil {
		d.ExpirationDate = b.ExpirationDate.Format(time.DateOnly)
	}
	if p != nil {
		d.ProductName, d.ProductSKU = p.Name, p.SKU
	}
	if c != nil {
		d.CompanyName, d.CompanyDocument = c.Name, c.Document
	}
	return d
}

// sizeInMM convierte las dimensiones de la plantilla a milímetros.
func sizeInMM(t *entity.LabelTemplate) (float64, float64) {
	w, h := float64(t.Width), float64(t.Height)
	switch t.Unit {
	case "in":
		return w * 25.4, h * 25.4
	case "dots":
		return w / dotsPerMM, h / dotsPerMM
	default:
		return w, h
	}
}
