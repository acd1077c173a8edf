// Package pdf genera la vista previa en PDF de las etiquetas de lote.
//
// Layout (una página del tamaño de la etiqueta):
//
//	┌──────────────────────────────────────┐
//	│  PRODUCTO (negrita)                  │
//	│  Lote: L-001          12.5 kg        │
//	│  Empresa productora                  │
//	│  Fab: 2024-06-01      Val: 2025-01-31│
//	│  ┌──────┐  ║║│║║│║│║║│║║            │
//	│  │  QR  │  código de barras          │
//	│  └──────┘                            │
//	└──────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Trazabilidad-api/internal/application/labels"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const (
	labelMargin  = 2.0
	textBlockH   = 19.0 // suma de las filas de texto
	minCodeRowH  = 10.0
	minLabelSide = 20.0
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLabelGenerator implementa labels.PDFGenerator usando Maroto v2.
type MarotoLabelGenerator struct{}

// NewMarotoLabelGenerator construye el generador.
func NewMarotoLabelGenerator() *MarotoLabelGenerator { return &MarotoLabelGenerator{} }

var _ labels.PDFGenerator = (*MarotoLabelGenerator)(nil)

// Generate dibuja la etiqueta y devuelve los bytes del PDF.
func (g *MarotoLabelGenerator) Generate(spec labels.PreviewSpec) ([]byte, error) {
	w := max(spec.WidthMM, minLabelSide)
	h := max(spec.HeightMM, minLabelSide)

	cfg := config.NewBuilder().
		WithDimensions(w, h).
		WithLeftMargin(labelMargin).WithRightMargin(labelMargin).
		WithTopMargin(labelMargin).WithBottomMargin(labelMargin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Etiqueta "+spec.Data.BatchNumber, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(textRows(spec.Data)...)
	m.AddRows(codesRow(spec.Data, max(h-2*labelMargin-textBlockH, minCodeRowH)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func textRows(d labels.LabelData) []core.Row {
	qty := d.Quantity
	if d.Unit != "" {
		qty += " " + d.Unit
	}
	expiry := ""
	if d.ExpirationDate != "" {
		expiry = "Val: " + d.ExpirationDate
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(nonEmpty(d.ProductName, "Producto"), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary,
			}),
		)),
		row.New(5).Add(
			col.New(7).Add(text.New("Lote: "+d.BatchNumber, props.Text{Style: fontstyle.Bold, Size: 8})),
			col.New(5).Add(text.New(qty, props.Text{Size: 8, Align: align.Right})),
		),
		row.New(4).Add(col.New(12).Add(
			text.New(d.CompanyName, props.Text{Size: 6.5, Color: colorGray}),
		)),
		row.New(4).Add(
			col.New(6).Add(text.New("Fab: "+d.ProductionDate, props.Text{Size: 6.5})),
			col.New(6).Add(text.New(expiry, props.Text{Size: 6.5, Align: align.Right})),
		),
	}
}

// codesRow: QR con la URL pública (izq) y Code128 del lote (der).
func codesRow(d labels.LabelData, height float64) core.Row {
	return row.New(height).Add(
		col.New(4).Add(code.NewQr(d.QRCodeData, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(8).Add(code.NewBar(nonEmpty(d.Barcode, d.BatchNumber), props.Barcode{
			Percent: 90,
			Center:  true,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
