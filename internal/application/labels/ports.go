package labels

import "context"

// LabelData valores disponibles para los marcadores {campo} de una plantilla ZPL.
type LabelData struct {
	BatchNumber     string
	ProductName     string
	ProductSKU      string
	CompanyName     string
	CompanyDocument string
	Quantity        string
	Unit            string
	ProductionDate  string // YYYY-MM-DD
	ExpirationDate  string
	Barcode         string // batch.barcode o, si falta, el número de lote
	QRCodeData      string // URL pública de trazabilidad
}

// ZPLRenderer sustituye los marcadores y fija el número de copias (^PQ).
type ZPLRenderer interface {
	Render(template string, data LabelData, copies int) string
}

// PreviewSpec lo necesario para dibujar la vista previa de una etiqueta.
type PreviewSpec struct {
	WidthMM  float64
	HeightMM float64
	Data     LabelData
}

// PDFGenerator dibuja la vista previa (texto, QR y código de barras) en PDF.
type PDFGenerator interface {
	Generate(spec PreviewSpec) ([]byte, error)
}

// Printer envía ZPL crudo a una impresora de red (host:puerto).
type Printer interface {
	Send(ctx context.Context, addr string, payload []byte) error
}
