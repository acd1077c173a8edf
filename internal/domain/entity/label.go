package entity

import (
	"encoding/json"
	"time"
)

// LabelTemplate plantilla ZPL para imprimir etiquetas de lotes.
// ZPLTemplate contiene marcadores {batch_number}, {product_name}, etc.
type LabelTemplate struct {
	ID          string
	Name        string
	Description string
	Width       int
	Height      int
	Unit        string // mm por defecto
	Fields      json.RawMessage
	ZPLTemplate string
	PreviewURL  string
	Active      bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Estados de una impresión de etiquetas.
const (
	LabelPrintPending = "pending" // generada sin impresora destino
	LabelPrintPrinted = "printed"
	LabelPrintFailed  = "failed"
)

// LabelPrint registro de una orden de impresión de etiquetas para un lote.
type LabelPrint struct {
	ID              string
	BatchID         string
	LabelTemplateID *string
	Quantity        int
	ZPLData         string
	PrinterName     string
	PrinterIP       string
	PrinterPort     int
	Status          string
	PrintDate       time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
