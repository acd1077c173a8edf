package dto

import (
	"encoding/json"
	"time"
)

// CreateLabelTemplateRequest entrada para crear una plantilla ZPL.
type CreateLabelTemplateRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description" validate:"omitempty,max=512"`
	Width       int             `json:"width" validate:"required,gt=0"`
	Height      int             `json:"height" validate:"required,gt=0"`
	Unit        string          `json:"unit" validate:"omitempty,oneof=mm in dots"`
	Fields      json.RawMessage `json:"fields"`
	ZPLTemplate string          `json:"zpl_template" validate:"required"`
	PreviewURL  string          `json:"preview_url" validate:"omitempty,url"`
}

// UpdateLabelTemplateRequest entrada para actualizar una plantilla (campos opcionales).
type UpdateLabelTemplateRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string         `json:"description" validate:"omitempty,max=512"`
	Width       *int            `json:"width" validate:"omitempty,gt=0"`
	Height      *int            `json:"height" validate:"omitempty,gt=0"`
	Unit        *string         `json:"unit" validate:"omitempty,oneof=mm in dots"`
	Fields      json.RawMessage `json:"fields"`
	ZPLTemplate *string         `json:"zpl_template" validate:"omitempty,min=1"`
	PreviewURL  *string         `json:"preview_url" validate:"omitempty,url"`
	Active      *bool           `json:"active"`
}

// LabelTemplateListQuery filtros de GET /api/labels/templates.
type LabelTemplateListQuery struct {
	PageRequest
	ActiveOnly bool `query:"active"`
}

// LabelTemplateResponse salida de una plantilla.
type LabelTemplateResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Unit        string          `json:"unit"`
	Fields      json.RawMessage `json:"fields"`
	ZPLTemplate string          `json:"zpl_template"`
	PreviewURL  string          `json:"preview_url,omitempty"`
	Active      bool            `json:"active"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LabelTemplateListResponse lista paginada de plantillas.
type LabelTemplateListResponse struct {
	Items []LabelTemplateResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// LabelPreviewRequest body para POST /api/labels/preview.
type LabelPreviewRequest struct {
	BatchID    string `json:"batch_id" validate:"required,uuid"`
	TemplateID string `json:"template_id" validate:"required,uuid"`
}

// LabelPreviewResponse ZPL renderizado y vista previa en PDF (base64).
type LabelPreviewResponse struct {
	ZPL        string `json:"zpl"`
	PDFBase64  string `json:"pdf_base64"`
	WidthMM    int    `json:"width_mm"`
	HeightMM   int    `json:"height_mm"`
	QRCodeData string `json:"qr_code_data"`
}

// LabelPrintRequest body para POST /api/labels/print.
type LabelPrintRequest struct {
	BatchID     string `json:"batch_id" validate:"required,uuid"`
	TemplateID  string `json:"template_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"required,min=1,max=1000"`
	PrinterName string `json:"printer_name" validate:"omitempty,max=255"`
	PrinterIP   string `json:"printer_ip" validate:"omitempty,ip"`
	PrinterPort int    `json:"printer_port" validate:"omitempty,min=1,max=65535"`
}

// LabelPrintResponse registro de una impresión.
type LabelPrintResponse struct {
	ID              string    `json:"id"`
	BatchID         string    `json:"batch_id"`
	LabelTemplateID *string   `json:"label_template_id"`
	Quantity        int       `json:"quantity"`
	ZPLData         string    `json:"zpl_data"`
	PrinterName     string    `json:"printer_name,omitempty"`
	PrinterIP       string    `json:"printer_ip,omitempty"`
	PrinterPort     int       `json:"printer_port,omitempty"`
	Status          string    `json:"status"`
	Error           string    `json:"error,omitempty"`
	PrintDate       time.Time `json:"print_date"`
	CreatedBy       string    `json:"created_by,omitempty"`
}
