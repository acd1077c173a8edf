package repository

import "time"

// Page límites de paginación comunes a los listados.
type Page struct {
	Limit  int
	Offset int
}

// CompanyFilter criterios de listado de empresas.
type CompanyFilter struct {
	Page
	Search      string // nombre, nombre comercial o documento
	CompanyType string
	ActiveOnly  bool
}

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Page
	Search     string // nombre o SKU
	Category   string
	ActiveOnly bool
}

// BatchFilter criterios de listado de lotes.
type BatchFilter struct {
	Page
	Search    string // número de lote
	ProductID string
	CompanyID string
	Status    string
}

// MovementFilter criterios de listado de movimientos entre lotes.
type MovementFilter struct {
	Page
	BatchID   string
	CompanyID string // origen o destino
	Type      string
	From      *time.Time
	To        *time.Time
}

// LabelTemplateFilter criterios de listado de plantillas.
type LabelTemplateFilter struct {
	Page
	ActiveOnly bool
}

// UserFilter criterios de listado de usuarios.
type UserFilter struct {
	Page
	Search string
	Role   string
}
