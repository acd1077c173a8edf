package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de empresa conocidos. company_type es texto libre en la base;
// los valores fuera de esta lista se clasifican como CompanyTypeOther.
const (
	CompanyTypeProducer    = "producer"
	CompanyTypeProcessor   = "processor"
	CompanyTypeDistributor = "distributor"
	CompanyTypeTransporter = "transporter"
	CompanyTypeWarehouse   = "warehouse"
	CompanyTypeRetailer    = "retailer"
	CompanyTypeOther       = "other"
)

var knownCompanyTypes = map[string]bool{
	CompanyTypeProducer:    true,
	CompanyTypeProcessor:   true,
	CompanyTypeDistributor: true,
	CompanyTypeTransporter: true,
	CompanyTypeWarehouse:   true,
	CompanyTypeRetailer:    true,
}

// ClassifyCompanyType devuelve el tipo conocido o CompanyTypeOther.
func ClassifyCompanyType(t string) string {
	if knownCompanyTypes[t] {
		return t
	}
	return CompanyTypeOther
}

// Company representa un actor de la cadena: productor, distribuidor, minorista, etc.
// Es origen o destino de movimientos y productora de lotes.
type Company struct {
	ID           string
	Name         string
	TradingName  string
	Document     string // único (CNPJ, CPF, NIT...)
	DocumentType string
	CompanyType  string
	Email        string
	Phone        string
	Website      string
	LogoURL      string
	Address      json.RawMessage
	Location     *GeoPoint
	Active       bool
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GeoPoint coordenada geográfica en grados decimales (8 decimales en la base).
type GeoPoint struct {
	Latitude  decimal.Decimal
	Longitude decimal.Decimal
}

// NewGeoPoint construye un punto solo si ambas coordenadas están presentes.
func NewGeoPoint(lat, lon *decimal.Decimal) *GeoPoint {
	if lat == nil || lon == nil {
		return nil
	}
	return &GeoPoint{Latitude: *lat, Longitude: *lon}
}

// Valid informa si el punto está dentro de los rangos de latitud/longitud.
func (g GeoPoint) Valid() bool {
	return g.Latitude.Abs().LessThanOrEqual(decimal.NewFromInt(90)) &&
		g.Longitude.Abs().LessThanOrEqual(decimal.NewFromInt(180))
}
