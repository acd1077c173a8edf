package postgres

import (
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// geoArgs separa un punto opcional en dos columnas nullable.
func geoArgs(g *entity.GeoPoint) (lat, lon *decimal.Decimal) {
	if g == nil {
		return nil, nil
	}
	return &g.Latitude, &g.Longitude
}
