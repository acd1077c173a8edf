package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"` // campo -> regla incumplida
}

// DateRangeQuery filtro de período en query string (RFC 3339 o YYYY-MM-DD).
type DateRangeQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// DateRange período ya interpretado; nil = sin límite.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Parse interpreta las fechas; "to" en formato fecha incluye el día completo.
func (q DateRangeQuery) Parse() (DateRange, error) {
	var r DateRange
	from, err := parseDate(q.From, false)
	if err != nil {
		return r, fmt.Errorf("from: %w", err)
	}
	to, err := parseDate(q.To, true)
	if err != nil {
		return r, fmt.Errorf("to: %w", err)
	}
	if from != nil && to != nil && to.Before(*from) {
		return r, fmt.Errorf("periodo invertido: %w", domain.ErrValidation)
	}
	r.From, r.To = from, to
	return r, nil
}

func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("fecha %q inválida: %w", s, domain.ErrValidation)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
