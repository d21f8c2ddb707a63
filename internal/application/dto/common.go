package dto

import (
	"fmt"
	"time"

	"github.com/papyros/backoffice/internal/domain"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
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
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Period rango de fechas opcional en formato YYYY-MM-DD.
type Period struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// Parse convierte las fechas a la zona local; To es inclusivo hasta el final del día.
func (p Period) Parse() (from, to *time.Time, err error) {
	loc := time.Now().Location()
	if p.From != "" {
		t, err := time.ParseInLocation("2006-01-02", p.From, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: from inválido", domain.ErrInvalidInput)
		}
		from = &t
	}
	if p.To != "" {
		t, err := time.ParseInLocation("2006-01-02", p.To, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: to inválido", domain.ErrInvalidInput)
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("%w: from no puede ser posterior a to", domain.ErrInvalidInput)
	}
	return from, to, nil
}
