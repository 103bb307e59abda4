// Package export genera los archivos descargables de los libros: planillas
// XLSX (excelize) y el libro de caja en PDF (maroto).
package export

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/reporting"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/tax"
)

var _ reporting.Renderer = (*Renderer)(nil)

// Renderer implementa reporting.Renderer.
type Renderer struct {
	title   string
	printer *message.Printer
}

// NewRenderer construye el renderer; title encabeza los documentos (ej. razón social).
func NewRenderer(title string) *Renderer {
	if title == "" {
		title = "ProPyme Transparente"
	}
	return &Renderer{
		title:   title,
		printer: message.NewPrinter(language.MustParse("es-CL")),
	}
}

// Money formatea un monto con 2 decimales y separadores es-CL.
func (r *Renderer) Money(d decimal.Decimal) string {
	return "$" + r.printer.Sprint(number.Decimal(tax.Round2(d).InexactFloat64(), number.Scale(2)))
}

// cell convierte un monto a float para la planilla, ya redondeado a 2 decimales.
func cell(d decimal.Decimal) float64 {
	return tax.Round2(d).InexactFloat64()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
