// Package tax convierte montos entre neto y bruto (IVA incluido) con una tasa única.
package tax

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultRate es la tasa de IVA vigente (19%).
var DefaultRate = decimal.RequireFromString("0.19")

// Codec aplica una tasa fija. Los montos se calculan sin redondeo; redondear es
// responsabilidad de la capa de presentación (ver Round2).
type Codec struct {
	rate   decimal.Decimal
	factor decimal.Decimal
}

// ErrNegativeRate se devuelve al construir un codec con tasa negativa.
var ErrNegativeRate = errors.New("tax: la tasa de IVA no puede ser negativa")

// NewCodec crea un codec para la tasa indicada (0.19 = 19%).
func NewCodec(rate decimal.Decimal) (*Codec, error) {
	if rate.IsNegative() {
		return nil, ErrNegativeRate
	}
	return &Codec{rate: rate, factor: decimal.NewFromInt(1).Add(rate)}, nil
}

// MustCodec es NewCodec que entra en pánico ante una tasa inválida.
func MustCodec(rate decimal.Decimal) *Codec {
	c, err := NewCodec(rate)
	if err != nil {
		panic(err)
	}
	return c
}

// Rate devuelve la tasa configurada.
func (c *Codec) Rate() decimal.Decimal { return c.rate }

// Factor devuelve 1 + tasa.
func (c *Codec) Factor() decimal.Decimal { return c.factor }

// GrossToNet descompone un monto con IVA en neto e impuesto. net + iva == gross siempre.
func (c *Codec) GrossToNet(gross decimal.Decimal) (net, vat decimal.Decimal) {
	net = gross.DivRound(c.factor, 16)
	vat = gross.Sub(net)
	return net, vat
}

// NetToGross aplica el IVA a un monto neto.
func (c *Codec) NetToGross(net decimal.Decimal) decimal.Decimal {
	return net.Mul(c.factor)
}

// Round2 redondea a 2 decimales (solo para mostrar).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
