package entity

import (
	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock único.
// Los precios se guardan netos (sin IVA); el bruto se deriva al consultar.
type Product struct {
	ID           string
	Name         string
	UnitCostNet  decimal.Decimal // costo_unitario_neto
	SalePriceNet decimal.Decimal // precio_venta_neto
	Stock        int             // nunca negativo
}
