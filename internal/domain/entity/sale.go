package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale registra una venta ya descompuesta en neto + IVA.
// ProductID puede quedar nulo si el producto se elimina después.
type Sale struct {
	ID             string
	Date           time.Time
	ProductID      *string
	Quantity       int
	UnitPriceNet   decimal.Decimal
	NetTotal       decimal.Decimal
	VATAmount      decimal.Decimal
	GrossTotal     decimal.Decimal
	PaymentMethod  string
	DocumentNumber string
}
