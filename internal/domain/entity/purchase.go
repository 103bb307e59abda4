package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase es una compra de mercadería o un gasto general.
// ProductID y Quantity van juntos solo cuando la compra repone stock.
type Purchase struct {
	ID             string
	Date           time.Time
	ProductID      *string
	Quantity       *int
	Description    string
	NetAmount      decimal.Decimal
	VATAmount      decimal.Decimal
	GrossTotal     decimal.Decimal
	DocumentNumber string
}

// RestocksInventory indica si la compra debe abonar stock.
func (p *Purchase) RestocksInventory() bool {
	return p.ProductID != nil && *p.ProductID != "" && p.Quantity != nil && *p.Quantity != 0
}
