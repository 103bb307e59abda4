package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
)

// SaleRow es una venta con el nombre del producto resuelto (nil si ya no existe).
type SaleRow struct {
	Sale        entity.Sale
	ProductName *string
}

// SaleRepository persiste el libro de ventas.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	List(ctx context.Context, r period.Range) ([]SaleRow, error)
	// SumNetTotal suma monto_neto_total en [from, to).
	SumNetTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
