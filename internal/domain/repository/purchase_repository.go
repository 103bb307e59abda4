package repository

import (
	"context"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
)

// PurchaseRow es una compra con el nombre del producto resuelto, si aplica.
type PurchaseRow struct {
	Purchase    entity.Purchase
	ProductName *string
}

// PurchaseRepository persiste el libro de compras y gastos.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	List(ctx context.Context, r period.Range) ([]PurchaseRow, error)
}
