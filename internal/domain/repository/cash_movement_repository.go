package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
)

// CashMovementRepository persiste el libro de caja (solo inserción).
type CashMovementRepository interface {
	Create(ctx context.Context, m *entity.CashMovement) error
	// Balance suma ingresos menos egresos con fecha estrictamente anterior a before.
	// Con before nil suma todo el libro. Sin filas devuelve cero.
	Balance(ctx context.Context, before *time.Time) (decimal.Decimal, error)
	// List devuelve los movimientos del rango ordenados por fecha ascendente.
	List(ctx context.Context, r period.Range) ([]*entity.CashMovement, error)
	// Totals suma ingresos y egresos en [from, to).
	Totals(ctx context.Context, from, to time.Time) (inflow, outflow decimal.Decimal, err error)
}
