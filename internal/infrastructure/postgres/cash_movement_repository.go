package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
)

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

// CashMovementRepo libro de caja sobre PostgreSQL (usable con pool o tx).
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *CashMovementRepo) Create(ctx context.Context, m *entity.CashMovement) error {
	query := `
		INSERT INTO movimientos_caja (id, fecha, tipo, concepto, monto_total, medio_pago, afecta_impuestos, doc_tributario_asociado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Date, string(m.Direction), m.Description, m.Amount, m.PaymentMethod, m.AffectsTaxes, m.DocumentRef,
	)
	if err != nil {
		return domain.NewStorageError("insert movimiento_caja", err)
	}
	return nil
}

// Balance suma ingresos menos egresos con fecha < before (todo el libro si before es nil).
func (r *CashMovementRepo) Balance(ctx context.Context, before *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN tipo = 'ingreso' THEN monto_total ELSE -monto_total END), 0)
		FROM movimientos_caja
		WHERE ($1::timestamptz IS NULL OR fecha < $1::timestamptz)`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, before).Scan(&total); err != nil {
		return decimal.Zero, domain.NewStorageError("saldo caja", err)
	}
	return total, nil
}

// List movimientos del rango ordenados por fecha ascendente.
func (r *CashMovementRepo) List(ctx context.Context, rng period.Range) ([]*entity.CashMovement, error) {
	query := `
		SELECT id, fecha, tipo, concepto, monto_total, medio_pago, afecta_impuestos, doc_tributario_asociado
		FROM movimientos_caja
		WHERE 1=1`
	query, args := appendRange(query, nil, "fecha", rng)
	query += " ORDER BY fecha ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError("list movimientos_caja", err)
	}
	defer rows.Close()

	out := make([]*entity.CashMovement, 0)
	for rows.Next() {
		var (
			m    entity.CashMovement
			tipo string
		)
		if err := rows.Scan(&m.ID, &m.Date, &tipo, &m.Description, &m.Amount, &m.PaymentMethod, &m.AffectsTaxes, &m.DocumentRef); err != nil {
			return nil, domain.NewStorageError("scan movimiento_caja", err)
		}
		m.Direction = entity.CashDirection(tipo)
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list movimientos_caja", err)
	}
	return out, nil
}

// Totals suma ingresos y egresos con from <= fecha < to.
func (r *CashMovementRepo) Totals(ctx context.Context, from, to time.Time) (inflow, outflow decimal.Decimal, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN tipo = 'ingreso' THEN monto_total ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN tipo = 'egreso' THEN monto_total ELSE 0 END), 0)
		FROM movimientos_caja
		WHERE fecha >= $1 AND fecha < $2`
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&inflow, &outflow); err != nil {
		return decimal.Zero, decimal.Zero, domain.NewStorageError("totales caja", err)
	}
	return inflow, outflow, nil
}
