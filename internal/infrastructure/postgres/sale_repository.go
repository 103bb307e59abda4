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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo libro de ventas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta una venta ya desglosada.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO ventas (id, fecha, producto_id, cantidad, precio_unitario_neto, monto_neto_total, monto_iva, monto_total_con_iva, metodo_pago, n_documento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Date, s.ProductID, s.Quantity, s.UnitPriceNet, s.NetTotal, s.VATAmount, s.GrossTotal,
		s.PaymentMethod, s.DocumentNumber,
	)
	if err != nil {
		return domain.NewStorageError("insert venta", err)
	}
	return nil
}

// List ventas del rango con el nombre del producto (LEFT JOIN), por fecha ascendente.
func (r *SaleRepo) List(ctx context.Context, rng period.Range) ([]repository.SaleRow, error) {
	query := `
		SELECT v.id, v.fecha, v.producto_id, v.cantidad, v.precio_unitario_neto, v.monto_neto_total,
		       v.monto_iva, v.monto_total_con_iva, v.metodo_pago, v.n_documento, p.nombre
		FROM ventas v
		LEFT JOIN productos p ON p.id::text = v.producto_id
		WHERE 1=1`
	query, args := appendRange(query, nil, "v.fecha", rng)
	query += " ORDER BY v.fecha ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError("list ventas", err)
	}
	defer rows.Close()

	out := make([]repository.SaleRow, 0)
	for rows.Next() {
		var row repository.SaleRow
		s := &row.Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.ProductID, &s.Quantity, &s.UnitPriceNet, &s.NetTotal,
			&s.VATAmount, &s.GrossTotal, &s.PaymentMethod, &s.DocumentNumber, &row.ProductName); err != nil {
			return nil, domain.NewStorageError("scan venta", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list ventas", err)
	}
	return out, nil
}

// SumNetTotal suma monto_neto_total con from <= fecha < to.
func (r *SaleRepo) SumNetTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(monto_neto_total), 0)
		FROM ventas
		WHERE fecha >= $1 AND fecha < $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, domain.NewStorageError("total ventas", err)
	}
	return total, nil
}
