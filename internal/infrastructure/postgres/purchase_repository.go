package postgres

import (
	"context"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo libro de compras sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta una compra ya desglosada.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO compras (id, fecha, producto_id, cantidad, concepto, monto_neto, monto_iva, monto_total_con_iva, n_documento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Date, p.ProductID, p.Quantity, p.Description, p.NetAmount, p.VATAmount, p.GrossTotal, p.DocumentNumber,
	)
	if err != nil {
		return domain.NewStorageError("insert compra", err)
	}
	return nil
}

// List compras del rango con el nombre del producto si lo hay, por fecha ascendente.
func (r *PurchaseRepo) List(ctx context.Context, rng period.Range) ([]repository.PurchaseRow, error) {
	query := `
		SELECT c.id, c.fecha, c.producto_id, c.cantidad, c.concepto, c.monto_neto, c.monto_iva,
		       c.monto_total_con_iva, c.n_documento, p.nombre
		FROM compras c
		LEFT JOIN productos p ON p.id::text = c.producto_id
		WHERE 1=1`
	query, args := appendRange(query, nil, "c.fecha", rng)
	query += " ORDER BY c.fecha ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError("list compras", err)
	}
	defer rows.Close()

	out := make([]repository.PurchaseRow, 0)
	for rows.Next() {
		var row repository.PurchaseRow
		p := &row.Purchase
		if err := rows.Scan(&p.ID, &p.Date, &p.ProductID, &p.Quantity, &p.Description, &p.NetAmount,
			&p.VATAmount, &p.GrossTotal, &p.DocumentNumber, &row.ProductName); err != nil {
			return nil, domain.NewStorageError("scan compra", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list compras", err)
	}
	return out, nil
}
