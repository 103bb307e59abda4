package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
)

type saleRepo struct {
	s  *Store
	tx *txState
}

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if r.tx != nil {
		r.tx.sales = append(r.tx.sales, *sale)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales = append(r.s.sales, *sale)
	return nil
}

func (r *saleRepo) visible() []entity.Sale {
	out := make([]entity.Sale, 0, len(r.s.sales))
	out = append(out, r.s.sales...)
	if r.tx != nil {
		out = append(out, r.tx.sales...)
	}
	return out
}

func (r *saleRepo) List(_ context.Context, rng period.Range) ([]repository.SaleRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]repository.SaleRow, 0)
	for _, sale := range r.visible() {
		if !rng.Contains(sale.Date) {
			continue
		}
		row := repository.SaleRow{Sale: sale}
		if sale.ProductID != nil {
			if p, ok := r.s.lookupProduct(r.tx, *sale.ProductID); ok {
				name := p.Name
				row.ProductName = &name
			}
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sale.Date.Before(out[j].Sale.Date) })
	return out, nil
}

func (r *saleRepo) SumNetTotal(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := decimal.Zero
	for _, sale := range r.visible() {
		if sale.Date.Before(from) || !sale.Date.Before(to) {
			continue
		}
		total = total.Add(sale.NetTotal)
	}
	return total, nil
}
