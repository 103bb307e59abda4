package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
)

type purchaseRepo struct {
	s  *Store
	tx *txState
}

func (r *purchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if r.tx != nil {
		r.tx.purchases = append(r.tx.purchases, *p)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.purchases = append(r.s.purchases, *p)
	return nil
}

func (r *purchaseRepo) List(_ context.Context, rng period.Range) ([]repository.PurchaseRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]entity.Purchase, 0, len(r.s.purchases))
	all = append(all, r.s.purchases...)
	if r.tx != nil {
		all = append(all, r.tx.purchases...)
	}
	out := make([]repository.PurchaseRow, 0)
	for _, p := range all {
		if !rng.Contains(p.Date) {
			continue
		}
		row := repository.PurchaseRow{Purchase: p}
		if p.ProductID != nil {
			if prod, ok := r.s.lookupProduct(r.tx, *p.ProductID); ok {
				name := prod.Name
				row.ProductName = &name
			}
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Purchase.Date.Before(out[j].Purchase.Date) })
	return out, nil
}
