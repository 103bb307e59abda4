package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
)

type cashMovementRepo struct {
	s  *Store
	tx *txState
}

func (r *cashMovementRepo) Create(_ context.Context, m *entity.CashMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if r.tx != nil {
		r.tx.movements = append(r.tx.movements, *m)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

// visible devuelve lo confirmado más lo pendiente de la tx. Requiere s.mu tomado.
func (r *cashMovementRepo) visible() []entity.CashMovement {
	out := make([]entity.CashMovement, 0, len(r.s.movements))
	out = append(out, r.s.movements...)
	if r.tx != nil {
		out = append(out, r.tx.movements...)
	}
	return out
}

func (r *cashMovementRepo) Balance(_ context.Context, before *time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := decimal.Zero
	for _, m := range r.visible() {
		if before != nil && !m.Date.Before(*before) {
			continue
		}
		total = total.Add(m.SignedAmount())
	}
	return total, nil
}

func (r *cashMovementRepo) List(_ context.Context, rng period.Range) ([]*entity.CashMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.CashMovement, 0)
	for _, m := range r.visible() {
		if !rng.Contains(m.Date) {
			continue
		}
		m := m
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *cashMovementRepo) Totals(_ context.Context, from, to time.Time) (inflow, outflow decimal.Decimal, err error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inflow, outflow = decimal.Zero, decimal.Zero
	for _, m := range r.visible() {
		if m.Date.Before(from) || !m.Date.Before(to) {
			continue
		}
		switch m.Direction {
		case entity.CashInflow:
			inflow = inflow.Add(m.Amount)
		case entity.CashOutflow:
			outflow = outflow.Add(m.Amount)
		}
	}
	return inflow, outflow, nil
}
