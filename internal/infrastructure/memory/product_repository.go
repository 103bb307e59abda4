package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
)

type productRepo struct {
	s  *Store
	tx *txState
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Stock < 0 {
		return domain.NewStorageError("insert producto", errStockCheck)
	}
	if r.tx != nil {
		r.tx.products = append(r.tx.products, *p)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.products[p.ID]; exists {
		return domain.NewStorageError("insert producto", domain.ErrConflict)
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.lookupProduct(r.tx, id)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if r.tx != nil {
		if err := r.tx.lock(ctx, r.s.leases, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateStock(_ context.Context, id string, stock int) error {
	if stock < 0 {
		return domain.NewStorageError("update stock", errStockCheck)
	}
	if r.tx != nil {
		r.s.mu.RLock()
		_, ok := r.s.lookupProduct(r.tx, id)
		r.s.mu.RUnlock()
		if !ok {
			return domain.ErrNotFound
		}
		r.tx.stock[id] = stock
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	r.s.products[id] = p
	return nil
}

func (r *productRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for id := range r.s.products {
		p, _ := r.s.lookupProduct(r.tx, id)
		out = append(out, &p)
	}
	if r.tx != nil {
		for _, p := range r.tx.products {
			p := p
			if stock, ok := r.tx.stock[p.ID]; ok {
				p.Stock = stock
			}
			out = append(out, &p)
		}
	}
	sortByName(out)
	return out, nil
}
