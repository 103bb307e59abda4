package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/ports"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
)

var (
	_ ports.TxRunner = (*TxRunner)(nil)
	_ repository.Tx  = (*Repositories)(nil)
)

// Repositories agrupa los repositorios sobre un mismo Querier (pool o tx).
type Repositories struct {
	products  *ProductRepo
	movements *CashMovementRepo
	sales     *SaleRepo
	purchases *PurchaseRepo
}

// NewRepositories construye los cuatro repositorios sobre q.
func NewRepositories(q Querier) *Repositories {
	return &Repositories{
		products:  NewProductRepository(q),
		movements: NewCashMovementRepository(q),
		sales:     NewSaleRepository(q),
		purchases: NewPurchaseRepository(q),
	}
}

func (r *Repositories) Products() repository.ProductRepository { return r.products }
func (r *Repositories) CashMovements() repository.CashMovementRepository { return r.movements }
func (r *Repositories) Sales() repository.SaleRepository { return r.sales }
func (r *Repositories) Purchases() repository.PurchaseRepository { return r.purchases }

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido también cubre un pánico dentro de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.NewStorageError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.NewStorageError("commit transaction", err)
	}
	return nil
}
