package memory

import (
	"context"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/ports"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// txState acumula las escrituras de una transacción y los productos bloqueados.
type txState struct {
	held      []string
	holding   map[string]bool
	stock     map[string]int
	products  []entity.Product
	movements []entity.CashMovement
	sales     []entity.Sale
	purchases []entity.Purchase
}

func (tx *txState) lock(ctx context.Context, leases *leaseTable, id string) error {
	if tx.holding[id] {
		return nil
	}
	if err := leases.acquire(ctx, id); err != nil {
		return err
	}
	tx.holding[id] = true
	tx.held = append(tx.held, id)
	return nil
}

// TxRunner implementa ports.TxRunner sobre Store.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn; si devuelve error o entra en pánico el buffer se descarta.
// Los bloqueos por producto se liberan siempre al salir.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx := &txState{
		holding: make(map[string]bool),
		stock:   make(map[string]int),
	}
	defer func() {
		for _, id := range tx.held {
			r.store.leases.release(id)
		}
	}()

	if err := fn(session{s: r.store, tx: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.NewStorageError("commit", err)
	}
	return r.store.commit(tx)
}
