package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/inventory"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/ports"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
	"github.com/fanfanvithon/ProPymeTransparente/internal/infrastructure/memory"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/logger"
)

func newLedger(t *testing.T, stock int) (*inventory.StockLedger, *memory.Store, string) {
	t.Helper()
	store := memory.NewStore()
	p := &entity.Product{Name: "Queso", UnitCostNet: decimal.NewFromInt(800), SalePriceNet: decimal.NewFromInt(1000), Stock: stock}
	require.NoError(t, store.Products().Create(context.Background(), p))
	ledger := inventory.NewStockLedger(memory.NewTxRunner(store), store.Products(), ports.NopRecorder{}, logger.Nop())
	return ledger, store, p.ID
}

func TestDebit_SequentialFitThenFail(t *testing.T) {
	ctx := context.Background()
	ledger, _, id := newLedger(t, 5)

	p, err := ledger.Debit(ctx, id, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)

	_, err = ledger.Debit(ctx, id, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, err = ledger.Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
}

func TestDebit_ExactStockReachesZero(t *testing.T) {
	ledger, _, id := newLedger(t, 4)

	p, err := ledger.Debit(context.Background(), id, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestDebit_InvalidQuantity(t *testing.T) {
	ledger, _, id := newLedger(t, 4)

	for _, q := range []int{0, -1} {
		_, err := ledger.Debit(context.Background(), id, q)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "cantidad %d", q)
	}
}

func TestDebitAndCredit_UnknownProduct(t *testing.T) {
	ledger, _, _ := newLedger(t, 1)

	_, err := ledger.Debit(context.Background(), "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = ledger.Credit(context.Background(), "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = ledger.Lookup(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCredit_NoUpperBound(t *testing.T) {
	ledger, _, id := newLedger(t, 1)

	p, err := ledger.Credit(context.Background(), id, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, 1_000_001, p.Stock)
}

func TestCredit_NegativeCannotGoBelowZero(t *testing.T) {
	ledger, _, id := newLedger(t, 2)

	p, err := ledger.Credit(context.Background(), id, -2)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)

	_, err = ledger.Credit(context.Background(), id, -1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestDebit_ConcurrentNeverOversells(t *testing.T) {
	ctx := context.Background()
	ledger, _, id := newLedger(t, 10)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Debit(ctx, id, 1)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				fail++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 15, fail)
	p, err := ledger.Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestReserveAndDebitInTx_RolledBackWithCaller(t *testing.T) {
	ctx := context.Background()
	ledger, store, id := newLedger(t, 5)
	runner := memory.NewTxRunner(store)
	boom := errors.New("fallo posterior")

	err := runner.Run(ctx, func(tx repository.Tx) error {
		if _, err := ledger.ReserveAndDebitInTx(ctx, tx, id, 5); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := ledger.Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}
