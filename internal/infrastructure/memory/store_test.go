package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
	"github.com/fanfanvithon/ProPymeTransparente/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, store *memory.Store, name string, stock int) string {
	t.Helper()
	p := &entity.Product{Name: name, UnitCostNet: decimal.NewFromInt(500), SalePriceNet: decimal.NewFromInt(1000), Stock: stock}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p.ID
}

func TestTxRunner_CommitMakesWritesVisible(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	id := seedProduct(t, store, "Café", 5)

	err := runner.Run(ctx, func(tx repository.Tx) error {
		if err := tx.Products().UpdateStock(ctx, id, 3); err != nil {
			return err
		}
		// antes del commit solo la tx ve el cambio
		outside, _ := store.Products().GetByID(ctx, id)
		assert.Equal(t, 5, outside.Stock)
		inside, _ := tx.Products().GetByID(ctx, id)
		assert.Equal(t, 3, inside.Stock)

		return tx.CashMovements().Create(ctx, &entity.CashMovement{
			Date: time.Now(), Direction: entity.CashInflow, Amount: decimal.NewFromInt(100),
		})
	})
	require.NoError(t, err)

	p, err := store.Products().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
	balance, err := store.CashMovements().Balance(ctx, nil)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(100)))
}

func TestTxRunner_ErrorDiscardsEverything(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	id := seedProduct(t, store, "Té", 5)
	boom := errors.New("boom")

	err := runner.Run(ctx, func(tx repository.Tx) error {
		require.NoError(t, tx.Products().UpdateStock(ctx, id, 0))
		require.NoError(t, tx.Sales().Create(ctx, &entity.Sale{Date: time.Now(), Quantity: 5}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, _ := store.Products().GetByID(ctx, id)
	assert.Equal(t, 5, p.Stock)
	rows, err := store.Sales().List(ctx, period.Range{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTxRunner_PanicReleasesLease(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	id := seedProduct(t, store, "Azúcar", 1)

	assert.Panics(t, func() {
		_ = runner.Run(ctx, func(tx repository.Tx) error {
			_, _ = tx.Products().GetForUpdate(ctx, id)
			panic("fallo")
		})
	})

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx, func(tx repository.Tx) error {
			_, err := tx.Products().GetForUpdate(ctx, id)
			return err
		})
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("el bloqueo del producto no se liberó tras el pánico")
	}
}

func TestGetForUpdate_BlocksUntilCommitAndHonoursContext(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	id := seedProduct(t, store, "Harina", 1)

	locked := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = runner.Run(context.Background(), func(tx repository.Tx) error {
			_, err := tx.Products().GetForUpdate(context.Background(), id)
			close(locked)
			<-release
			return err
		})
	}()
	<-locked

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := runner.Run(ctx, func(tx repository.Tx) error {
		_, err := tx.Products().GetForUpdate(ctx, id)
		return err
	})
	assert.True(t, errors.Is(err, domain.ErrStorage))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	close(release)
}

func TestUpdateStock_RejectsNegativeAndUnknown(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	id := seedProduct(t, store, "Sal", 1)

	err := store.Products().UpdateStock(ctx, id, -1)
	assert.True(t, errors.Is(err, domain.ErrStorage))

	err = store.Products().UpdateStock(ctx, "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCashMovements_BalanceListAndTotals(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := store.CashMovements()
	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, repo.Create(ctx, &entity.CashMovement{Date: day(3), Direction: entity.CashOutflow, Amount: decimal.NewFromInt(40)}))
	require.NoError(t, repo.Create(ctx, &entity.CashMovement{Date: day(1), Direction: entity.CashInflow, Amount: decimal.NewFromInt(100)}))
	require.NoError(t, repo.Create(ctx, &entity.CashMovement{Date: day(5), Direction: entity.CashInflow, Amount: decimal.NewFromInt(10)}))

	cutoff := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	before, err := repo.Balance(ctx, &cutoff)
	require.NoError(t, err)
	assert.True(t, before.Equal(decimal.NewFromInt(100)))

	list, err := repo.List(ctx, period.Range{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, day(1), list[0].Date)
	assert.Equal(t, day(5), list[2].Date)

	in, out, err := repo.Totals(ctx, day(1), day(5))
	require.NoError(t, err)
	assert.True(t, in.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.Equal(decimal.NewFromInt(40)))
}

func TestProducts_ListOrderedByName(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "Zanahoria", 1)
	seedProduct(t, store, "Arroz", 1)
	seedProduct(t, store, "Leche", 1)

	list, err := store.Products().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Arroz", list[0].Name)
	assert.Equal(t, "Leche", list[1].Name)
	assert.Equal(t, "Zanahoria", list[2].Name)
}

func TestSales_ListResolvesProductName(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	id := seedProduct(t, store, "Pan", 1)
	missing := "borrado"

	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{Date: time.Now(), ProductID: &id, Quantity: 1}))
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{Date: time.Now(), ProductID: &missing, Quantity: 1}))

	rows, err := store.Sales().List(ctx, period.Range{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].ProductName)
	assert.Equal(t, "Pan", *rows[0].ProductName)
	assert.Nil(t, rows[1].ProductName)
}
