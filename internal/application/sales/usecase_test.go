package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/inventory"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/ports"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/sales"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/tax"
	"github.com/fanfanvithon/ProPymeTransparente/internal/infrastructure/memory"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/logger"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int) *int { return &n }

type fixture struct {
	store     *memory.Store
	uc        *sales.UseCase
	productID string
}

func newFixture(t *testing.T, stock int, runner ports.TxRunner) fixture {
	t.Helper()
	store := memory.NewStore()
	p := &entity.Product{Name: "Bebida", UnitCostNet: decimal.NewFromInt(600), SalePriceNet: decimal.NewFromInt(1000), Stock: stock}
	require.NoError(t, store.Products().Create(context.Background(), p))
	if runner == nil {
		runner = memory.NewTxRunner(store)
	}
	ledger := inventory.NewStockLedger(runner, store.Products(), ports.NopRecorder{}, logger.Nop())
	uc := sales.NewUseCase(runner, ledger, tax.MustCodec(tax.DefaultRate), time.UTC, ports.NopRecorder{}, logger.Nop())
	return fixture{store: store, uc: uc, productID: p.ID}
}

func saleRequest(productID string, qty int, unit, total string) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		ProductoID:           productID,
		Cantidad:             intPtr(qty),
		PrecioUnitarioConIVA: dec(unit),
		MontoTotalConIVA:     dec(total),
		MetodoPago:           "Efectivo",
		NDocumento:           "B-100",
	}
}

func TestRecordSale_DecomposesAndWritesAllThree(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, nil)

	sale, err := f.uc.RecordSale(ctx, saleRequest(f.productID, 2, "1190", "2380"))
	require.NoError(t, err)

	assert.True(t, sale.NetTotal.Equal(decimal.NewFromInt(2000)))
	assert.True(t, sale.VATAmount.Equal(decimal.NewFromInt(380)))
	assert.True(t, sale.GrossTotal.Equal(decimal.NewFromInt(2380)))
	assert.True(t, sale.UnitPriceNet.Equal(decimal.NewFromInt(1000)))

	p, err := f.store.Products().GetByID(ctx, f.productID)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)

	rows, err := f.store.Sales().List(ctx, period.Range{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].ProductName)
	assert.Equal(t, "Bebida", *rows[0].ProductName)

	movements, err := f.store.CashMovements().List(ctx, period.Range{})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	m := movements[0]
	assert.Equal(t, entity.CashInflow, m.Direction)
	assert.True(t, m.Amount.Equal(decimal.NewFromInt(2380)))
	assert.Equal(t, "Venta de productos (Doc: B-100)", m.Description)
	assert.True(t, m.AffectsTaxes)
	assert.Equal(t, "Efectivo", m.PaymentMethod)
	require.NotNil(t, m.DocumentRef)
	assert.Equal(t, "B-100", *m.DocumentRef)
}

func TestRecordSale_InsufficientStockLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1, nil)

	_, err := f.uc.RecordSale(ctx, saleRequest(f.productID, 2, "1190", "2380"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := f.store.Products().GetByID(ctx, f.productID)
	assert.Equal(t, 1, p.Stock)
	rows, _ := f.store.Sales().List(ctx, period.Range{})
	assert.Empty(t, rows)
	balance, _ := f.store.CashMovements().Balance(ctx, nil)
	assert.True(t, balance.IsZero())
}

func TestRecordSale_UnknownProduct(t *testing.T) {
	f := newFixture(t, 1, nil)

	_, err := f.uc.RecordSale(context.Background(), saleRequest("no-existe", 1, "1190", "1190"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_Validation(t *testing.T) {
	f := newFixture(t, 1, nil)
	ctx := context.Background()

	cases := map[string]func(r *dto.CreateSaleRequest){
		"sin producto":  func(r *dto.CreateSaleRequest) { r.ProductoID = " " },
		"cantidad cero": func(r *dto.CreateSaleRequest) { r.Cantidad = intPtr(0) },
		"sin cantidad":  func(r *dto.CreateSaleRequest) { r.Cantidad = nil },
		"sin total":     func(r *dto.CreateSaleRequest) { r.MontoTotalConIVA = nil },
		"sin unitario":  func(r *dto.CreateSaleRequest) { r.PrecioUnitarioConIVA = nil },
	}
	for name, mutate := range cases {
		req := saleRequest(f.productID, 1, "1190", "1190")
		mutate(&req)
		_, err := f.uc.RecordSale(ctx, req)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), name)
	}
}

// failingCashRunner hace fallar la inserción en caja para forzar el rollback.
type failingCashRunner struct{ inner ports.TxRunner }

func (r failingCashRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	return r.inner.Run(ctx, func(tx repository.Tx) error { return fn(failingCashTx{tx}) })
}

type failingCashTx struct{ repository.Tx }

func (f failingCashTx) CashMovements() repository.CashMovementRepository {
	return failingCashRepo{f.Tx.CashMovements()}
}

type failingCashRepo struct{ repository.CashMovementRepository }

func (failingCashRepo) Create(context.Context, *entity.CashMovement) error {
	return domain.NewStorageError("insert movimiento", errors.New("disk full"))
}

func TestRecordSale_StorageFailureRollsBackStockAndSale(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := &entity.Product{Name: "Bebida", Stock: 5}
	require.NoError(t, store.Products().Create(ctx, p))
	runner := failingCashRunner{inner: memory.NewTxRunner(store)}
	ledger := inventory.NewStockLedger(runner, store.Products(), ports.NopRecorder{}, logger.Nop())
	uc := sales.NewUseCase(runner, ledger, tax.MustCodec(tax.DefaultRate), time.UTC, ports.NopRecorder{}, logger.Nop())

	_, err := uc.RecordSale(ctx, saleRequest(p.ID, 2, "1190", "2380"))
	assert.True(t, errors.Is(err, domain.ErrStorage))

	got, _ := store.Products().GetByID(ctx, p.ID)
	assert.Equal(t, 5, got.Stock)
	rows, _ := store.Sales().List(ctx, period.Range{})
	assert.Empty(t, rows)
}

func TestRecordSale_ConcurrentNeverOversells(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7, nil)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.RecordSale(ctx, saleRequest(f.productID, 1, "1190", "1190"))
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 7, ok)
	p, _ := f.store.Products().GetByID(ctx, f.productID)
	assert.Equal(t, 0, p.Stock)
	rows, _ := f.store.Sales().List(ctx, period.Range{})
	assert.Len(t, rows, 7)
	balance, _ := f.store.CashMovements().Balance(ctx, nil)
	assert.True(t, balance.Equal(decimal.NewFromInt(7*1190)))
}
