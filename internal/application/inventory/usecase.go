package inventory

import (
	"context"
	"time"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/ports"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/logger"
)

// StockLedger mantiene el stock por producto con bloqueo de fila (SELECT FOR UPDATE).
// Las variantes InTx usan los repositorios de la transacción del caller para que la
// venta o compra y su ajuste de stock se confirmen o se descarten juntos.
type StockLedger struct {
	txRunner    ports.TxRunner
	productRepo repository.ProductRepository
	metrics     ports.OperationRecorder
	log         *logger.Logger
}

// NewStockLedger construye el ledger de inventario.
func NewStockLedger(
	txRunner ports.TxRunner,
	productRepo repository.ProductRepository,
	metrics ports.OperationRecorder,
	log *logger.Logger,
) *StockLedger {
	return &StockLedger{
		txRunner:    txRunner,
		productRepo: productRepo,
		metrics:     metrics,
		log:         log,
	}
}

// ReserveAndDebitInTx bloquea el producto, verifica stock >= cantidad y lo descuenta.
// Si retorna error (ej: ErrInsufficientStock) el caller debe abortar la transacción.
func (l *StockLedger) ReserveAndDebitInTx(ctx context.Context, tx repository.Tx, productID string, quantity int) (*entity.Product, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("cantidad", "debe ser mayor que cero")
	}
	products := tx.Products()
	product, err := products.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Stock < quantity {
		return nil, domain.ErrInsufficientStock
	}
	product.Stock -= quantity
	if err := products.UpdateStock(ctx, productID, product.Stock); err != nil {
		return nil, err
	}
	return product, nil
}

// CreditInTx suma cantidad al stock del producto. No hay tope superior; una cantidad
// negativa se acepta mientras el stock no quede bajo cero.
func (l *StockLedger) CreditInTx(ctx context.Context, tx repository.Tx, productID string, quantity int) (*entity.Product, error) {
	if quantity == 0 {
		return nil, domain.NewValidationError("cantidad", "debe ser distinta de cero")
	}
	products := tx.Products()
	product, err := products.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Stock+quantity < 0 {
		return nil, domain.ErrInsufficientStock
	}
	product.Stock += quantity
	if err := products.UpdateStock(ctx, productID, product.Stock); err != nil {
		return nil, err
	}
	return product, nil
}

// Debit descuenta stock en su propia transacción.
func (l *StockLedger) Debit(ctx context.Context, productID string, quantity int) (*entity.Product, error) {
	return l.runAdjustment(ctx, "stock_debit", productID, quantity, l.ReserveAndDebitInTx)
}

// Credit abona stock en su propia transacción.
func (l *StockLedger) Credit(ctx context.Context, productID string, quantity int) (*entity.Product, error) {
	return l.runAdjustment(ctx, "stock_credit", productID, quantity, l.CreditInTx)
}

type adjustFn func(ctx context.Context, tx repository.Tx, productID string, quantity int) (*entity.Product, error)

func (l *StockLedger) runAdjustment(ctx context.Context, op, productID string, quantity int, fn adjustFn) (*entity.Product, error) {
	started := time.Now()
	var product *entity.Product
	err := l.txRunner.Run(ctx, func(tx repository.Tx) error {
		var err error
		product, err = fn(ctx, tx, productID, quantity)
		return err
	})
	l.metrics.ObserveOperation(op, started, err)
	if err != nil {
		l.log.Warn().Str("op", op).Str("producto_id", productID).Int("cantidad", quantity).Err(err).Msg("ajuste de stock rechazado")
		return nil, err
	}
	l.log.Debug().Str("op", op).Str("producto_id", productID).Int("stock", product.Stock).Msg("stock actualizado")
	return product, nil
}

// Lookup obtiene un producto; ErrNotFound si no existe.
func (l *StockLedger) Lookup(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := l.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}
