// Package purchases registra compras de mercadería y gastos generales.
package purchases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/inventory"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/ports"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/tax"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/logger"
)

// PaymentMethod medio de pago fijo de las compras.
const PaymentMethod = "Transferencia Bancaria"

// UseCase registra compras y gastos.
type UseCase struct {
	txRunner ports.TxRunner
	stock    *inventory.StockLedger
	codec    *tax.Codec
	loc      *time.Location
	now      ports.Clock
	metrics  ports.OperationRecorder
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	stock *inventory.StockLedger,
	codec *tax.Codec,
	loc *time.Location,
	metrics ports.OperationRecorder,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		stock:    stock,
		codec:    codec,
		loc:      loc,
		now:      time.Now,
		metrics:  metrics,
		log:      log,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(clock ports.Clock) *UseCase {
	uc.now = clock
	return uc
}

// PurchaseDescription concepto del egreso en caja asociado a una compra.
func PurchaseDescription(documentNumber, description string) string {
	return fmt.Sprintf("Compra/Gasto (Doc: %s): %s", documentNumber, description)
}

// RecordPurchase inserta la compra desglosada y su egreso en caja; si trae producto y
// cantidad distinta de cero abona el stock en la misma transacción.
func (uc *UseCase) RecordPurchase(ctx context.Context, in dto.CreatePurchaseRequest) (*entity.Purchase, error) {
	started := time.Now()
	if in.MontoTotalConIVA == nil {
		err := domain.NewValidationError("monto_total_con_iva", "es obligatorio")
		uc.metrics.ObserveOperation("record_purchase", started, err)
		return nil, err
	}

	gross := *in.MontoTotalConIVA
	net, vat := uc.codec.GrossToNet(gross)
	now := period.Stamp(uc.now(), uc.loc)

	purchase := &entity.Purchase{
		ID:             uuid.New().String(),
		Date:           now,
		ProductID:      optionalProduct(in.ProductoID),
		Quantity:       in.Cantidad,
		Description:    in.Concepto,
		NetAmount:      net,
		VATAmount:      vat,
		GrossTotal:     gross,
		DocumentNumber: in.NDocumento,
	}
	movement := &entity.CashMovement{
		ID:            uuid.New().String(),
		Date:          now,
		Direction:     entity.CashOutflow,
		Description:   PurchaseDescription(in.NDocumento, in.Concepto),
		Amount:        gross,
		PaymentMethod: PaymentMethod,
		AffectsTaxes:  true,
		DocumentRef:   entity.DocumentRefOf(in.NDocumento),
	}

	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		if err := tx.Purchases().Create(ctx, purchase); err != nil {
			return err
		}
		if err := tx.CashMovements().Create(ctx, movement); err != nil {
			return err
		}
		if !purchase.RestocksInventory() {
			return nil
		}
		_, err := uc.stock.CreditInTx(ctx, tx, *purchase.ProductID, *purchase.Quantity)
		if errors.Is(err, domain.ErrNotFound) {
			// producto desconocido: la compra y el egreso se registran igual, sin tocar stock
			uc.log.Warn().Str("op", "record_purchase").Str("producto_id", *purchase.ProductID).
				Str("n_documento", in.NDocumento).Msg("producto no encontrado, stock sin cambios")
			return nil
		}
		return err
	})
	uc.metrics.ObserveOperation("record_purchase", started, err)
	if err != nil {
		uc.log.Warn().Str("op", "record_purchase").Str("n_documento", in.NDocumento).Err(err).Msg("compra rechazada")
		return nil, err
	}

	uc.log.Info().Str("op", "record_purchase").Str("id", purchase.ID).Str("n_documento", in.NDocumento).
		Bool("repone_stock", purchase.RestocksInventory()).Msg("compra registrada")
	return purchase, nil
}

func optionalProduct(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
