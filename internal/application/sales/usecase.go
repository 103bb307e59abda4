// Package sales registra ventas: descuento de stock, libro de ventas e ingreso en caja
// dentro de una sola transacción.
package sales

import (
	"context"
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

// UseCase registra ventas.
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

// SaleDescription concepto del ingreso en caja asociado a una venta.
func SaleDescription(documentNumber string) string {
	return fmt.Sprintf("Venta de productos (Doc: %s)", documentNumber)
}

func validate(in dto.CreateSaleRequest) error {
	if strings.TrimSpace(in.ProductoID) == "" {
		return domain.NewValidationError("producto_id", "es obligatorio")
	}
	if in.Cantidad == nil || *in.Cantidad <= 0 {
		return domain.NewValidationError("cantidad", "debe ser mayor que cero")
	}
	if in.PrecioUnitarioConIVA == nil {
		return domain.NewValidationError("precio_unitario_con_iva", "es obligatorio")
	}
	if in.MontoTotalConIVA == nil {
		return domain.NewValidationError("monto_total_con_iva", "es obligatorio")
	}
	return nil
}

// RecordSale descuenta stock, inserta la venta desglosada y el ingreso en caja.
// Si cualquier paso falla no queda ningún efecto (ej: ErrInsufficientStock).
func (uc *UseCase) RecordSale(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error) {
	started := time.Now()
	if err := validate(in); err != nil {
		uc.metrics.ObserveOperation("record_sale", started, err)
		return nil, err
	}

	gross := *in.MontoTotalConIVA
	net, vat := uc.codec.GrossToNet(gross)
	unitNet, _ := uc.codec.GrossToNet(*in.PrecioUnitarioConIVA)
	now := period.Stamp(uc.now(), uc.loc)
	productID := strings.TrimSpace(in.ProductoID)

	sale := &entity.Sale{
		ID:             uuid.New().String(),
		Date:           now,
		ProductID:      &productID,
		Quantity:       *in.Cantidad,
		UnitPriceNet:   unitNet,
		NetTotal:       net,
		VATAmount:      vat,
		GrossTotal:     gross,
		PaymentMethod:  in.MetodoPago,
		DocumentNumber: in.NDocumento,
	}
	movement := &entity.CashMovement{
		ID:            uuid.New().String(),
		Date:          now,
		Direction:     entity.CashInflow,
		Description:   SaleDescription(in.NDocumento),
		Amount:        gross,
		PaymentMethod: in.MetodoPago,
		AffectsTaxes:  true,
		DocumentRef:   entity.DocumentRefOf(in.NDocumento),
	}

	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		if _, err := uc.stock.ReserveAndDebitInTx(ctx, tx, productID, sale.Quantity); err != nil {
			return err
		}
		if err := tx.Sales().Create(ctx, sale); err != nil {
			return err
		}
		return tx.CashMovements().Create(ctx, movement)
	})
	uc.metrics.ObserveOperation("record_sale", started, err)
	if err != nil {
		uc.log.Warn().Str("op", "record_sale").Str("producto_id", productID).Int("cantidad", sale.Quantity).
			Str("n_documento", in.NDocumento).Err(err).Msg("venta rechazada")
		return nil, err
	}

	uc.log.Info().Str("op", "record_sale").Str("id", sale.ID).Str("n_documento", in.NDocumento).
		Str("neto", net.String()).Str("iva", vat.String()).Msg("venta registrada")
	return sale, nil
}
