// Package cashbook registra y consulta el libro de caja.
package cashbook

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/ports"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/logger"
)

// UseCase libro de caja: inserción de movimientos y consultas de saldo.
type UseCase struct {
	txRunner ports.TxRunner
	repo     repository.CashMovementRepository
	loc      *time.Location
	now      ports.Clock
	metrics  ports.OperationRecorder
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. loc es la zona en que se interpretan las fechas.
func NewUseCase(
	txRunner ports.TxRunner,
	repo repository.CashMovementRepository,
	loc *time.Location,
	metrics ports.OperationRecorder,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		repo:     repo,
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

// Record inserta un movimiento manual. El monto no se valida en signo ni magnitud.
func (uc *UseCase) Record(ctx context.Context, in dto.CreateCashMovementRequest) (string, error) {
	started := time.Now()
	direction, ok := entity.ParseCashDirection(strings.TrimSpace(in.Tipo))
	if !ok {
		err := domain.NewValidationError("tipo", "debe ser 'ingreso' o 'egreso'")
		uc.metrics.ObserveOperation("cash_record", started, err)
		return "", err
	}
	if in.MontoTotal == nil {
		err := domain.NewValidationError("monto_total", "es obligatorio")
		uc.metrics.ObserveOperation("cash_record", started, err)
		return "", err
	}

	movement := &entity.CashMovement{
		ID:            uuid.New().String(),
		Date:          period.Stamp(uc.now(), uc.loc),
		Direction:     direction,
		Description:   in.Concepto,
		Amount:        *in.MontoTotal,
		PaymentMethod: in.MedioPago,
		AffectsTaxes:  bool(in.AfectaImpuestos),
		DocumentRef:   docRef(in.DocTributarioAsociado),
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		return tx.CashMovements().Create(ctx, movement)
	})
	uc.metrics.ObserveOperation("cash_record", started, err)
	if err != nil {
		uc.log.Error().Str("op", "cash_record").Err(err).Msg("no se pudo registrar el movimiento")
		return "", err
	}
	uc.log.Info().Str("op", "cash_record").Str("id", movement.ID).Str("tipo", string(direction)).
		Str("monto", movement.Amount.String()).Msg("movimiento de caja registrado")
	return movement.ID, nil
}

// BalanceAsOf saldo de todos los movimientos con fecha < cutoff.
func (uc *UseCase) BalanceAsOf(ctx context.Context, cutoff time.Time) (decimal.Decimal, error) {
	return uc.repo.Balance(ctx, &cutoff)
}

// OpeningBalance saldo anterior a las 00:00:00 de dateBefore (YYYY-MM-DD). Vacío devuelve cero.
func (uc *UseCase) OpeningBalance(ctx context.Context, dateBefore string) (decimal.Decimal, error) {
	if strings.TrimSpace(dateBefore) == "" {
		return decimal.Zero, nil
	}
	cutoff, err := period.ParseDay("date_before", dateBefore, uc.loc)
	if err != nil {
		return decimal.Zero, err
	}
	return uc.BalanceAsOf(ctx, cutoff)
}

// BalanceTotal saldo de todo el libro.
func (uc *UseCase) BalanceTotal(ctx context.Context) (decimal.Decimal, error) {
	return uc.repo.Balance(ctx, nil)
}

// ListInRange movimientos entre start 00:00:00 y end 23:59:59, ambos opcionales, por fecha ascendente.
func (uc *UseCase) ListInRange(ctx context.Context, start, end string) ([]*entity.CashMovement, error) {
	r, err := period.DayRange(start, end, uc.loc)
	if err != nil {
		return nil, err
	}
	return uc.repo.List(ctx, r)
}

// MonthlyRollup devuelve exactamente monthsBack meses (el actual al final) con ingresos y egresos.
// Los meses sin movimientos van con cero.
func (uc *UseCase) MonthlyRollup(ctx context.Context, monthsBack int) ([]dto.MonthlyCashFlowItem, error) {
	if monthsBack <= 0 {
		return nil, domain.NewValidationError("meses", "debe ser mayor que cero")
	}
	months := period.TrailingMonths(uc.now().In(uc.loc), monthsBack)
	out := make([]dto.MonthlyCashFlowItem, 0, len(months))
	for _, m := range months {
		inflow, outflow, err := uc.repo.Totals(ctx, m.Start, m.End)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.MonthlyCashFlowItem{
			Anio:     m.Year,
			Mes:      int(m.Month),
			Ingresos: inflow,
			Egresos:  outflow,
		})
	}
	return out, nil
}

// Location zona horaria del negocio.
func (uc *UseCase) Location() *time.Location { return uc.loc }

func docRef(s *string) *string {
	if s == nil {
		return nil
	}
	return entity.DocumentRefOf(*s)
}
