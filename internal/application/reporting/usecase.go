// Package reporting arma las vistas de solo lectura: catálogo, libro de caja, RCV,
// saldos, flujo mensual, dashboard y exportaciones.
package reporting

import (
	"context"
	"time"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/cashbook"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/ports"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/tax"
)

const (
	cashFlowMonths    = 6 // meses del gráfico de flujo de caja
	lowStockThreshold = 5 // productos con stock <= a esto cuentan como bajo stock
)

// UseCase consultas de reporte. No escribe.
type UseCase struct {
	products  repository.ProductRepository
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
	cash      *cashbook.UseCase
	codec     *tax.Codec
	loc       *time.Location
	now       ports.Clock
}

// NewUseCase construye el caso de uso. La zona horaria se toma del libro de caja.
func NewUseCase(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	purchases repository.PurchaseRepository,
	cash *cashbook.UseCase,
	codec *tax.Codec,
) *UseCase {
	return &UseCase{
		products:  products,
		sales:     sales,
		purchases: purchases,
		cash:      cash,
		codec:     codec,
		loc:       cash.Location(),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(clock ports.Clock) *UseCase {
	uc.now = clock
	return uc
}

// Products catálogo ordenado por nombre con precios brutos derivados.
func (uc *UseCase) Products(ctx context.Context) ([]dto.ProductCatalogItem, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductCatalogItem, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductCatalogItem{
			ID:                  p.ID,
			Nombre:              p.Name,
			CostoUnitarioConIVA: uc.codec.NetToGross(p.UnitCostNet),
			PrecioVentaConIVA:   uc.codec.NetToGross(p.SalePriceNet),
			Stock:               p.Stock,
		})
	}
	return out, nil
}

// CashBook movimientos del rango por fecha ascendente.
func (uc *UseCase) CashBook(ctx context.Context, start, end string) ([]dto.CashMovementResponse, error) {
	movements, err := uc.cash.ListInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, uc.toCashMovementResponse(m))
	}
	return out, nil
}

// OpeningBalance saldo anterior a dateBefore.
func (uc *UseCase) OpeningBalance(ctx context.Context, dateBefore string) (dto.OpeningBalanceResponse, error) {
	balance, err := uc.cash.OpeningBalance(ctx, dateBefore)
	if err != nil {
		return dto.OpeningBalanceResponse{}, err
	}
	return dto.OpeningBalanceResponse{SaldoInicial: balance}, nil
}

// CashBalance saldo actual de caja.
func (uc *UseCase) CashBalance(ctx context.Context) (dto.CashBalanceResponse, error) {
	balance, err := uc.cash.BalanceTotal(ctx)
	if err != nil {
		return dto.CashBalanceResponse{}, err
	}
	return dto.CashBalanceResponse{Saldo: balance}, nil
}

// SalesRegister libro de ventas del rango con nombre de producto.
func (uc *UseCase) SalesRegister(ctx context.Context, start, end string) ([]dto.SaleRegisterRow, error) {
	r, err := period.DayRange(start, end, uc.loc)
	if err != nil {
		return nil, err
	}
	rows, err := uc.sales.List(ctx, r)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleRegisterRow, 0, len(rows))
	for _, row := range rows {
		s := row.Sale
		out = append(out, dto.SaleRegisterRow{
			ID:                 s.ID,
			Fecha:              uc.formatDate(s.Date),
			ProductoID:         s.ProductID,
			Cantidad:           s.Quantity,
			PrecioUnitarioNeto: s.UnitPriceNet,
			MontoNetoTotal:     s.NetTotal,
			MontoIVA:           s.VATAmount,
			MontoTotalConIVA:   s.GrossTotal,
			MetodoPago:         s.PaymentMethod,
			NDocumento:         s.DocumentNumber,
			NombreProducto:     row.ProductName,
		})
	}
	return out, nil
}

// PurchaseRegister libro de compras del rango con nombre de producto si aplica.
func (uc *UseCase) PurchaseRegister(ctx context.Context, start, end string) ([]dto.PurchaseRegisterRow, error) {
	r, err := period.DayRange(start, end, uc.loc)
	if err != nil {
		return nil, err
	}
	rows, err := uc.purchases.List(ctx, r)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseRegisterRow, 0, len(rows))
	for _, row := range rows {
		p := row.Purchase
		out = append(out, dto.PurchaseRegisterRow{
			ID:               p.ID,
			Fecha:            uc.formatDate(p.Date),
			ProductoID:       p.ProductID,
			Cantidad:         p.Quantity,
			Concepto:         p.Description,
			MontoNeto:        p.NetAmount,
			MontoIVA:         p.VATAmount,
			MontoTotalConIVA: p.GrossTotal,
			NDocumento:       p.DocumentNumber,
			NombreProducto:   row.ProductName,
		})
	}
	return out, nil
}

// MonthSales ventas netas del mes calendario en curso.
func (uc *UseCase) MonthSales(ctx context.Context) (dto.MonthSalesResponse, error) {
	months := period.TrailingMonths(uc.now().In(uc.loc), 1)
	total, err := uc.sales.SumNetTotal(ctx, months[0].Start, months[0].End)
	if err != nil {
		return dto.MonthSalesResponse{}, err
	}
	return dto.MonthSalesResponse{TotalVentasNetas: total}, nil
}

// MonthlyCashFlow ingresos y egresos de los últimos 6 meses, el actual al final.
func (uc *UseCase) MonthlyCashFlow(ctx context.Context) ([]dto.MonthlyCashFlowItem, error) {
	return uc.cash.MonthlyRollup(ctx, cashFlowMonths)
}

// CashBookReport libro de caja con saldo inicial y saldo acumulado por línea.
func (uc *UseCase) CashBookReport(ctx context.Context, start, end string) (dto.CashBookReport, error) {
	opening, err := uc.cash.OpeningBalance(ctx, start)
	if err != nil {
		return dto.CashBookReport{}, err
	}
	movements, err := uc.cash.ListInRange(ctx, start, end)
	if err != nil {
		return dto.CashBookReport{}, err
	}
	report := dto.CashBookReport{
		From:           start,
		To:             end,
		OpeningBalance: opening,
		Lines:          make([]dto.CashBookLine, 0, len(movements)),
	}
	running := opening
	for _, m := range movements {
		running = running.Add(m.SignedAmount())
		report.Lines = append(report.Lines, dto.CashBookLine{
			Movement:       uc.toCashMovementResponse(m),
			RunningBalance: running,
		})
	}
	report.ClosingBalance = running
	return report, nil
}

func (uc *UseCase) toCashMovementResponse(m *entity.CashMovement) dto.CashMovementResponse {
	return dto.CashMovementResponse{
		ID:                    m.ID,
		Fecha:                 uc.formatDate(m.Date),
		Tipo:                  string(m.Direction),
		Concepto:              m.Description,
		MontoTotal:            m.Amount,
		MedioPago:             m.PaymentMethod,
		AfectaImpuestos:       m.AffectsTaxes,
		DocTributarioAsociado: m.DocumentRef,
	}
}

func (uc *UseCase) formatDate(t time.Time) string {
	return t.In(uc.loc).Format(period.TimestampLayout)
}
