package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
)

// Dashboard construye el resumen de la pantalla principal.
//
// Cuatro consultas en paralelo:
//  1. saldo de caja
//  2. ventas netas del mes
//  3. flujo de caja de 6 meses
//  4. catálogo (para contar productos con bajo stock)
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardSummary, error) {
	type amountResult struct {
		value decimal.Decimal
		err   error
	}
	type flowResult struct {
		items []dto.MonthlyCashFlowItem
		err   error
	}
	type lowStockResult struct {
		count int
		err   error
	}

	balanceCh := make(chan amountResult, 1)
	salesCh := make(chan amountResult, 1)
	flowCh := make(chan flowResult, 1)
	stockCh := make(chan lowStockResult, 1)

	go func() {
		v, err := uc.cash.BalanceTotal(ctx)
		balanceCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.MonthSales(ctx)
		salesCh <- amountResult{v.TotalVentasNetas, err}
	}()
	go func() {
		items, err := uc.MonthlyCashFlow(ctx)
		flowCh <- flowResult{items, err}
	}()
	go func() {
		products, err := uc.products.List(ctx)
		if err != nil {
			stockCh <- lowStockResult{err: err}
			return
		}
		count := 0
		for _, p := range products {
			if p.Stock <= lowStockThreshold {
				count++
			}
		}
		stockCh <- lowStockResult{count: count}
	}()

	balance := <-balanceCh
	sales := <-salesCh
	flow := <-flowCh
	stock := <-stockCh

	if balance.err != nil {
		return nil, fmt.Errorf("dashboard: saldo de caja: %w", balance.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", sales.err)
	}
	if flow.err != nil {
		return nil, fmt.Errorf("dashboard: flujo mensual: %w", flow.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: bajo stock: %w", stock.err)
	}

	return &dto.DashboardSummary{
		Saldo:              balance.value,
		TotalVentasNetas:   sales.value,
		FlujoMensual:       flow.items,
		ProductosBajoStock: stock.count,
		Periodo:            monthLabel(uc.now().In(uc.loc)),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
