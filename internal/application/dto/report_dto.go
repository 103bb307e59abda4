package dto

import (
	"github.com/shopspring/decimal"
)

// DashboardSummary agrega los indicadores de la pantalla principal.
type DashboardSummary struct {
	Saldo              decimal.Decimal       `json:"saldo"`
	TotalVentasNetas   decimal.Decimal       `json:"total_ventas_netas"`
	FlujoMensual       []MonthlyCashFlowItem `json:"flujo_mensual"`
	ProductosBajoStock int                   `json:"productos_bajo_stock"`
	Periodo            string                `json:"periodo"`
}

// CashBookLine movimiento con saldo acumulado.
type CashBookLine struct {
	Movement       CashMovementResponse
	RunningBalance decimal.Decimal
}

// CashBookReport libro de caja listo para exportar.
type CashBookReport struct {
	From           string
	To             string
	OpeningBalance decimal.Decimal
	Lines          []CashBookLine
	ClosingBalance decimal.Decimal
}
