package dto

import (
	"github.com/shopspring/decimal"
)

// CreateCashMovementRequest entrada de add_movimiento_caja.
type CreateCashMovementRequest struct {
	Tipo                  string           `json:"tipo"`
	Concepto              string           `json:"concepto"`
	MontoTotal            *decimal.Decimal `json:"monto_total"`
	MedioPago             string           `json:"medio_pago"`
	AfectaImpuestos       Flag             `json:"afecta_impuestos"`
	DocTributarioAsociado *string          `json:"doc_tributario_asociado"`
}

// CashMovementResponse fila del libro de caja.
type CashMovementResponse struct {
	ID                    string          `json:"id"`
	Fecha                 string          `json:"fecha"`
	Tipo                  string          `json:"tipo"`
	Concepto              string          `json:"concepto"`
	MontoTotal            decimal.Decimal `json:"monto_total"`
	MedioPago             string          `json:"medio_pago"`
	AfectaImpuestos       bool            `json:"afecta_impuestos"`
	DocTributarioAsociado *string         `json:"doc_tributario_asociado"`
}

// OpeningBalanceResponse salida de get_libro_caja_saldo_inicial.
type OpeningBalanceResponse struct {
	SaldoInicial decimal.Decimal `json:"saldo_inicial"`
}

// CashBalanceResponse salida de get_saldo_caja.
type CashBalanceResponse struct {
	Saldo decimal.Decimal `json:"saldo"`
}

// MonthlyCashFlowItem un mes del flujo de caja.
type MonthlyCashFlowItem struct {
	Anio     int             `json:"anio"`
	Mes      int             `json:"mes"`
	Ingresos decimal.Decimal `json:"ingresos"`
	Egresos  decimal.Decimal `json:"egresos"`
}
