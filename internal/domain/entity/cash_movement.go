package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CashDirection indica si el movimiento entra o sale de caja.
type CashDirection string

const (
	CashInflow  CashDirection = "ingreso"
	CashOutflow CashDirection = "egreso"
)

// ParseCashDirection valida el tipo recibido desde la API.
func ParseCashDirection(s string) (CashDirection, bool) {
	switch CashDirection(s) {
	case CashInflow, CashOutflow:
		return CashDirection(s), true
	default:
		return "", false
	}
}

// CashMovement es un asiento del libro de caja. Es inmutable una vez registrado.
type CashMovement struct {
	ID            string
	Date          time.Time
	Direction     CashDirection
	Description   string          // concepto
	Amount        decimal.Decimal // monto_total, magnitud sin signo
	PaymentMethod string
	AffectsTaxes  bool
	DocumentRef   *string // doc_tributario_asociado
}

// SignedAmount devuelve +monto para ingresos y -monto para egresos.
func (m *CashMovement) SignedAmount() decimal.Decimal {
	if m.Direction == CashOutflow {
		return m.Amount.Neg()
	}
	return m.Amount
}

// DocumentRefOf devuelve nil para un número de documento vacío.
func DocumentRefOf(doc string) *string {
	if strings.TrimSpace(doc) == "" {
		return nil
	}
	return &doc
}
