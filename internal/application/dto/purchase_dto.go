package dto

import (
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest entrada de add_compra. Producto y cantidad solo para reposición de stock.
type CreatePurchaseRequest struct {
	ProductoID       *string          `json:"producto_id"`
	Cantidad         *int             `json:"cantidad"`
	Concepto         string           `json:"concepto"`
	MontoTotalConIVA *decimal.Decimal `json:"monto_total_con_iva"`
	NDocumento       string           `json:"n_documento"`
}

// PurchaseRegisterRow fila del registro de compras (RCV).
type PurchaseRegisterRow struct {
	ID               string          `json:"id"`
	Fecha            string          `json:"fecha"`
	ProductoID       *string         `json:"producto_id"`
	Cantidad         *int            `json:"cantidad"`
	Concepto         string          `json:"concepto"`
	MontoNeto        decimal.Decimal `json:"monto_neto"`
	MontoIVA         decimal.Decimal `json:"monto_iva"`
	MontoTotalConIVA decimal.Decimal `json:"monto_total_con_iva"`
	NDocumento       string          `json:"n_documento"`
	NombreProducto   *string         `json:"nombre_producto"`
}
