package dto

import (
	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada de add_venta. Los montos llegan con IVA incluido.
type CreateSaleRequest struct {
	ProductoID           string           `json:"producto_id"`
	Cantidad             *int             `json:"cantidad"`
	PrecioUnitarioConIVA *decimal.Decimal `json:"precio_unitario_con_iva"`
	MontoTotalConIVA     *decimal.Decimal `json:"monto_total_con_iva"`
	MetodoPago           string           `json:"metodo_pago"`
	NDocumento           string           `json:"n_documento"`
}

// SaleRegisterRow fila del registro de ventas (RCV).
type SaleRegisterRow struct {
	ID                 string          `json:"id"`
	Fecha              string          `json:"fecha"`
	ProductoID         *string         `json:"producto_id"`
	Cantidad           int             `json:"cantidad"`
	PrecioUnitarioNeto decimal.Decimal `json:"precio_unitario_neto"`
	MontoNetoTotal     decimal.Decimal `json:"monto_neto_total"`
	MontoIVA           decimal.Decimal `json:"monto_iva"`
	MontoTotalConIVA   decimal.Decimal `json:"monto_total_con_iva"`
	MetodoPago         string          `json:"metodo_pago"`
	NDocumento         string          `json:"n_documento"`
	NombreProducto     *string         `json:"nombre_producto"`
}

// MonthSalesResponse salida de get_total_ventas_mes.
type MonthSalesResponse struct {
	TotalVentasNetas decimal.Decimal `json:"total_ventas_netas"`
}
