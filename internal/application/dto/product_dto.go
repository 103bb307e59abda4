package dto

import (
	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada de add_producto. Precios netos (sin IVA).
type CreateProductRequest struct {
	Nombre            string           `json:"nombre"`
	CostoUnitarioNeto *decimal.Decimal `json:"costo_unitario_neto"`
	PrecioVentaNeto   *decimal.Decimal `json:"precio_venta_neto"`
	Stock             int              `json:"stock"`
}

// ProductCatalogItem producto con precios brutos derivados (get_products).
type ProductCatalogItem struct {
	ID                  string          `json:"id"`
	Nombre              string          `json:"nombre"`
	CostoUnitarioConIVA decimal.Decimal `json:"costo_unitario_con_iva"`
	PrecioVentaConIVA   decimal.Decimal `json:"precio_venta_con_iva"`
	Stock               int             `json:"stock"`
}
