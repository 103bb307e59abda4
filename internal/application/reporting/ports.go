package reporting

import "github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"

// Renderer genera archivos descargables a partir de los reportes.
// Los montos llegan sin redondear; el renderer los presenta con 2 decimales.
type Renderer interface {
	CashBookXLSX(report dto.CashBookReport) ([]byte, error)
	CashBookPDF(report dto.CashBookReport) ([]byte, error)
	SalesRegisterXLSX(rows []dto.SaleRegisterRow) ([]byte, error)
	PurchaseRegisterXLSX(rows []dto.PurchaseRegisterRow) ([]byte, error)
}
