package reporting

import (
	"context"
	"fmt"
)

// Export arma el reporte y lo entrega al renderer.
type Export struct {
	reports  *UseCase
	renderer Renderer
}

// NewExport construye el exportador.
func NewExport(reports *UseCase, renderer Renderer) *Export {
	return &Export{reports: reports, renderer: renderer}
}

// CashBookXLSX libro de caja en Excel.
func (e *Export) CashBookXLSX(ctx context.Context, start, end string) ([]byte, error) {
	report, err := e.reports.CashBookReport(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out, err := e.renderer.CashBookXLSX(report)
	if err != nil {
		return nil, fmt.Errorf("exportar libro de caja xlsx: %w", err)
	}
	return out, nil
}

// CashBookPDF libro de caja en PDF.
func (e *Export) CashBookPDF(ctx context.Context, start, end string) ([]byte, error) {
	report, err := e.reports.CashBookReport(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out, err := e.renderer.CashBookPDF(report)
	if err != nil {
		return nil, fmt.Errorf("exportar libro de caja pdf: %w", err)
	}
	return out, nil
}

// SalesRegisterXLSX registro de ventas en Excel.
func (e *Export) SalesRegisterXLSX(ctx context.Context, start, end string) ([]byte, error) {
	rows, err := e.reports.SalesRegister(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out, err := e.renderer.SalesRegisterXLSX(rows)
	if err != nil {
		return nil, fmt.Errorf("exportar rcv ventas: %w", err)
	}
	return out, nil
}

// PurchaseRegisterXLSX registro de compras en Excel.
func (e *Export) PurchaseRegisterXLSX(ctx context.Context, start, end string) ([]byte, error) {
	rows, err := e.reports.PurchaseRegister(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out, err := e.renderer.PurchaseRegisterXLSX(rows)
	if err != nil {
		return nil, fmt.Errorf("exportar rcv compras: %w", err)
	}
	return out, nil
}
