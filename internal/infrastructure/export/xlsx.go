package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
)

// Nombres de hoja de cada planilla.
const (
	SheetCashBook  = "Libro de Caja"
	SheetSales     = "Registro Ventas"
	SheetPurchases = "Registro Compras"
)

// numFmtThousands es el formato integrado "#,##0.00".
const numFmtThousands = 4

// sheet envuelve un excelize.File de una sola hoja con encabezado en negrita.
type sheet struct {
	f    *excelize.File
	name string
	row  int
}

func newSheet(name string, header []interface{}, moneyCols string) (*sheet, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	s := &sheet{f: f, name: name, row: 1}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if moneyCols != "" {
		if err := f.SetColStyle(name, moneyCols, money); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("xlsx: estilo columnas: %w", err)
		}
	}
	if err := s.add(header); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	_ = f.SetColWidth(name, "A", "A", 20)
	_ = f.SetColWidth(name, "B", "D", 24)
	return s, nil
}

func (s *sheet) add(values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := s.f.SetSheetRow(s.name, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", s.row, err)
	}
	s.row++
	return nil
}

func (s *sheet) bytes() ([]byte, error) {
	defer func() { _ = s.f.Close() }()
	buf := &bytes.Buffer{}
	if err := s.f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// CashBookXLSX libro de caja con saldo inicial, columnas de ingreso/egreso y saldo acumulado.
func (r *Renderer) CashBookXLSX(report dto.CashBookReport) ([]byte, error) {
	s, err := newSheet(SheetCashBook, []interface{}{
		"Fecha", "Concepto", "Medio de pago", "Doc. tributario", "Afecta impuestos", "Ingreso", "Egreso", "Saldo",
	}, "F:H")
	if err != nil {
		return nil, err
	}

	if err := s.add([]interface{}{report.From, "Saldo inicial", "", "", "", nil, nil, cell(report.OpeningBalance)}); err != nil {
		return nil, err
	}
	for _, l := range report.Lines {
		m := l.Movement
		var in, out interface{}
		if m.Tipo == string(entity.CashInflow) {
			in = cell(m.MontoTotal)
		} else {
			out = cell(m.MontoTotal)
		}
		if err := s.add([]interface{}{
			m.Fecha, m.Concepto, m.MedioPago, deref(m.DocTributarioAsociado), siNo(m.AfectaImpuestos),
			in, out, cell(l.RunningBalance),
		}); err != nil {
			return nil, err
		}
	}
	if err := s.add([]interface{}{report.To, "Saldo final", "", "", "", nil, nil, cell(report.ClosingBalance)}); err != nil {
		return nil, err
	}
	return s.bytes()
}

// SalesRegisterXLSX registro de ventas con el desglose neto/IVA.
func (r *Renderer) SalesRegisterXLSX(rows []dto.SaleRegisterRow) ([]byte, error) {
	s, err := newSheet(SheetSales, []interface{}{
		"Fecha", "N° Documento", "Producto", "Método de pago", "Cantidad", "Precio unitario neto", "Neto", "IVA", "Total",
	}, "F:I")
	if err != nil {
		return nil, err
	}
	for _, v := range rows {
		if err := s.add([]interface{}{
			v.Fecha, v.NDocumento, deref(v.NombreProducto), v.MetodoPago, v.Cantidad,
			cell(v.PrecioUnitarioNeto), cell(v.MontoNetoTotal), cell(v.MontoIVA), cell(v.MontoTotalConIVA),
		}); err != nil {
			return nil, err
		}
	}
	return s.bytes()
}

// PurchaseRegisterXLSX registro de compras y gastos.
func (r *Renderer) PurchaseRegisterXLSX(rows []dto.PurchaseRegisterRow) ([]byte, error) {
	s, err := newSheet(SheetPurchases, []interface{}{
		"Fecha", "N° Documento", "Concepto", "Producto", "Cantidad", "Neto", "IVA", "Total",
	}, "F:H")
	if err != nil {
		return nil, err
	}
	for _, c := range rows {
		var qty interface{}
		if c.Cantidad != nil {
			qty = *c.Cantidad
		}
		if err := s.add([]interface{}{
			c.Fecha, c.NDocumento, c.Concepto, deref(c.NombreProducto), qty,
			cell(c.MontoNeto), cell(c.MontoIVA), cell(c.MontoTotalConIVA),
		}); err != nil {
			return nil, err
		}
	}
	return s.bytes()
}

func siNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
