package export

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// CashBookPDF libro de caja en A4: encabezado, saldo inicial, movimientos con saldo acumulado y saldo final.
func (r *Renderer) CashBookPDF(report dto.CashBookReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Libro de Caja", true).
		WithAuthor(r.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(r.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(r.balanceRow("Saldo inicial", report.OpeningBalance))
	m.AddRows(tableHeaderRow())
	for _, l := range report.Lines {
		m.AddRows(r.lineRow(l))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(r.balanceRow("Saldo final", report.ClosingBalance))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *Renderer) headerRow(report dto.CashBookReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(r.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("LIBRO DE CAJA", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Desde: "+nonEmpty(report.From, "inicio"), props.Text{Size: 8, Align: align.Right, Top: 2}),
			text.New("Hasta: "+nonEmpty(report.To, "hoy"), props.Text{Size: 8, Align: align.Right, Top: 8}),
		),
	)
}

func (r *Renderer) balanceRow(label string, amount decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(9).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(r.Money(amount), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Fecha", 2, align.Left),
		h("Concepto", 4, align.Left),
		h("Ingreso", 2, align.Right),
		h("Egreso", 2, align.Right),
		h("Saldo", 2, align.Right),
	)
}

func (r *Renderer) lineRow(l dto.CashBookLine) core.Row {
	m := l.Movement
	in, out := "", ""
	if m.Tipo == string(entity.CashInflow) {
		in = r.Money(m.MontoTotal)
	} else {
		out = r.Money(m.MontoTotal)
	}
	small := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Size: 7.5, Align: a, Top: 1})
	}
	return row.New(6).Add(
		col.New(2).Add(small(m.Fecha, align.Left)),
		col.New(4).Add(small(m.Concepto, align.Left)),
		col.New(2).Add(small(in, align.Right)),
		col.New(2).Add(small(out, align.Right)),
		col.New(2).Add(small(r.Money(l.RunningBalance), align.Right)),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
