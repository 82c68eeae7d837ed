// Package pdf genera el extracto del libro de caja en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del sistema  │  Fecha de emisión            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Entradas / Saídas / Saldo atual                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Data | Produto | Qtd | Tipo | Valor                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/sigma-caixa-api/internal/application/dto"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StatementGenerator implementa ledger.StatementGenerator usando Maroto v2.
type StatementGenerator struct {
	title    string
	location *time.Location
	printer  *message.Printer
}

// NewStatementGenerator construye el generador. loc es la zona horaria de las fechas impresas (nil = UTC).
func NewStatementGenerator(title string, loc *time.Location) *StatementGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &StatementGenerator{
		title:    title,
		location: loc,
		printer:  message.NewPrinter(language.BrazilianPortuguese),
	}
}

// GenerateStatementPDF genera el extracto y devuelve sus bytes.
func (g *StatementGenerator) GenerateStatementPDF(_ context.Context, report *dto.CashReportResponse, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extrato de caixa", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Nenhuma movimentação registrada.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	m.AddRows(g.movementRows(report.Movements)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar extracto: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *StatementGenerator) headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Extrato de caixa", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Emitido em", props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 1}),
			text.New(generatedAt.In(g.location).Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

func (g *StatementGenerator) summaryRow(report *dto.CashReportResponse) core.Row {
	box := func(label string, value decimal.Decimal, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(g.formatMoney(value), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: c, Top: 6}),
		)
	}
	balanceColor := colorGreen
	if report.Balance.IsNegative() {
		balanceColor = colorRed
	}
	return row.New(14).Add(
		box("Total de entradas", report.TotalEntries, colorGreen),
		box("Total de saídas", report.TotalExits, colorRed),
		box("Saldo atual", report.Balance, balanceColor),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data", 3, align.Left),
		h("Produto", 4, align.Left),
		h("Qtd.", 1, align.Center),
		h("Tipo", 1, align.Center),
		h("Valor", 3, align.Right),
	)
}

func (g *StatementGenerator) movementRows(movements []dto.CashMovementResponse) []core.Row {
	rows := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		kind, c := "Entrada", colorGreen
		if mv.Kind == entity.CashKindExit {
			kind, c = "Saída", colorRed
		}
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(mv.Date.In(g.location).Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(mv.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(g.printer.Sprintf("%d", mv.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(kind, props.Text{Size: 8, Align: align.Center, Top: 1, Color: c})),
			col.New(3).Add(text.New(g.formatMoney(mv.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea en reales con separadores pt-BR. Ej: 1234.5 → "R$ 1.234,50".
func (g *StatementGenerator) formatMoney(d decimal.Decimal) string {
	return g.printer.Sprintf("R$ %.2f", d.Round(2).InexactFloat64())
}
