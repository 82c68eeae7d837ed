package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigma-caixa-api/internal/application/dto"
)

func TestGenerateStatementPDF(t *testing.T) {
	pid := "6f1c8a1e-0000-4000-8000-000000000001"
	report := &dto.CashReportResponse{
		Movements: []dto.CashMovementResponse{
			{ID: "b", ProductID: &pid, ProductName: "Widget", Quantity: 1, Kind: "saida", Amount: decimal.RequireFromString("30.5"), Date: time.Now()},
			{ID: "a", ProductName: "Produto removido", Quantity: 2, Kind: "entrada", Amount: decimal.NewFromInt(100), Date: time.Now().Add(-time.Hour)},
		},
		TotalEntries: decimal.NewFromInt(100),
		TotalExits:   decimal.RequireFromString("30.5"),
		Balance:      decimal.RequireFromString("69.5"),
	}

	g := NewStatementGenerator("SIGMA", nil)
	doc, err := g.GenerateStatementPDF(context.Background(), report, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGenerateStatementPDF_SinMovimientos(t *testing.T) {
	g := NewStatementGenerator("SIGMA", time.UTC)
	doc, err := g.GenerateStatementPDF(context.Background(), &dto.CashReportResponse{}, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestFormatMoney(t *testing.T) {
	g := NewStatementGenerator("SIGMA", nil)
	assert.Equal(t, "R$ 1.234,50", g.formatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "R$ 0,00", g.formatMoney(decimal.Zero))
}
