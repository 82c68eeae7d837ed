package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigma-caixa-api/internal/application/apptest"
	"github.com/jhoicas/sigma-caixa-api/internal/application/dto"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/entity"
)

type fakeGenerator struct {
	report *dto.CashReportResponse
	at     time.Time
	err    error
}

func (g *fakeGenerator) GenerateStatementPDF(_ context.Context, report *dto.CashReportResponse, at time.Time) ([]byte, error) {
	g.report, g.at = report, at
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3"), nil
}

// clock devuelve instantes crecientes de un minuto.
func clock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Minute)
	}
}

func newProduct(id, name string) *entity.Product {
	now := time.Now()
	return &entity.Product{ID: id, Name: name, Price: decimal.NewFromInt(1), CreatedAt: now, UpdatedAt: now}
}

func seed(t *testing.T) (*CashUseCase, *apptest.Store, []string) {
	t.Helper()
	store := apptest.NewStore()
	ctx := context.Background()

	uc := NewCashUseCase(store.Movements(), store)
	uc.now = clock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))

	productID := "6f1c8a1e-0000-4000-8000-000000000001"
	require.NoError(t, store.Products().Create(ctx, newProduct(productID, "Widget")))

	var ids []string
	for _, kind := range []string{"entrada", "saida", "entrada"} {
		k, q, amount := kind, 1, decimal.NewFromInt(10)
		m, err := uc.Create(ctx, dto.CreateCashMovementRequest{ProductID: &productID, Quantity: &q, Kind: &k, Amount: &amount})
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}
	return uc, store, ids
}

func TestList_OrdenMasRecientePrimero(t *testing.T) {
	uc, _, ids := seed(t)

	report, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Movements, 3)
	assert.Equal(t, ids[2], report.Movements[0].ID)
	assert.Equal(t, ids[1], report.Movements[1].ID)
	assert.Equal(t, ids[0], report.Movements[2].ID)
}

func TestStatement_UsaReporteActual(t *testing.T) {
	uc, _, _ := seed(t)
	gen := &fakeGenerator{}
	st := NewStatementUseCase(uc, gen)

	doc, err := st.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(doc))
	require.NotNil(t, gen.report)
	assert.Len(t, gen.report.Movements, 3)
	assert.True(t, gen.report.Balance.Equal(decimal.NewFromInt(10)))
	assert.False(t, gen.at.IsZero())
}

func TestStatement_ErrorDelGenerador(t *testing.T) {
	uc, _, _ := seed(t)
	boom := errors.New("boom")
	st := NewStatementUseCase(uc, &fakeGenerator{err: boom})

	_, err := st.Generate(context.Background())
	assert.ErrorIs(t, err, boom)
}
