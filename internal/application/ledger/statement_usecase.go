package ledger

import (
	"context"
	"fmt"
	"time"
)

// StatementUseCase exporta el libro de caja como PDF.
type StatementUseCase struct {
	cash      *CashUseCase
	generator StatementGenerator
	now       func() time.Time
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(cash *CashUseCase, generator StatementGenerator) *StatementUseCase {
	return &StatementUseCase{cash: cash, generator: generator, now: time.Now}
}

// Generate lee el reporte actual (mismos totales que List) y lo renderiza.
func (uc *StatementUseCase) Generate(ctx context.Context) ([]byte, error) {
	report, err := uc.cash.List(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := uc.generator.GenerateStatementPDF(ctx, report, uc.now())
	if err != nil {
		return nil, fmt.Errorf("generar extracto: %w", err)
	}
	return doc, nil
}
