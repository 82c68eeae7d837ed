package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/sigma-caixa-api/internal/application/dto"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.CashMovementRepository,
	) error) error
}

// StatementGenerator genera el extracto de caja (PDF) a partir del reporte.
type StatementGenerator interface {
	GenerateStatementPDF(ctx context.Context, report *dto.CashReportResponse, generatedAt time.Time) ([]byte, error)
}
