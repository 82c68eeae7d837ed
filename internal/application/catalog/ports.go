package catalog

import (
	"context"

	"github.com/jhoicas/sigma-caixa-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el borrado de un producto y la desvinculación de sus movimientos sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.CashMovementRepository,
	) error) error
}
