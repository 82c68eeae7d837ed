package repository

import (
	"context"

	"github.com/jhoicas/sigma-caixa-api/internal/domain/entity"
)

// CashMovementRepository define el puerto de persistencia para movimientos de caja.
// GetByID y GetForUpdate devuelven (nil, nil) si no existe.
type CashMovementRepository interface {
	Create(ctx context.Context, movement *entity.CashMovement) error
	GetByID(ctx context.Context, id string) (*entity.CashMovement, error)
	GetForUpdate(ctx context.Context, id string) (*entity.CashMovement, error)
	Update(ctx context.Context, movement *entity.CashMovement) error
	Delete(ctx context.Context, id string) (bool, error)
	// ListAll devuelve todos los movimientos, el más reciente primero.
	ListAll(ctx context.Context) ([]*entity.CashMovement, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.CashMovement, error)
}
