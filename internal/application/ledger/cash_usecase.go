package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sigma-caixa-api/internal/application/dto"
	"github.com/jhoicas/sigma-caixa-api/internal/domain"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/entity"
	domainledger "github.com/jhoicas/sigma-caixa-api/internal/domain/ledger"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/repository"
)

// CashUseCase casos de uso del libro de caja (movimentações).
type CashUseCase struct {
	movRepo  repository.CashMovementRepository
	txRunner TxRunner
	now      func() time.Time
}

// NewCashUseCase construye el caso de uso.
func NewCashUseCase(movRepo repository.CashMovementRepository, txRunner TxRunner) *CashUseCase {
	return &CashUseCase{movRepo: movRepo, txRunner: txRunner, now: time.Now}
}

// Create registra un movimiento. El producto debe existir (ErrProductNotFound) y el tipo ser
// entrada o saida (ErrInvalidKind). produto_nome se copia del producto en este instante.
func (uc *CashUseCase) Create(ctx context.Context, in dto.CreateCashMovementRequest) (*dto.CashMovementResponse, error) {
	if in.ProductID == nil || in.Quantity == nil || in.Kind == nil || in.Amount == nil {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMoney(*in.Amount) {
		return nil, domain.ErrInvalidAmount
	}
	var movement *entity.CashMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.CashMovementRepository,
	) error {
		product, err := findProduct(ctx, productRepo, *in.ProductID)
		if err != nil {
			return err
		}
		if !entity.ValidCashKind(*in.Kind) {
			return domain.ErrInvalidKind
		}
		m := &entity.CashMovement{
			ID:       uuid.New().String(),
			Quantity: *in.Quantity,
			Kind:     *in.Kind,
			Amount:   *in.Amount,
			Date:     uc.now().UTC().Truncate(time.Microsecond),
		}
		m.SnapshotProduct(product)
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCashMovementResponse(movement), nil
}

// List devuelve todos los movimientos (más reciente primero) con los totales recalculados
// sobre el libro completo en cada llamada.
func (uc *CashUseCase) List(ctx context.Context) (*dto.CashReportResponse, error) {
	list, err := uc.movRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	totals := domainledger.ComputeTotals(list)
	items := make([]dto.CashMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toCashMovementResponse(m))
	}
	return &dto.CashReportResponse{
		Movements:    items,
		TotalEntries: totals.Entries,
		TotalExits:   totals.Exits,
		Balance:      totals.Balance,
	}, nil
}

// GetByID obtiene un movimiento. ErrNotFound si no existe.
func (uc *CashUseCase) GetByID(ctx context.Context, id string) (*dto.CashMovementResponse, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toCashMovementResponse(m), nil
}

// Update aplica una actualización parcial. Un produto_id no vacío se revalida y vuelve a copiar
// produto_nome desde ese producto (reemplaza la copia anterior). Un produto_id vacío ("")
// desvincula el movimiento conservando el nombre.
func (uc *CashUseCase) Update(ctx context.Context, id string, in dto.UpdateCashMovementRequest) (*dto.CashMovementResponse, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	if in.Amount != nil && !entity.ValidMoney(*in.Amount) {
		return nil, domain.ErrInvalidAmount
	}
	var movement *entity.CashMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.CashMovementRepository,
	) error {
		m, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if in.ProductID != nil {
			if *in.ProductID == "" {
				m.Detach("")
			} else {
				product, err := findProduct(ctx, productRepo, *in.ProductID)
				if err != nil {
					return err
				}
				m.SnapshotProduct(product)
			}
		}
		if in.Kind != nil {
			if !entity.ValidCashKind(*in.Kind) {
				return domain.ErrInvalidKind
			}
			m.Kind = *in.Kind
		}
		if in.Quantity != nil {
			m.Quantity = *in.Quantity
		}
		if in.Amount != nil {
			m.Amount = *in.Amount
		}
		if err := movRepo.Update(ctx, m); err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCashMovementResponse(movement), nil
}

// Delete elimina el movimiento (sin efectos en cascada).
func (uc *CashUseCase) Delete(ctx context.Context, id string) error {
	if !entity.ValidID(id) {
		return domain.ErrNotFound
	}
	deleted, err := uc.movRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func findProduct(ctx context.Context, repo repository.ProductRepository, id string) (*entity.Product, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrProductNotFound
	}
	product, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func toCashMovementResponse(m *entity.CashMovement) *dto.CashMovementResponse {
	if m == nil {
		return nil
	}
	return &dto.CashMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		Kind:        m.Kind,
		Amount:      m.Amount,
		Date:        m.Date,
	}
}
