package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sigma-caixa-api/internal/application/dto"
	"github.com/jhoicas/sigma-caixa-api/internal/domain"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/entity"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo de productos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner TxRunner
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, now: time.Now}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMoney(*in.Price) {
		return nil, domain.ErrInvalidAmount
	}
	now := uc.timestamp()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Price:       *in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación (offset/limit).
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update aplica una actualización parcial: solo cambian los campos presentes en in.
// Lee el producto con bloqueo dentro de la transacción; si se borró entre medias devuelve ErrNotFound.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	var name *string
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if trimmed == "" {
			return nil, domain.ErrInvalidInput
		}
		name = &trimmed
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if !entity.ValidMoney(*in.Price) {
			return nil, domain.ErrInvalidAmount
		}
	}

	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.CashMovementRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if name != nil {
			p.Name = *name
		}
		if in.Description != nil {
			p.Description = in.Description
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		p.UpdatedAt = uc.timestamp()
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Antes, dentro de la misma transacción, desvincula cada movimiento
// de caja que lo referencia: copia el nombre del producto si el movimiento no lo tenía y limpia
// produto_id. Devuelve cuántos movimientos quedaron preservados en el histórico.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (*dto.DeleteProductResponse, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	detached := 0
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.CashMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		movements, err := movRepo.ListByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		for _, m := range movements {
			m.Detach(product.Name)
			if err := movRepo.Update(ctx, m); err != nil {
				return err
			}
		}
		if err := productRepo.Delete(ctx, product.ID); err != nil {
			return err
		}
		detached = len(movements)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteProductResponse{
		Message:            deleteMessage(detached),
		PreservedMovements: detached,
	}, nil
}

func deleteMessage(detached int) string {
	if detached == 0 {
		return "Produto removido com sucesso"
	}
	return fmt.Sprintf("Produto removido com sucesso. %d movimentação(ões) de caixa foram preservadas no histórico.", detached)
}

// timestamp hora actual con la precisión de TIMESTAMPTZ (microsegundos).
func (uc *ProductUseCase) timestamp() time.Time {
	return uc.now().UTC().Truncate(time.Microsecond)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

