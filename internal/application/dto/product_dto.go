package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string           `json:"nome" validate:"required,min=1,max=200"`
	Description *string          `json:"descricao" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"valor" validate:"required"`
}

// UpdateProductRequest entrada para actualizar un producto; solo cambian los campos enviados.
type UpdateProductRequest struct {
	Name        *string          `json:"nome" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"descricao" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"valor"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"nome"`
	Description *string         `json:"descricao"`
	Price       decimal.Decimal `json:"valor"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DeleteProductResponse resultado del borrado: cuántos movimientos de caja quedaron desvinculados.
type DeleteProductResponse struct {
	Message            string `json:"message"`
	PreservedMovements int    `json:"movimentacoes_preservadas"`
}
