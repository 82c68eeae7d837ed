package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
type Product struct {
	ID          string
	Name        string
	Description *string // opcional
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
