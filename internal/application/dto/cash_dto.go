package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCashMovementRequest entrada para registrar un movimiento de caja.
type CreateCashMovementRequest struct {
	ProductID *string          `json:"produto_id" validate:"required"`
	Quantity  *int             `json:"quantidade" validate:"required"`
	Kind      *string          `json:"tipo" validate:"required"`
	Amount    *decimal.Decimal `json:"valor_total" validate:"required"`
}

// UpdateCashMovementRequest actualización parcial de un movimiento.
type UpdateCashMovementRequest struct {
	ProductID *string          `json:"produto_id"`
	Quantity  *int             `json:"quantidade"`
	Kind      *string          `json:"tipo"`
	Amount    *decimal.Decimal `json:"valor_total"`
}

// CashMovementResponse salida de un movimiento.
type CashMovementResponse struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"produto_id"`
	ProductName string          `json:"produto_nome"`
	Quantity    int             `json:"quantidade"`
	Kind        string          `json:"tipo"`
	Amount      decimal.Decimal `json:"valor_total"`
	Date        time.Time       `json:"data_movimentacao"`
}

// CashReportResponse movimientos (más reciente primero) con los totales del libro completo.
type CashReportResponse struct {
	Movements    []CashMovementResponse `json:"movimentacoes"`
	TotalEntries decimal.Decimal        `json:"total_entradas"`
	TotalExits   decimal.Decimal        `json:"total_saidas"`
	Balance      decimal.Decimal        `json:"saldo_atual"`
}
