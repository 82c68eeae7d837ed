package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	CashKindEntry = "entrada"
	CashKindExit  = "saida"
)

// ValidCashKind indica si kind es uno de los tipos admitidos.
func ValidCashKind(kind string) bool {
	return kind == CashKindEntry || kind == CashKindExit
}

// CashMovement representa una entrada o salida de caja.
//
// ProductID es una referencia débil: queda en nil cuando el producto se elimina.
// ProductName es la copia del nombre tomada al crear (o al reasignar el producto)
// y sobrevive al borrado del producto.
type CashMovement struct {
	ID          string
	ProductID   *string
	ProductName string
	Quantity    int
	Kind        string
	Amount      decimal.Decimal
	Date        time.Time
}

// SnapshotProduct enlaza el movimiento al producto y copia su nombre actual.
func (m *CashMovement) SnapshotProduct(p *Product) {
	id := p.ID
	m.ProductID = &id
	m.ProductName = p.Name
}

// Detach suelta la referencia al producto conservando el nombre. Si el movimiento
// no tenía copia del nombre se usa fallbackName.
func (m *CashMovement) Detach(fallbackName string) {
	if m.ProductName == "" {
		m.ProductName = fallbackName
	}
	m.ProductID = nil
}
