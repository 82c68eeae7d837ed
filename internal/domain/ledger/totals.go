package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sigma-caixa-api/internal/domain/entity"
)

// Totals agregados del libro de caja.
type Totals struct {
	Entries decimal.Decimal
	Exits   decimal.Decimal
	Balance decimal.Decimal
}

// ComputeTotals suma los montos por tipo sobre todos los movimientos recibidos (servicio de dominio).
// Saldo = TotalEntradas - TotalSalidas. Tipos desconocidos no suman en ningún lado.
func ComputeTotals(movements []*entity.CashMovement) Totals {
	entries, exits := decimal.Zero, decimal.Zero
	for _, m := range movements {
		if m == nil {
			continue
		}
		switch m.Kind {
		case entity.CashKindEntry:
			entries = entries.Add(m.Amount)
		case entity.CashKindExit:
			exits = exits.Add(m.Amount)
		}
	}
	return Totals{Entries: entries, Exits: exits, Balance: entries.Sub(exits)}
}
