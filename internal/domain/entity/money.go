package entity

import "github.com/shopspring/decimal"

// Límites de las columnas monetarias NUMERIC(14,2).
const MoneyScale = 2

var maxMoney = decimal.New(1, 12)

// ValidMoney indica si d cabe en NUMERIC(14,2) sin redondeo: como mucho dos
// decimales y valor absoluto menor que 10^12.
func ValidMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale)) && d.Abs().LessThan(maxMoney)
}
