package portfolio

import (
	"financequest/src/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Preview is the cash effect of a trade before it is executed.
type Preview struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	FeeAmount     decimal.Decimal `json:"feeAmount"`
	Total         decimal.Decimal `json:"total"`
	BalanceChange decimal.Decimal `json:"balanceChange"`
}

// CalculateTransactionPreview prices a trade. feePercent is a percentage of the subtotal.
// Buy and cover pay subtotal plus fee; sell and short receive subtotal minus fee.
func CalculateTransactionPreview(typ model.TransactionType, quantity, price, feePercent decimal.Decimal) Preview {
	subtotal := quantity.Mul(price)
	fee := subtotal.Mul(feePercent).Div(hundred)

	p := Preview{Subtotal: subtotal, FeeAmount: fee}
	switch typ {
	case model.TransactionBuy, model.TransactionCover:
		p.Total = subtotal.Add(fee)
		p.BalanceChange = p.Total.Neg()
	default:
		p.Total = subtotal.Sub(fee)
		p.BalanceChange = p.Total
	}
	return p
}
