package order

import "github.com/shopspring/decimal"

// LinePrice 计算明细价格:单价×数量，精确计算不做舍入
func LinePrice(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Decimal{}, ErrInvalidQuantity
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}
