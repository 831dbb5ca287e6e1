package domain

import "github.com/shopspring/decimal"

// NormalizePrice validates and rounds a price to two-digit currency
// precision. Negative prices are rejected; zero is a valid price.
// Rounding is half-up (6.555 -> 6.56), done in decimal space so float
// noise like 6.555*100 = 655.4999... cannot flip a tie the wrong way.
func NormalizePrice(price float64) (float64, error) {
	if price < 0 {
		return 0, ErrInvalidPrice
	}
	normalized, _ := decimal.NewFromFloat(price).Round(2).Float64()
	return normalized, nil
}
