package domain

// Supported currency codes. Monetary amounts are integer cents of the
// booking's currency.
const (
	CurrencyUSD = "USD"
)
