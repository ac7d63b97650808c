package catalog

import "fmt"

// Product identifies a single product in the bank's recommendation catalog.
type Product string

// The product catalog. The declaration order is the canonical catalog
// order and is used as the stable secondary sort key when benefit scores
// tie exactly.
const (
	TravelCard           Product = "travel_card"
	PremiumCard          Product = "premium_card"
	CreditCard           Product = "credit_card"
	FXExchange           Product = "fx_exchange"
	CashLoan             Product = "cash_loan"
	MulticurrencyDeposit Product = "multicurrency_deposit"
	SavingsDeposit       Product = "savings_deposit"
	AccumulationDeposit  Product = "accumulation_deposit"
	Investments          Product = "investments"
	GoldBars             Product = "gold_bars"
)

// all holds the catalog in canonical order.
var all = []Product{
	TravelCard,
	PremiumCard,
	CreditCard,
	FXExchange,
	CashLoan,
	MulticurrencyDeposit,
	SavingsDeposit,
	AccumulationDeposit,
	Investments,
	GoldBars,
}

// displayNames maps products to the human-readable names used in
// notifications and exports.
var displayNames = map[Product]string{
	TravelCard:           "Travel Card",
	PremiumCard:          "Premium Card",
	CreditCard:           "Credit Card",
	FXExchange:           "Currency Exchange",
	CashLoan:             "Cash Loan",
	MulticurrencyDeposit: "Multicurrency Deposit",
	SavingsDeposit:       "Savings Deposit",
	AccumulationDeposit:  "Accumulation Deposit",
	Investments:          "Investments",
	GoldBars:             "Gold Bars",
}

// All returns the catalog in canonical order.
// The returned slice is a copy and safe to modify.
func All() []Product {
	out := make([]Product, len(all))
	copy(out, all)
	return out
}

// Size returns the number of products in the catalog.
func Size() int {
	return len(all)
}

// Contains reports whether p is a member of the catalog.
func Contains(p Product) bool {
	_, ok := displayNames[p]
	return ok
}

// Parse converts a string identifier into a Product.
// Returns an error if the identifier is not a catalog member.
func Parse(s string) (Product, error) {
	p := Product(s)
	if !Contains(p) {
		return "", fmt.Errorf("unknown product %q", s)
	}
	return p, nil
}

// DisplayName returns the human-readable name for a product.
// Unknown products fall back to their raw identifier.
func (p Product) DisplayName() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return string(p)
}

// Order returns the product's position in canonical catalog order.
// Products not in the catalog sort after all catalog members.
func (p Product) Order() int {
	for i, member := range all {
		if member == p {
			return i
		}
	}
	return len(all)
}
