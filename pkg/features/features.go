package features

import "sort"

// Spend category identifiers. These match the category column of the
// transactions dataset after normalization.
const (
	CategoryTravel        = "travel"
	CategoryHotels        = "hotels"
	CategoryTaxi          = "taxi"
	CategoryRestaurants   = "restaurants"
	CategoryGroceries     = "groceries"
	CategoryGas           = "gas"
	CategoryClothing      = "clothing"
	CategoryEntertainment = "entertainment"
	CategoryCinema        = "cinema"
	CategoryCosmetics     = "cosmetics"
	CategoryJewelry       = "jewelry"
	CategoryFoodDelivery  = "food_delivery"
	CategoryStreaming     = "streaming"
	CategoryGaming        = "gaming"
)

// Transfer kind identifiers. These match the type column of the
// transfers dataset.
const (
	TransferSalaryIn      = "salary_in"
	TransferStipendIn     = "stipend_in"
	TransferFamilyIn      = "family_in"
	TransferCardIn        = "card_in"
	TransferP2POut        = "p2p_out"
	TransferCardOut       = "card_out"
	TransferATMWithdrawal = "atm_withdrawal"
	TransferUtilitiesOut  = "utilities_out"
	TransferLoanPayment   = "loan_payment_out"
	TransferInstallment   = "installment_payment_out"
	TransferFXBuy         = "fx_buy"
	TransferFXSell        = "fx_sell"
	TransferInvestOut     = "invest_out"
	TransferInvestIn      = "invest_in"
	TransferDepositTopup  = "deposit_topup_out"
	TransferGoldBuy       = "gold_buy_out"
	TransferGoldSell      = "gold_sell_in"
)

// inboundKinds lists transfer kinds that bring money into the account.
var inboundKinds = []string{
	TransferSalaryIn, TransferStipendIn, TransferFamilyIn,
	TransferCardIn, TransferInvestIn, TransferGoldSell,
}

// outboundKinds lists transfer kinds that take money out of the account.
var outboundKinds = []string{
	TransferP2POut, TransferCardOut, TransferATMWithdrawal,
	TransferUtilitiesOut, TransferLoanPayment, TransferInstallment,
	TransferInvestOut, TransferDepositTopup, TransferGoldBuy,
}

// ClientFeatures is the read-only feature vector for one client.
// All monetary values are 3-month aggregates in the base currency.
type ClientFeatures struct {
	// ClientCode is the unique client identifier from the source data.
	ClientCode int64

	// Name is the client's display name, used only for notifications.
	Name string

	// Status is the client status label from the source data (optional).
	Status string

	// Age is the client's age in years (optional, zero when unknown).
	Age int

	// City is the client's city (optional).
	City string

	// Balance is the average monthly balance in the base currency.
	Balance float64

	// Spend maps spend category to the 3-month total in base currency.
	Spend map[string]float64

	// Transfers maps transfer kind to the 3-month total in base currency.
	Transfers map[string]float64

	// Cluster is the behavioral cluster label assigned by segmentation.
	// Negative when no cluster has been assigned.
	Cluster int

	// Propensity maps product identifier to an optional model score in
	// [0, 1]. Absent entries are treated as neutral.
	Propensity map[string]float64
}

// SpendAmount returns the 3-month spend total for a category,
// or zero when the category is absent.
func (f *ClientFeatures) SpendAmount(category string) float64 {
	if f.Spend == nil {
		return 0
	}
	return f.Spend[category]
}

// TransferAmount returns the 3-month transfer total for a kind,
// or zero when the kind is absent.
func (f *ClientFeatures) TransferAmount(kind string) float64 {
	if f.Transfers == nil {
		return 0
	}
	return f.Transfers[kind]
}

// TotalSpend returns the 3-month spend total across all categories.
func (f *ClientFeatures) TotalSpend() float64 {
	var total float64
	for _, v := range f.Spend {
		total += v
	}
	return total
}

// TotalInflow returns the 3-month total of inbound transfers.
func (f *ClientFeatures) TotalInflow() float64 {
	var total float64
	for _, kind := range inboundKinds {
		total += f.TransferAmount(kind)
	}
	return total
}

// TotalOutflow returns the 3-month total of outbound transfers.
func (f *ClientFeatures) TotalOutflow() float64 {
	var total float64
	for _, kind := range outboundKinds {
		total += f.TransferAmount(kind)
	}
	return total
}

// FXVolume returns the combined 3-month currency exchange volume.
func (f *ClientFeatures) FXVolume() float64 {
	return f.TransferAmount(TransferFXBuy) + f.TransferAmount(TransferFXSell)
}

// CashDeficit returns how much outbound transfers exceed inbound ones,
// or zero when the client runs a surplus.
func (f *ClientFeatures) CashDeficit() float64 {
	deficit := f.TotalOutflow() - f.TotalInflow()
	if deficit < 0 {
		return 0
	}
	return deficit
}

// CashSurplus returns how much inbound transfers exceed outbound ones,
// or zero when the client runs a deficit.
func (f *ClientFeatures) CashSurplus() float64 {
	surplus := f.TotalInflow() - f.TotalOutflow()
	if surplus < 0 {
		return 0
	}
	return surplus
}

// TopSpendCategories returns up to n category names ordered by descending
// spend. Categories with zero spend are excluded. Equal amounts are ordered
// alphabetically for determinism.
func (f *ClientFeatures) TopSpendCategories(n int) []string {
	type entry struct {
		category string
		amount   float64
	}

	entries := make([]entry, 0, len(f.Spend))
	for category, amount := range f.Spend {
		if amount > 0 {
			entries = append(entries, entry{category, amount})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].amount != entries[j].amount {
			return entries[i].amount > entries[j].amount
		}
		return entries[i].category < entries[j].category
	})

	if len(entries) > n {
		entries = entries[:n]
	}

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.category
	}
	return out
}

// TopSpendTotal returns the combined 3-month spend of the client's top n
// categories.
func (f *ClientFeatures) TopSpendTotal(n int) float64 {
	var total float64
	for _, category := range f.TopSpendCategories(n) {
		total += f.SpendAmount(category)
	}
	return total
}

// PropensityScore returns the propensity model score for a product
// identifier, or the neutral value 0.5 when no score is present.
func (f *ClientFeatures) PropensityScore(product string) float64 {
	if f.Propensity == nil {
		return 0.5
	}
	if score, ok := f.Propensity[product]; ok {
		return score
	}
	return 0.5
}
