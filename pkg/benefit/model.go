package benefit

import (
	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/features"
)

// Categories counted as online services by the credit card formula.
var onlineCategories = []string{
	features.CategoryFoodDelivery,
	features.CategoryCinema,
	features.CategoryStreaming,
	features.CategoryGaming,
}

// Categories earning the premium cashback uplift.
var premiumCategories = []string{
	features.CategoryJewelry,
	features.CategoryCosmetics,
	features.CategoryRestaurants,
}

// Model scores catalog products for one client. It is stateless and safe
// for concurrent use.
type Model struct {
	cfg config.BenefitConfig
}

// NewModel returns a model using the given benefit parameters.
func NewModel(cfg config.BenefitConfig) *Model {
	return &Model{cfg: cfg}
}

// Score computes the expected monthly benefit of every catalog product
// for the client. Every entry is at least the product's configured
// floor, and the whole map is divided by the scale factor.
func (m *Model) Score(f *features.ClientFeatures) Map {
	scores := Map{
		catalog.TravelCard:           m.travelCard(f),
		catalog.PremiumCard:          m.premiumCard(f),
		catalog.CreditCard:           m.creditCard(f),
		catalog.FXExchange:           m.fxExchange(f),
		catalog.CashLoan:             m.cashLoan(f),
		catalog.MulticurrencyDeposit: m.multicurrencyDeposit(f),
		catalog.SavingsDeposit:       m.savingsDeposit(f),
		catalog.AccumulationDeposit:  m.accumulationDeposit(f),
		catalog.Investments:          m.investments(f),
		catalog.GoldBars:             m.goldBars(f),
	}
	for p, s := range scores {
		if floor := m.cfg.Floors[string(p)]; s < floor {
			s = floor
		}
		scores[p] = s / m.cfg.ScaleFactor
	}
	return scores
}

// monthly converts a 3-month aggregate into a per-month amount.
func (m *Model) monthly(total float64) float64 {
	return total / float64(m.cfg.WindowMonths)
}

// travelCard: cashback on travel, hotel, and taxi spend, capped per
// month, with an affluence uplift.
func (m *Model) travelCard(f *features.ClientFeatures) float64 {
	spend := m.monthly(f.SpendAmount(features.CategoryTravel) +
		f.SpendAmount(features.CategoryHotels) +
		f.SpendAmount(features.CategoryTaxi))
	cashback := min(spend*m.cfg.TravelCashbackRate, m.cfg.TravelMonthlyCap)
	if f.Balance > m.cfg.HighBalance {
		cashback *= 1.2
	}
	return cashback
}

// premiumTierRate returns the tiered base cashback rate by balance.
func (m *Model) premiumTierRate(balance float64) float64 {
	switch {
	case balance >= m.cfg.PremiumTier2Balance:
		return 0.04
	case balance >= m.cfg.PremiumTier1Balance:
		return 0.03
	default:
		return 0.02
	}
}

// premiumCard: tiered cashback on total spend plus an uplift on premium
// categories and saved service fees, capped per month.
func (m *Model) premiumCard(f *features.ClientFeatures) float64 {
	totalSpend := m.monthly(f.TotalSpend())
	base := totalSpend * m.premiumTierRate(f.Balance)

	var premiumSpend float64
	for _, c := range premiumCategories {
		premiumSpend += f.SpendAmount(c)
	}
	uplift := m.monthly(premiumSpend) * 0.04

	cashback := min(base+uplift, m.cfg.PremiumMonthlyCap)

	// Premium tier waives transfer and withdrawal fees for clients who
	// actually keep money on the account.
	if f.Balance > m.cfg.PremiumTier1Balance/2 {
		cashback += min(f.Balance*0.001, 3000)
	}
	return cashback
}

// creditCard: cashback on the client's top-3 categories and on online
// services, plus the value of the grace period.
func (m *Model) creditCard(f *features.ClientFeatures) float64 {
	top3 := m.monthly(f.TopSpendTotal(3))

	var online float64
	for _, c := range onlineCategories {
		online += f.SpendAmount(c)
	}
	online = m.monthly(online)

	cashback := (top3 + online) * m.cfg.CreditCashbackRate
	grace := min(f.Balance*0.01, 2000)
	return cashback + grace
}

// fxExchange: spread savings on exchange volume. Inactive clients earn
// only the floor.
func (m *Model) fxExchange(f *features.ClientFeatures) float64 {
	volume := f.FXVolume()
	if volume < m.cfg.FXActivityMin {
		return 0
	}
	saved := m.monthly(volume) * m.cfg.FXSpreadRate
	// Auto-purchase at target rate is worth a little even to light users.
	return saved + 500
}

// cashLoan: interest saved against market alternatives when the loan
// covers a genuine deficit.
func (m *Model) cashLoan(f *features.ClientFeatures) float64 {
	deficit := m.monthly(f.CashDeficit())
	if deficit <= 0 || f.Balance >= m.cfg.HighBalance {
		return 0
	}
	principal := min(deficit*2, 1_000_000)
	saved := principal * m.cfg.LoanRateAdvantage / 12
	if f.Balance < m.cfg.HighBalance/2 {
		// Quick access to credit is itself worth something to a
		// cash-constrained client.
		saved += 2000
	}
	return saved
}

// multicurrencyDeposit: monthly interest on the balance at the
// multicurrency rate. Clients with no FX activity get half weight since
// the product's currency flexibility is wasted on them.
func (m *Model) multicurrencyDeposit(f *features.ClientFeatures) float64 {
	interest := f.Balance * m.cfg.MulticurrencyRate / 12
	if f.FXVolume() < m.cfg.FXActivityMin {
		interest *= 0.5
	}
	return interest
}

// savingsDeposit: monthly interest at the top rate, discounted for
// clients whose outflows exceed inflows since a locked deposit does not
// suit them.
func (m *Model) savingsDeposit(f *features.ClientFeatures) float64 {
	interest := f.Balance * m.cfg.SavingsRate / 12
	if f.TotalOutflow() > f.TotalInflow() {
		interest *= 0.7
	} else {
		interest += 2000
	}
	return interest
}

// accumulationDeposit: monthly interest at the accumulation rate plus a
// top-up bonus for clients with a steady surplus.
func (m *Model) accumulationDeposit(f *features.ClientFeatures) float64 {
	interest := f.Balance * m.cfg.AccumulationRate / 12
	surplus := m.monthly(f.CashSurplus())
	if surplus > 5000 {
		interest += min(surplus*0.01, 2000)
	} else {
		interest *= 0.6
	}
	return interest
}

// investments: conservative return on the investable slice of the
// balance, plus commission savings for clients already trading.
func (m *Model) investments(f *features.ClientFeatures) float64 {
	invested := min(f.Balance*0.2, 500_000)
	monthly := invested * m.cfg.InvestmentReturn / 12
	traded := f.TransferAmount(features.TransferInvestOut) +
		f.TransferAmount(features.TransferInvestIn)
	if traded > 0 {
		monthly += m.monthly(traded) * 0.001
	}
	return monthly
}

// goldBars: appreciation on a gold allocation, plus waived storage fees
// for clients wealthy enough to hold physical bars.
func (m *Model) goldBars(f *features.ClientFeatures) float64 {
	allocation := min(f.Balance*0.15, 500_000)
	monthly := allocation * m.cfg.GoldReturn / 12
	if f.Balance > 3_000_000 {
		monthly += 1000
	}
	return monthly
}
