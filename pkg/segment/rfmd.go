package segment

import (
	"math"

	"arlan-hq/meridian/pkg/features"
)

// Categories whose activity counts toward the frequency signal.
var focusCategories = []string{
	features.CategoryTaxi,
	features.CategoryTravel,
	features.CategoryRestaurants,
	features.CategoryClothing,
	features.CategoryEntertainment,
}

// Vector is one client's RFM-D feature vector, normalized to [0, 1]
// per dimension across the population, plus a log-scaled balance.
type Vector struct {
	Recency    float64
	Frequency  float64
	Monetary   float64
	Diversity  float64
	BalanceLog float64
}

func (v Vector) dims() []float64 {
	return []float64{v.Recency, v.Frequency, v.Monetary, v.Diversity, v.BalanceLog}
}

// Vectors computes the normalized RFM-D vector for every client. With
// only aggregated inputs, recency is proxied by balance: a high balance
// reads as recent activity, so its recency value is low.
func Vectors(clients []*features.ClientFeatures) []Vector {
	n := len(clients)
	if n == 0 {
		return nil
	}

	raw := make([]Vector, n)
	var maxBalance, maxFreq, maxMonetary, maxDiversity, maxLog float64
	for i, c := range clients {
		var freq float64
		for _, cat := range focusCategories {
			if c.SpendAmount(cat) > 0 {
				freq++
			}
		}

		var diversity float64
		for _, amount := range c.Spend {
			if amount > 0 {
				diversity++
			}
		}
		for _, amount := range c.Transfers {
			if amount > 0 {
				diversity++
			}
		}

		raw[i] = Vector{
			Frequency:  freq,
			Monetary:   c.Balance + c.TotalSpend(),
			Diversity:  diversity,
			BalanceLog: math.Log1p(c.Balance),
		}

		maxBalance = math.Max(maxBalance, c.Balance)
		maxFreq = math.Max(maxFreq, freq)
		maxMonetary = math.Max(maxMonetary, raw[i].Monetary)
		maxDiversity = math.Max(maxDiversity, diversity)
		maxLog = math.Max(maxLog, raw[i].BalanceLog)
	}

	for i, c := range clients {
		if maxBalance > 0 {
			raw[i].Recency = 1 - c.Balance/maxBalance
		} else {
			raw[i].Recency = 0.5
		}
		if maxFreq > 0 {
			raw[i].Frequency /= maxFreq
		}
		if maxMonetary > 0 {
			raw[i].Monetary /= maxMonetary
		}
		if maxDiversity > 0 {
			raw[i].Diversity /= maxDiversity
		}
		if maxLog > 0 {
			raw[i].BalanceLog /= maxLog
		}
	}
	return raw
}
