package ingest

import (
	"math"
	"sort"
)

// TrimOutliers removes per-client transaction outliers by the IQR rule
// while guaranteeing every client keeps at least some records:
//
//   - clients with fewer than 4 transactions are untouched,
//   - a zero IQR (all amounts equal) keeps everything,
//   - when every record lands outside the fences, the records nearest
//     the median survive instead, at least 3 or a quarter of the group.
func TrimOutliers(txs []Transaction) []Transaction {
	groups := make(map[int64][]Transaction)
	var order []int64
	for _, tx := range txs {
		if _, seen := groups[tx.ClientCode]; !seen {
			order = append(order, tx.ClientCode)
		}
		groups[tx.ClientCode] = append(groups[tx.ClientCode], tx)
	}

	out := make([]Transaction, 0, len(txs))
	for _, code := range order {
		out = append(out, trimGroup(groups[code])...)
	}
	return out
}

func trimGroup(group []Transaction) []Transaction {
	if len(group) < 4 {
		return group
	}

	amounts := make([]float64, len(group))
	for i, tx := range group {
		amounts[i] = tx.Amount
	}
	sort.Float64s(amounts)

	q1 := quantile(amounts, 0.25)
	q3 := quantile(amounts, 0.75)
	iqr := q3 - q1
	if iqr == 0 {
		return group
	}

	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	kept := make([]Transaction, 0, len(group))
	for _, tx := range group {
		if tx.Amount >= lower && tx.Amount <= upper {
			kept = append(kept, tx)
		}
	}
	if len(kept) > 0 {
		return kept
	}
	return nearestToMedian(group, amounts)
}

// nearestToMedian keeps the records closest to the median amount when
// the fences would empty the group.
func nearestToMedian(group []Transaction, sorted []float64) []Transaction {
	median := quantile(sorted, 0.5)
	keep := len(group) / 4
	if keep < 3 {
		keep = 3
	}

	idx := make([]int, len(group))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return math.Abs(group[idx[a]].Amount-median) < math.Abs(group[idx[b]].Amount-median)
	})

	kept := make([]Transaction, 0, keep)
	for _, i := range idx[:keep] {
		kept = append(kept, group[i])
	}
	return kept
}

// quantile interpolates linearly between order statistics, matching the
// convention of the upstream analytics the thresholds were tuned on.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
