package benefit

import (
	"sort"

	"arlan-hq/meridian/pkg/catalog"
)

// Map holds one score per catalog product. Scores are strictly positive
// after floors are applied.
type Map map[catalog.Product]float64

// Score returns the score for a product, or 0 if the product is absent.
func (m Map) Score(p catalog.Product) float64 {
	return m[p]
}

// Leader returns the product with the highest score and that score.
// Ties are broken by catalog order, so the result is deterministic.
func (m Map) Leader() (catalog.Product, float64) {
	var best catalog.Product
	bestScore := -1.0
	for p, s := range m {
		if s > bestScore || (s == bestScore && p.Order() < best.Order()) {
			best, bestScore = p, s
		}
	}
	return best, bestScore
}

// Sorted returns the products in descending score order. Equal scores
// keep catalog order.
func (m Map) Sorted() []catalog.Product {
	out := make([]catalog.Product, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := m[out[i]], m[out[j]]
		if si != sj {
			return si > sj
		}
		return out[i].Order() < out[j].Order()
	})
	return out
}

// RunnerUp returns the second-ranked product and its score. It returns
// ("", 0) when the map holds fewer than two products.
func (m Map) RunnerUp() (catalog.Product, float64) {
	sorted := m.Sorted()
	if len(sorted) < 2 {
		return "", 0
	}
	p := sorted[1]
	return p, m[p]
}
