package segment

import (
	"math"
	"math/rand"

	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/features"
)

// Assign computes RFM-D vectors for the clients, clusters them, and
// writes the label into each client's Cluster field. Populations smaller
// than the cluster count all land in cluster 0.
func Assign(clients []*features.ClientFeatures, cfg config.SegmentConfig) {
	labels := Cluster(Vectors(clients), cfg)
	for i, c := range clients {
		if i < len(labels) {
			c.Cluster = labels[i]
		}
	}
}

// Cluster runs seeded k-means over the vectors and returns one label per
// vector. Labels are renumbered by first appearance so they are stable
// across runs with the same input order.
func Cluster(vectors []Vector, cfg config.SegmentConfig) []int {
	n := len(vectors)
	if n == 0 {
		return nil
	}

	k := cfg.Clusters
	if k < 1 {
		k = 1
	}
	if n < k {
		return make([]int, n)
	}

	points := make([][]float64, n)
	for i, v := range vectors {
		points[i] = v.dims()
	}
	dims := len(points[0])

	// Seeded initialization keeps runs reproducible.
	rng := rand.New(rand.NewSource(cfg.Seed))
	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), points[idx]...)
	}

	labels := make([]int, n)
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = 100
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			best, bestDist := 0, math.Inf(1)
			for c, centroid := range centroids {
				if d := sqDist(p, centroid); d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for d, v := range p {
				sums[c][d] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				// An emptied cluster restarts on a seeded random point.
				centroids[c] = append([]float64(nil), points[rng.Intn(n)]...)
				continue
			}
			for d := range centroids[c] {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	return renumber(labels)
}

// renumber relabels clusters by order of first appearance.
func renumber(labels []int) []int {
	next := 0
	mapping := make(map[int]int)
	out := make([]int, len(labels))
	for i, l := range labels {
		m, ok := mapping[l]
		if !ok {
			m = next
			mapping[l] = m
			next++
		}
		out[i] = m
	}
	return out
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
