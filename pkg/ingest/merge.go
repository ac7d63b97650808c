package ingest

import (
	"sort"

	"arlan-hq/meridian/pkg/features"
)

// BuildFeatures merges the loaded datasets into one ClientFeatures
// record per client, ordered by client code. Clients with no
// transactions or transfers still appear, with empty aggregates.
func BuildFeatures(clients []ClientRecord, txs []Transaction, transfers []Transfer) []*features.ClientFeatures {
	spend := make(map[int64]map[string]float64)
	for _, tx := range txs {
		m, ok := spend[tx.ClientCode]
		if !ok {
			m = make(map[string]float64)
			spend[tx.ClientCode] = m
		}
		m[tx.Category] += tx.Amount
	}

	moved := make(map[int64]map[string]float64)
	for _, tr := range transfers {
		m, ok := moved[tr.ClientCode]
		if !ok {
			m = make(map[string]float64)
			moved[tr.ClientCode] = m
		}
		m[tr.Type] += tr.Amount
	}

	out := make([]*features.ClientFeatures, 0, len(clients))
	for _, c := range clients {
		out = append(out, &features.ClientFeatures{
			ClientCode: c.ClientCode,
			Name:       c.Name,
			Status:     c.Status,
			Age:        c.Age,
			City:       c.City,
			Balance:    c.Balance,
			Spend:      spend[c.ClientCode],
			Transfers:  moved[c.ClientCode],
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ClientCode < out[j].ClientCode
	})
	return out
}

// Load runs the full ingestion: read all three datasets, trim outliers,
// and merge into feature records.
func (l *Loader) Load() ([]*features.ClientFeatures, error) {
	clients, err := l.LoadClients()
	if err != nil {
		return nil, err
	}
	txs, err := l.LoadTransactions()
	if err != nil {
		return nil, err
	}
	transfers, err := l.LoadTransfers()
	if err != nil {
		return nil, err
	}

	trimmed := TrimOutliers(txs)
	if dropped := len(txs) - len(trimmed); dropped > 0 {
		l.log.Info("outlier transactions trimmed", "dropped", dropped, "kept", len(trimmed))
	}

	return BuildFeatures(clients, trimmed, transfers), nil
}
