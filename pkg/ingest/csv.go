package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/telemetry/logging"
)

// ClientRecord is one row of the clients dataset.
type ClientRecord struct {
	ClientCode int64
	Name       string
	Status     string
	Age        int
	City       string
	Balance    float64
}

// Transaction is one row of the transactions dataset with its amount
// already converted into the base currency.
type Transaction struct {
	ClientCode int64
	Category   string
	Amount     float64
}

// Transfer is one row of the transfers dataset with its amount already
// converted into the base currency.
type Transfer struct {
	ClientCode int64
	Type       string
	Amount     float64
}

// Loader reads the input datasets described by the data configuration.
type Loader struct {
	cfg config.DataConfig
	log *logging.Logger
}

// NewLoader creates a loader for the configured dataset paths.
func NewLoader(cfg config.DataConfig, log *logging.Logger) *Loader {
	return &Loader{cfg: cfg, log: log}
}

// convert turns an amount in the given currency into the base currency.
// Unknown currencies pass through at rate 1.
func (l *Loader) convert(amount float64, currency string) float64 {
	rate, ok := l.cfg.CurrencyRates[strings.ToUpper(currency)]
	if !ok {
		return amount
	}
	return amount * rate
}

// header maps column names to their index for order-independent access.
type header map[string]int

func (h header) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readHeader(r *csv.Reader, path string, required ...string) (header, error) {
	cols, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	h := make(header, len(cols))
	for i, c := range cols {
		h[strings.TrimSpace(c)] = i
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("%s: required column %q is missing", path, col)
		}
	}
	return h, nil
}

// parseFloat parses an amount, treating blanks and garbage as zero.
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// LoadClients reads the clients dataset. Rows without a parseable
// client_code are skipped and logged.
func (l *Loader) LoadClients() ([]ClientRecord, error) {
	f, err := os.Open(l.cfg.ClientsPath)
	if err != nil {
		return nil, fmt.Errorf("opening clients dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	h, err := readHeader(r, l.cfg.ClientsPath, "client_code")
	if err != nil {
		return nil, err
	}

	var clients []ClientRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading clients dataset: %w", err)
		}

		code, err := strconv.ParseInt(h.get(row, "client_code"), 10, 64)
		if err != nil {
			l.log.Warn("skipping client row with bad client_code",
				"value", h.get(row, "client_code"))
			continue
		}

		age, _ := strconv.Atoi(h.get(row, "age"))
		clients = append(clients, ClientRecord{
			ClientCode: code,
			Name:       h.get(row, "name"),
			Status:     h.get(row, "status"),
			Age:        age,
			City:       h.get(row, "city"),
			Balance:    parseFloat(h.get(row, "avg_monthly_balance_KZT")),
		})
	}

	l.log.Info("clients dataset loaded", "path", l.cfg.ClientsPath, "rows", len(clients))
	return clients, nil
}

// LoadTransactions reads the transactions dataset, converting amounts to
// the base currency. Rows without a category are dropped.
func (l *Loader) LoadTransactions() ([]Transaction, error) {
	f, err := os.Open(l.cfg.TransactionsPath)
	if err != nil {
		return nil, fmt.Errorf("opening transactions dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	h, err := readHeader(r, l.cfg.TransactionsPath, "client_code")
	if err != nil {
		return nil, err
	}

	var txs []Transaction
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading transactions dataset: %w", err)
		}

		code, err := strconv.ParseInt(h.get(row, "client_code"), 10, 64)
		if err != nil {
			continue
		}
		category := h.get(row, "category")
		if category == "" {
			continue
		}
		amount := l.convert(parseFloat(h.get(row, "amount")), h.get(row, "currency"))
		txs = append(txs, Transaction{ClientCode: code, Category: category, Amount: amount})
	}

	l.log.Info("transactions dataset loaded", "path", l.cfg.TransactionsPath, "rows", len(txs))
	return txs, nil
}

// LoadTransfers reads the transfers dataset, converting amounts to the
// base currency. Rows without a type are dropped.
func (l *Loader) LoadTransfers() ([]Transfer, error) {
	f, err := os.Open(l.cfg.TransfersPath)
	if err != nil {
		return nil, fmt.Errorf("opening transfers dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	h, err := readHeader(r, l.cfg.TransfersPath, "client_code")
	if err != nil {
		return nil, err
	}

	var transfers []Transfer
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading transfers dataset: %w", err)
		}

		code, err := strconv.ParseInt(h.get(row, "client_code"), 10, 64)
		if err != nil {
			continue
		}
		kind := h.get(row, "type")
		if kind == "" {
			continue
		}
		amount := l.convert(parseFloat(h.get(row, "amount")), h.get(row, "currency"))
		transfers = append(transfers, Transfer{ClientCode: code, Type: kind, Amount: amount})
	}

	l.log.Info("transfers dataset loaded", "path", l.cfg.TransfersPath, "rows", len(transfers))
	return transfers, nil
}
