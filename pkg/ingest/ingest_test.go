package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/features"
	"arlan-hq/meridian/pkg/telemetry/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testLoader(t *testing.T, dir string) *Loader {
	t.Helper()
	cfg := config.DataConfig{
		ClientsPath:      filepath.Join(dir, "clients.csv"),
		TransactionsPath: filepath.Join(dir, "transactions.csv"),
		TransfersPath:    filepath.Join(dir, "transfers.csv"),
		CurrencyRates:    map[string]float64{"KZT": 1, "USD": 480},
		BaseCurrency:     "KZT",
	}
	return NewLoader(cfg, logging.Discard())
}

func TestLoadClients(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv",
		"client_code,name,status,age,city,avg_monthly_balance_KZT\n"+
			"1,Aigerim,standard,29,Almaty,450000\n"+
			"2,Daniyar,premium,41,Astana,2800000\n"+
			"oops,Bad,standard,0,Almaty,0\n")

	clients, err := testLoader(t, dir).LoadClients()
	if err != nil {
		t.Fatalf("LoadClients() error = %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("got %d clients, want 2 (bad row skipped)", len(clients))
	}
	if clients[0].Name != "Aigerim" || clients[0].Balance != 450000 {
		t.Errorf("first client = %+v", clients[0])
	}
}

func TestLoadClients_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv", "name,balance\nAigerim,450000\n")

	if _, err := testLoader(t, dir).LoadClients(); err == nil {
		t.Fatal("expected error for missing client_code column")
	}
}

func TestLoadTransactions_CurrencyConversion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "transactions.csv",
		"client_code,date,category,amount,currency\n"+
			"1,2025-06-01 10:00:00,travel,100,USD\n"+
			"1,2025-06-02 11:00:00,taxi,5000,KZT\n"+
			"1,2025-06-03 12:00:00,,3000,KZT\n")

	txs, err := testLoader(t, dir).LoadTransactions()
	if err != nil {
		t.Fatalf("LoadTransactions() error = %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2 (blank category dropped)", len(txs))
	}
	if txs[0].Amount != 48000 {
		t.Errorf("USD amount = %v, want 48000 after conversion", txs[0].Amount)
	}
	if txs[1].Amount != 5000 {
		t.Errorf("KZT amount = %v, want 5000 unchanged", txs[1].Amount)
	}
}

func TestTrimOutliers(t *testing.T) {
	group := []Transaction{
		{ClientCode: 1, Category: "groceries", Amount: 10000},
		{ClientCode: 1, Category: "groceries", Amount: 11000},
		{ClientCode: 1, Category: "groceries", Amount: 9000},
		{ClientCode: 1, Category: "groceries", Amount: 10500},
		{ClientCode: 1, Category: "jewelry", Amount: 5_000_000},
	}

	trimmed := TrimOutliers(group)
	if len(trimmed) != 4 {
		t.Fatalf("got %d transactions, want 4 (outlier dropped)", len(trimmed))
	}
	for _, tx := range trimmed {
		if tx.Amount == 5_000_000 {
			t.Error("outlier survived the trim")
		}
	}
}

func TestTrimOutliers_SmallGroupUntouched(t *testing.T) {
	group := []Transaction{
		{ClientCode: 1, Amount: 10},
		{ClientCode: 1, Amount: 1_000_000},
		{ClientCode: 1, Amount: 20},
	}
	if got := TrimOutliers(group); len(got) != 3 {
		t.Errorf("got %d transactions, want all 3 for a small group", len(got))
	}
}

func TestTrimOutliers_ZeroIQR(t *testing.T) {
	group := []Transaction{
		{ClientCode: 1, Amount: 500},
		{ClientCode: 1, Amount: 500},
		{ClientCode: 1, Amount: 500},
		{ClientCode: 1, Amount: 500},
		{ClientCode: 1, Amount: 500},
	}
	if got := TrimOutliers(group); len(got) != 5 {
		t.Errorf("got %d transactions, want all 5 when IQR is zero", len(got))
	}
}

func TestTrimOutliers_NeverDropsClient(t *testing.T) {
	var group []Transaction
	for i := 0; i < 12; i++ {
		group = append(group, Transaction{ClientCode: 7, Amount: float64(i * 1_000_000)})
	}
	group = append(group, []Transaction{
		{ClientCode: 8, Amount: 100},
		{ClientCode: 8, Amount: 110},
		{ClientCode: 8, Amount: 120},
		{ClientCode: 8, Amount: 105},
	}...)

	trimmed := TrimOutliers(group)
	seen := map[int64]bool{}
	for _, tx := range trimmed {
		seen[tx.ClientCode] = true
	}
	if !seen[7] || !seen[8] {
		t.Errorf("trim dropped a client entirely: %v", seen)
	}
}

func TestBuildFeatures(t *testing.T) {
	clients := []ClientRecord{
		{ClientCode: 2, Name: "Daniyar", Balance: 2_800_000},
		{ClientCode: 1, Name: "Aigerim", Balance: 450_000},
	}
	txs := []Transaction{
		{ClientCode: 1, Category: "taxi", Amount: 4000},
		{ClientCode: 1, Category: "taxi", Amount: 6000},
	}
	transfers := []Transfer{
		{ClientCode: 1, Type: "salary_in", Amount: 300_000},
	}

	out := BuildFeatures(clients, txs, transfers)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	if out[0].ClientCode != 1 || out[1].ClientCode != 2 {
		t.Error("records should be ordered by client code")
	}
	if got := out[0].SpendAmount(features.CategoryTaxi); got != 10000 {
		t.Errorf("taxi spend = %v, want 10000", got)
	}
	if got := out[0].TransferAmount(features.TransferSalaryIn); got != 300_000 {
		t.Errorf("salary_in = %v, want 300000", got)
	}
	// The client with no activity still gets a usable record.
	if out[1].TotalSpend() != 0 {
		t.Errorf("inactive client spend = %v, want 0", out[1].TotalSpend())
	}
}

func TestLoad_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv",
		"client_code,name,status,age,city,avg_monthly_balance_KZT\n"+
			"1,Aigerim,standard,29,Almaty,450000\n")
	writeFile(t, dir, "transactions.csv",
		"client_code,date,category,amount,currency\n"+
			"1,2025-06-01 10:00:00,groceries,20000,KZT\n")
	writeFile(t, dir, "transfers.csv",
		"client_code,date,type,amount,currency\n"+
			"1,2025-06-01 10:00:00,salary_in,300000,KZT\n")

	out, err := testLoader(t, dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(out) != 1 || out[0].Balance != 450000 {
		t.Fatalf("unexpected records: %+v", out)
	}
}
