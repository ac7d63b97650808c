package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
)

func enabledConfig() config.MetricsConfig {
	return config.MetricsConfig{Enabled: true}
}

func TestCollector_RecordDecision(t *testing.T) {
	c := NewCollector(enabledConfig(), nil)

	c.RecordDecision(catalog.CreditCard, "scored", 2*time.Millisecond)
	c.RecordDecision(catalog.CreditCard, "scored", time.Millisecond)
	c.RecordDecision(catalog.FXExchange, "mandatory", time.Millisecond)

	got := testutil.ToFloat64(c.decisionsTotal.WithLabelValues("credit_card", "scored"))
	if got != 2 {
		t.Errorf("decisions_total{credit_card,scored} = %v, want 2", got)
	}
	got = testutil.ToFloat64(c.decisionsTotal.WithLabelValues("fx_exchange", "mandatory"))
	if got != 1 {
		t.Errorf("decisions_total{fx_exchange,mandatory} = %v, want 1", got)
	}
}

func TestCollector_DisabledRecordsNothing(t *testing.T) {
	c := NewCollector(config.MetricsConfig{Enabled: false}, nil)

	c.RecordDecision(catalog.CreditCard, "scored", time.Millisecond)
	c.RecordRuleHit("high_fx_volume")
	c.RecordSkip()

	if got := testutil.ToFloat64(c.clientsSkipped); got != 0 {
		t.Errorf("clients_skipped_total = %v, want 0 while disabled", got)
	}
}

func TestCollector_QuotaShares(t *testing.T) {
	c := NewCollector(enabledConfig(), nil)

	c.SetQuotaShares(map[catalog.Product]float64{
		catalog.CreditCard: 0.25,
		catalog.GoldBars:   0.05,
	})

	if got := testutil.ToFloat64(c.quotaShare.WithLabelValues("credit_card")); got != 0.25 {
		t.Errorf("quota_share{credit_card} = %v, want 0.25", got)
	}
}

func TestCollector_OwnRegistry(t *testing.T) {
	// Two collectors must not collide on registration.
	a := NewCollector(enabledConfig(), nil)
	b := NewCollector(enabledConfig(), nil)
	if a.Registry() == b.Registry() {
		t.Fatal("collectors should own separate registries")
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(enabledConfig(), reg)
	c.RecordDecision(catalog.SavingsDeposit, "scored", time.Millisecond)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()

	buf := make([]byte, 64*1024)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])
	if !strings.Contains(body, "meridian_engine_decisions_total") {
		t.Errorf("exposition missing decisions_total:\n%s", body)
	}
}
