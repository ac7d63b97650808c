package notify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/features"
	"arlan-hq/meridian/pkg/selector"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(config.DefaultConfig().Notify, config.DefaultScaleFactor)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func testClient() *features.ClientFeatures {
	return &features.ClientFeatures{
		ClientCode: 1,
		Name:       "Aigerim Bekova",
		Balance:    2_400_000,
		Spend: map[string]float64{
			features.CategoryTravel:      120_000,
			features.CategoryTaxi:        45_000,
			features.CategoryRestaurants: 80_000,
		},
		Transfers: map[string]float64{
			features.TransferFXBuy: 200_000,
		},
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0 ₸"},
		{500, "500 ₸"},
		{27_400, "27 400 ₸"},
		{2_490_000, "2 490 000 ₸"},
		{1234.6, "1 235 ₸"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount, "₸"); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestRender_EveryProductHasTemplate(t *testing.T) {
	r := testRenderer(t)
	f := testClient()

	for _, p := range catalog.All() {
		d := selector.Decision{ClientCode: 1, Product: p, Score: 45.5}
		text, err := r.Render(f, d)
		if err != nil {
			t.Fatalf("Render(%s) error = %v", p, err)
		}
		if text == "" {
			t.Errorf("Render(%s) produced empty text", p)
		}
	}
}

func TestRender_LengthBand(t *testing.T) {
	cfg := config.DefaultConfig().Notify
	r := testRenderer(t)
	f := testClient()

	for _, p := range catalog.All() {
		d := selector.Decision{ClientCode: 1, Product: p, Score: 45.5}
		text, err := r.Render(f, d)
		if err != nil {
			t.Fatalf("Render(%s) error = %v", p, err)
		}
		n := len([]rune(text))
		if n < cfg.MinLength || n > cfg.MaxLength {
			t.Errorf("Render(%s) length = %d, want within [%d, %d]: %q",
				p, n, cfg.MinLength, cfg.MaxLength, text)
		}
	}
}

func TestRender_Personalization(t *testing.T) {
	r := testRenderer(t)
	f := testClient()

	text, err := r.Render(f, selector.Decision{
		ClientCode: 1,
		Product:    catalog.TravelCard,
		Score:      66,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(text, "Aigerim,") {
		t.Errorf("text should open with the first name: %q", text)
	}
	// 120000 + 45000 travel and taxi spend.
	if !strings.Contains(text, "165 000 ₸") {
		t.Errorf("text should carry the formatted travel spend: %q", text)
	}
	// Score 66 scaled by 100 back into currency.
	if !strings.Contains(text, "6 600 ₸") {
		t.Errorf("text should carry the formatted benefit: %q", text)
	}
}

func TestRender_UnnamedClientFallback(t *testing.T) {
	r := testRenderer(t)
	f := testClient()
	f.Name = ""

	text, err := r.Render(f, selector.Decision{Product: catalog.SavingsDeposit, Score: 400})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(text, "Dear client") {
		t.Errorf("unnamed client should get the neutral salutation: %q", text)
	}
}

func TestRender_TemplateDirOverride(t *testing.T) {
	dir := t.TempDir()
	override := "{{.Name}}, custom savings pitch worth {{.Benefit}}! " +
		strings.Repeat("Details in the app. ", 8)
	path := filepath.Join(dir, "savings_deposit.tmpl")
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig().Notify
	cfg.TemplateDir = dir
	r, err := NewRenderer(cfg, config.DefaultScaleFactor)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	text, err := r.Render(testClient(), selector.Decision{Product: catalog.SavingsDeposit, Score: 400})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(text, "custom savings pitch") {
		t.Errorf("override template not applied: %q", text)
	}
}

func TestPostprocess_TruncatesAtSentence(t *testing.T) {
	cfg := config.DefaultConfig().Notify
	r := testRenderer(t)

	long := strings.Repeat("This sentence is about forty characters. ", 10)
	got := r.postprocess(long)
	if n := len([]rune(got)); n > cfg.MaxLength {
		t.Errorf("postprocess length = %d, want <= %d", n, cfg.MaxLength)
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("truncation should end on a sentence boundary: %q", got)
	}
}

func TestPostprocess_NormalizesShouting(t *testing.T) {
	got := normalizeCaps("HUGE BENEFIT WAITING FOR YOU RIGHT NOW")
	if got != "Huge benefit waiting for you right now" {
		t.Errorf("normalizeCaps() = %q", got)
	}
}

func TestPostprocess_CollapsesExclamations(t *testing.T) {
	if got := collapseExclamations("Wow!!! Great!!"); got != "Wow! Great!" {
		t.Errorf("collapseExclamations() = %q", got)
	}
}

func TestRender_ShortTemplatePadsIntoBand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credit_card.tmpl")
	if err := os.WriteFile(path, []byte("{{.Name}}, the {{.Product}} pays back."), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig().Notify
	cfg.TemplateDir = dir
	r, err := NewRenderer(cfg, config.DefaultScaleFactor)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	text, err := r.Render(testClient(), selector.Decision{ClientCode: 1, Product: catalog.CreditCard, Score: 12})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	n := len([]rune(text))
	if n < cfg.MinLength || n > cfg.MaxLength {
		t.Errorf("length = %d, want within [%d, %d]", n, cfg.MinLength, cfg.MaxLength)
	}
	if !strings.HasSuffix(text, ".") {
		t.Errorf("padded text should end with a period: %q", text)
	}
}

func TestRender_SparseClientStaysInBand(t *testing.T) {
	cfg := config.DefaultConfig().Notify
	r := testRenderer(t)
	f := &features.ClientFeatures{ClientCode: 9}

	for _, p := range catalog.All() {
		text, err := r.Render(f, selector.Decision{ClientCode: 9, Product: p, Score: 1})
		if err != nil {
			t.Fatalf("Render(%s) error = %v", p, err)
		}
		if n := len([]rune(text)); n < cfg.MinLength || n > cfg.MaxLength {
			t.Errorf("Render(%s) length = %d, want within [%d, %d]", p, n, cfg.MinLength, cfg.MaxLength)
		}
	}
}
