package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/features"
	"arlan-hq/meridian/pkg/selector"
)

// fillers extend texts that fall short of the minimum length. They are
// appended sentence by sentence until the band is reached.
var fillers = []string{
	"Personal terms and transparent conditions.",
	"Everything opens in the app in a couple of taps.",
	"Support is available around the clock.",
	"No hidden fees and no paperwork.",
}

// Context carries the values templates can reference.
type Context struct {
	Name    string
	Product string
	Benefit string
	Balance string

	Cat1, Cat2, Cat3 string

	TravelSpend string
	FXVolume    string
}

// Renderer produces push notification texts for decisions.
type Renderer struct {
	cfg       config.NotifyConfig
	templates map[catalog.Product]*template.Template
	scale     float64
}

// NewRenderer parses the built-in templates, applying overrides from the
// configured template directory when files named <product>.tmpl exist.
// The scale factor converts decision scores back into currency amounts
// for display.
func NewRenderer(cfg config.NotifyConfig, scale float64) (*Renderer, error) {
	if scale <= 0 {
		scale = 1
	}
	r := &Renderer{
		cfg:       cfg,
		templates: make(map[catalog.Product]*template.Template, len(builtinTemplates)),
		scale:     scale,
	}

	for p, text := range builtinTemplates {
		if cfg.TemplateDir != "" {
			path := filepath.Join(cfg.TemplateDir, string(p)+".tmpl")
			if data, err := os.ReadFile(path); err == nil {
				text = string(data)
			}
		}
		tmpl, err := template.New(string(p)).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parsing template for %s: %w", p, err)
		}
		r.templates[p] = tmpl
	}
	return r, nil
}

// Render produces the push text for a decision.
func (r *Renderer) Render(f *features.ClientFeatures, d selector.Decision) (string, error) {
	tmpl, ok := r.templates[d.Product]
	if !ok {
		return "", fmt.Errorf("no template for product %q", d.Product)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, r.context(f, d)); err != nil {
		return "", fmt.Errorf("rendering push for %s: %w", d.Product, err)
	}
	return r.postprocess(b.String()), nil
}

func (r *Renderer) context(f *features.ClientFeatures, d selector.Decision) Context {
	name := firstName(f.Name)

	top := f.TopSpendCategories(3)
	cats := [3]string{"shopping", "entertainment", "restaurants"}
	for i := 0; i < len(top) && i < 3; i++ {
		cats[i] = top[i]
	}

	travel := f.SpendAmount(features.CategoryTravel) +
		f.SpendAmount(features.CategoryHotels) +
		f.SpendAmount(features.CategoryTaxi)

	return Context{
		Name:        name,
		Product:     d.Product.DisplayName(),
		Benefit:     r.money(d.Score * r.scale),
		Balance:     r.money(f.Balance),
		Cat1:        cats[0],
		Cat2:        cats[1],
		Cat3:        cats[2],
		TravelSpend: r.money(travel),
		FXVolume:    r.money(f.FXVolume()),
	}
}

func (r *Renderer) money(amount float64) string {
	return FormatMoney(amount, r.cfg.CurrencySymbol)
}

func firstName(full string) string {
	full = strings.TrimSpace(full)
	if full == "" {
		return "Dear client"
	}
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}

// postprocess enforces the length band and tone rules.
func (r *Renderer) postprocess(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = collapseExclamations(text)
	text = normalizeCaps(text)

	if maxLen := r.cfg.MaxLength; maxLen > 0 && len([]rune(text)) > maxLen {
		text = truncateAtSentence(text, maxLen)
	}

	if minLen := r.cfg.MinLength; minLen > 0 && len([]rune(text)) < minLen {
		text = pad(text, minLen, r.cfg.MaxLength)
	}
	return text
}

// pad appends filler sentences until the text reaches minLen runes.
// When the last filler overshoots maxLen, the text is cut back to the
// latest word boundary inside the band and closed with a period.
func pad(text string, minLen, maxLen int) string {
	for i := 0; len([]rune(text)) < minLen; i++ {
		text += " " + fillers[i%len(fillers)]
	}
	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return text
	}

	cut := maxLen - 1
	for i := maxLen - 1; i >= minLen; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}
	return strings.TrimRight(string(runes[:cut]), " ,.") + "."
}

// truncateAtSentence keeps whole sentences while they fit in max runes.
// When not even the first sentence fits, the text is cut hard at max.
func truncateAtSentence(text string, max int) string {
	var out strings.Builder
	for _, sentence := range strings.SplitAfter(text, ". ") {
		if len([]rune(out.String()+sentence)) > max {
			break
		}
		out.WriteString(sentence)
	}
	kept := strings.TrimSpace(out.String())
	if kept == "" {
		runes := []rune(text)
		kept = strings.TrimSpace(string(runes[:max]))
	}
	return kept
}

// normalizeCaps lowercases texts that shout (over 10% uppercase letters)
// and re-capitalizes the first letter.
func normalizeCaps(text string) string {
	var letters, caps int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				caps++
			}
		}
	}
	if letters == 0 || float64(caps)/float64(letters) <= 0.1 {
		return text
	}

	lowered := []rune(strings.ToLower(text))
	for i, r := range lowered {
		if unicode.IsLetter(r) {
			lowered[i] = unicode.ToUpper(r)
			break
		}
	}
	return string(lowered)
}

func collapseExclamations(text string) string {
	for strings.Contains(text, "!!") {
		text = strings.ReplaceAll(text, "!!", "!")
	}
	return text
}
