package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"liquidityGuard/internal/model"
	"liquidityGuard/internal/notify"
)

// DefaultWindow is the look-back of the alerts report.
const DefaultWindow = 24 * time.Hour

// Group aggregates the alerts of one symbol and kind.
type Group struct {
	Symbol string
	Kind   model.AlertKind
	Count  int
	Last   model.AlertRecord
}

// Summarize keeps records newer than now-window and groups them by (symbol, kind), sorted.
func Summarize(records []model.AlertRecord, now time.Time, window time.Duration) []Group {
	if window <= 0 {
		window = DefaultWindow
	}
	cutoff := now.Add(-window)

	type groupKey struct {
		symbol string
		kind   model.AlertKind
	}
	groups := make(map[groupKey]*Group)
	for _, rec := range records {
		if rec.Timestamp.Before(cutoff) {
			continue
		}
		key := groupKey{symbol: rec.Symbol, kind: rec.Kind}
		g, ok := groups[key]
		if !ok {
			g = &Group{Symbol: rec.Symbol, Kind: rec.Kind}
			groups[key] = g
		}
		g.Count++
		if g.Count == 1 || !rec.Timestamp.Before(g.Last.Timestamp) {
			g.Last = rec
		}
	}

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	groupStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RiskStyle colours a risk label the way the dashboard does.
func RiskStyle(risk string) lipgloss.Style {
	level, ok := model.ParseRiskLevel(risk)
	if !ok {
		return dimStyle
	}
	switch level {
	case model.RiskCritical, model.RiskRugDetected:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	case model.RiskRisky:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case model.RiskModerate:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	}
}

// Render writes the grouped report to w.
func Render(w io.Writer, groups []Group, now time.Time, window time.Duration) error {
	if window <= 0 {
		window = DefaultWindow
	}
	if len(groups) == 0 {
		_, err := fmt.Fprintf(w, "No alerts in the last %s.\n", window)
		return err
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("📊 Liquidity alerts, last %s (until %s UTC)", window, now.UTC().Format(time.RFC3339))))
	b.WriteString("\n\n")

	for _, g := range groups {
		last := g.Last
		b.WriteString(groupStyle.Render(fmt.Sprintf("=== %s [%s] ===", g.Symbol, g.Kind)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Alerts: %d\n", g.Count)
		fmt.Fprintf(&b, "Last: %s  %s\n", last.Timestamp.UTC().Format(time.RFC3339), dimStyle.Render(last.Dex+" / "+last.Chain))
		fmt.Fprintf(&b, "Last risk: %s\n", RiskStyle(last.Risk.String()).Render(last.Risk.String()))
		if last.Liquidity != nil {
			fmt.Fprintf(&b, "Liquidity: $%s\n", notify.FormatUSD(*last.Liquidity))
		}
		if last.Ratio != nil {
			fmt.Fprintf(&b, "Liq/MCap: %.2f%%\n", *last.Ratio*100)
		}
		if g.Kind == model.AlertKindRisk {
			fmt.Fprintf(&b, "Changes: 5m=%+.1f%%, 1h=%+.1f%%, 24h=%+.1f%%\n",
				valueOrZero(last.Change5m), valueOrZero(last.Change1h), valueOrZero(last.Change24h))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
