package notify

import (
	"fmt"
	"math"
	"strings"

	"liquidityGuard/internal/model"
)

// FormatRiskAlert renders a risk alert in Telegram Markdown.
func FormatRiskAlert(pool model.Pool, analysis model.Analysis) string {
	emoji := "⚠️"
	if analysis.Risk == model.RiskRugDetected {
		emoji = "🚨"
	}

	var change1h float64
	if delta := analysis.Deltas.OneHour; delta != nil {
		change1h = delta.ChangePct
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s **LIQUIDITY ALERT: %s**\n\n", emoji, pool.Symbol)
	fmt.Fprintf(&b, "Risk: *%s*\n", strings.ToUpper(analysis.Risk.String()))
	fmt.Fprintf(&b, "Liquidity: $%s\n", FormatUSD(analysis.CurrentLiquidity))
	fmt.Fprintf(&b, "Liq/MCap: %.1f%%\n\n", analysis.LiqMcapRatio*100)
	fmt.Fprintf(&b, "1h Change: %+.1f%%\n", change1h)
	fmt.Fprintf(&b, "DEX: %s | Chain: %s", pool.Dex, pool.Chain)
	return b.String()
}

// FormatUnlockAlert renders an LP unlock alert.
func FormatUnlockAlert(pool model.Pool, signal model.UnlockSignal) string {
	var head string
	switch signal.Status {
	case model.LockUnlocked:
		head = "⚠️ LP UNLOCKED!"
	default:
		head = fmt.Sprintf("🔓 Unlock in %d days", signal.DaysLeft)
	}
	return fmt.Sprintf("%s (%s on %s)", head, pool.Symbol, pool.Chain)
}

// FormatUSD renders v rounded to whole dollars with thousands separators.
func FormatUSD(v float64) string {
	rounded := math.Round(v)
	neg := rounded < 0
	digits := fmt.Sprintf("%.0f", math.Abs(rounded))

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
