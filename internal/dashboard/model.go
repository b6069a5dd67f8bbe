package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"liquidityGuard/internal/model"
	"liquidityGuard/internal/report"
)

// Snapshot is what one refresh of the dashboard shows.
type Snapshot struct {
	Flags     model.FlagMap
	Alerts    []report.Group
	Skipped   int
	LoadedAt  time.Time
	LoadError error
}

// Loader reads the current flag and alert state.
type Loader func() Snapshot

type tickMsg time.Time

type snapshotMsg Snapshot

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("38")).
			Padding(0, 1)

	columnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type Model struct {
	load     Loader
	refresh  time.Duration
	snapshot Snapshot
	width    int
}

func NewModel(load Loader, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = 5 * time.Second
	}
	return Model{load: load, refresh: refresh}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, m.loadCmd()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.loadCmd(), m.tick())
	case snapshotMsg:
		m.snapshot = Snapshot(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.snapshot
	loaded := "never"
	if !snap.LoadedAt.IsZero() {
		loaded = snap.LoadedAt.Format("15:04:05")
	}
	header := headerStyle.Render(fmt.Sprintf("🛡️ LIQUIDITY GUARD | refreshed %s", loaded))

	parts := []string{header}
	if snap.LoadError != nil {
		parts = append(parts, errorStyle.Render("load error: "+snap.LoadError.Error()))
	}
	parts = append(parts,
		panelStyle.Render(renderFlags(snap.Flags)),
		panelStyle.Render(renderAlerts(snap.Alerts, snap.Skipped)),
		helpStyle.Render("r refresh • q quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) loadCmd() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		return snapshotMsg(load())
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func renderFlags(flags model.FlagMap) string {
	var b strings.Builder
	b.WriteString(columnStyle.Render(fmt.Sprintf("%-12s %-14s %s", "PAIR", "RISK", "UPDATED")))
	if len(flags) == 0 {
		b.WriteString("\n- No flags active")
		return b.String()
	}

	symbols := make([]string, 0, len(flags))
	for symbol := range flags {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		flag := flags[symbol]
		risk := strings.ToUpper(flag.Risk)
		if risk == "" {
			risk = "UNKNOWN"
		}
		fmt.Fprintf(&b, "\n%-12s %s %s", symbol, report.RiskStyle(risk).Render(fmt.Sprintf("%-14s", risk)), updatedClock(flag.UpdatedAt))
	}
	return b.String()
}

func renderAlerts(groups []report.Group, skipped int) string {
	var b strings.Builder
	b.WriteString(columnStyle.Render(fmt.Sprintf("%-12s %-7s %-6s %-14s %s", "SYMBOL", "KIND", "COUNT", "LAST RISK", "LAST")))
	if len(groups) == 0 {
		b.WriteString("\n- No alerts in the last 24h")
	}
	for _, g := range groups {
		risk := g.Last.Risk.String()
		fmt.Fprintf(&b, "\n%-12s %-7s %-6d %s %s",
			g.Symbol, g.Kind, g.Count,
			report.RiskStyle(risk).Render(fmt.Sprintf("%-14s", risk)),
			g.Last.Timestamp.UTC().Format("01-02 15:04"),
		)
	}
	if skipped > 0 {
		fmt.Fprintf(&b, "\n%d malformed rows skipped", skipped)
	}
	return b.String()
}

// updatedClock trims an RFC3339 timestamp to its time of day.
func updatedClock(ts string) string {
	if i := strings.Index(ts, "T"); i >= 0 {
		ts = ts[i+1:]
	}
	if len(ts) > 8 {
		ts = ts[:8]
	}
	return ts
}
