package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"liquidityGuard/internal/model"
	"liquidityGuard/internal/report"
)

func TestModelRendersSnapshot(t *testing.T) {
	m := NewModel(func() Snapshot { return Snapshot{} }, time.Second)

	snap := Snapshot{
		Flags: model.FlagMap{
			"ZEC": {Risk: "rug_detected", UpdatedAt: "2025-04-01T10:30:00Z"},
			"ABC": {Risk: "safe", UpdatedAt: "2025-04-01T10:31:15Z"},
		},
		Alerts: []report.Group{{
			Symbol: "ZEC",
			Kind:   model.AlertKindRisk,
			Count:  2,
			Last:   model.AlertRecord{Timestamp: time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC), Risk: model.RiskRugDetected},
		}},
		LoadedAt: time.Date(2025, 4, 1, 10, 31, 20, 0, time.UTC),
	}
	updated, cmd := m.Update(snapshotMsg(snap))
	if cmd != nil {
		t.Fatalf("unexpected command after snapshot")
	}

	view := updated.View()
	for _, want := range []string{"RUG_DETECTED", "SAFE", "10:30:00", "10:31:15", "ZEC", "risk", "refreshed 10:31:20"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Index(view, "ABC") > strings.Index(view, "ZEC") {
		t.Fatalf("flags not sorted:\n%s", view)
	}
}

func TestModelKeys(t *testing.T) {
	loads := 0
	m := NewModel(func() Snapshot { loads++; return Snapshot{} }, time.Second)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatalf("expected reload command")
	}
	if _, ok := cmd().(snapshotMsg); !ok || loads != 1 {
		t.Fatalf("reload did not call loader (loads=%d)", loads)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}

func TestModelEmptyState(t *testing.T) {
	view := NewModel(nil, 0).View()
	if !strings.Contains(view, "No flags active") || !strings.Contains(view, "refreshed never") {
		t.Fatalf("empty view:\n%s", view)
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	flagsPath := filepath.Join(dir, "flags.json")
	alertsPath := filepath.Join(dir, "alerts.csv")
	if err := os.WriteFile(flagsPath, []byte(`{"ZEC":{"risk":"critical","updated_at":"2025-04-01T10:30:00Z"}}`), 0o644); err != nil {
		t.Fatalf("write flags: %v", err)
	}
	row := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339Nano) + ",risk,ZEC,uniswap,bsc,critical,45000,0.015,,,\nbroken\n"
	if err := os.WriteFile(alertsPath, []byte(row), 0o644); err != nil {
		t.Fatalf("write alerts: %v", err)
	}

	snap := FileLoader(flagsPath, alertsPath, 24*time.Hour)()
	if snap.LoadError != nil {
		t.Fatalf("load error: %v", snap.LoadError)
	}
	if snap.Flags["ZEC"].Risk != "critical" {
		t.Fatalf("flags = %+v", snap.Flags)
	}
	if len(snap.Alerts) != 1 || snap.Alerts[0].Count != 1 || snap.Skipped != 1 {
		t.Fatalf("alerts = %+v skipped = %d", snap.Alerts, snap.Skipped)
	}
}
