package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"liquidityGuard/internal/report"
	"liquidityGuard/internal/storage"
)

// FileLoader reads the flags file and the alert log on every refresh.
func FileLoader(flagsPath, alertsPath string, window time.Duration) Loader {
	return func() Snapshot {
		now := time.Now()
		snap := Snapshot{LoadedAt: now}

		flags, err := storage.LoadFlags(flagsPath)
		if err != nil {
			snap.LoadError = fmt.Errorf("load flags: %w", err)
		}
		snap.Flags = flags

		records, skipped, err := storage.ReadAlertLog(alertsPath)
		if err != nil && snap.LoadError == nil {
			snap.LoadError = fmt.Errorf("read alert log: %w", err)
		}
		snap.Alerts = report.Summarize(records, now, window)
		snap.Skipped = skipped
		return snap
	}
}

// Run shows the dashboard until the user quits or ctx is canceled.
func Run(ctx context.Context, load Loader, refresh time.Duration) error {
	p := tea.NewProgram(NewModel(load, refresh), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
