package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"liquidityGuard/internal/model"
)

func TestCSVAlertLogAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "alerts_liquidity.csv")
	log := NewCSVAlertLog(path)

	ts := time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)
	liq, ratio, ch1h := 45000.0, 0.015, -31.5
	risk := model.AlertRecord{
		Timestamp: ts,
		Kind:      model.AlertKindRisk,
		Symbol:    "ZEC",
		Dex:       "uniswap",
		Chain:     "bsc",
		Risk:      model.RiskCritical,
		Liquidity: &liq,
		Ratio:     &ratio,
		Change1h:  &ch1h,
	}
	unlock := model.AlertRecord{
		Timestamp: ts.Add(time.Minute),
		Kind:      model.AlertKindUnlock,
		Symbol:    "ZEC",
		Dex:       "uniswap",
		Chain:     "bsc",
		Risk:      model.RiskRisky,
	}

	for _, rec := range []model.AlertRecord{risk, unlock} {
		if err := log.AppendAlert(context.Background(), rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0] != "2025-04-01T10:30:00Z,risk,ZEC,uniswap,bsc,critical,45000,0.015,,-31.5," {
		t.Fatalf("risk row = %q", lines[0])
	}
	if lines[1] != "2025-04-01T10:31:00Z,unlock,ZEC,uniswap,bsc,risky,,,,," {
		t.Fatalf("unlock row = %q", lines[1])
	}

	records, skipped, err := ReadAlertLog(path)
	if err != nil {
		t.Fatalf("read alert log: %v", err)
	}
	if skipped != 0 || len(records) != 2 {
		t.Fatalf("records = %d skipped = %d", len(records), skipped)
	}
	if !reflect.DeepEqual(records[0], risk) {
		t.Fatalf("decoded mismatch: %+v != %+v", records[0], risk)
	}
}

func TestReadAlertLogSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.csv")
	content := "garbage\n" +
		"not-a-time,risk,A,dex,chain,critical,1,1,,,\n" +
		"2025-04-01T10:30:00Z,risk,A,dex,chain,critical,1,0.01,,,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, skipped, err := ReadAlertLog(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 1 || skipped != 2 {
		t.Fatalf("records = %d skipped = %d", len(records), skipped)
	}

	records, _, err = ReadAlertLog(filepath.Join(t.TempDir(), "missing.csv"))
	if err != nil || len(records) != 0 {
		t.Fatalf("missing file: %v %d", err, len(records))
	}
}

func TestFlagFilePutFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liquidity_flags.json")
	flags := NewFlagFile(path)
	ctx := context.Background()

	if err := flags.PutFlag(ctx, "MON", model.Flag{Risk: "safe", UpdatedAt: "2025-01-01T00:00:00Z"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := flags.PutFlag(ctx, "ZEC", model.Flag{Risk: "critical", UpdatedAt: "2025-01-01T00:00:00Z"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := flags.PutFlag(ctx, "MON", model.Flag{Risk: "rug_detected", UpdatedAt: "2025-01-01T00:05:00Z"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := LoadFlags(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := model.FlagMap{
		"MON": {Risk: "rug_detected", UpdatedAt: "2025-01-01T00:05:00Z"},
		"ZEC": {Risk: "critical", UpdatedAt: "2025-01-01T00:00:00Z"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("flags = %+v, want %+v", got, want)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("tmp file should not remain: %v", err)
	}
}

func TestFlagFileRecoversFromCorruptContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFlags(path); err == nil {
		t.Fatalf("expected parse error")
	}

	if err := NewFlagFile(path).PutFlag(context.Background(), "HYPE", model.Flag{Risk: "risky"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := LoadFlags(path)
	if err != nil || len(got) != 1 || got["HYPE"].Risk != "risky" {
		t.Fatalf("flags = %+v err = %v", got, err)
	}
}

type recordingSink struct {
	alerts int
	flags  int
	err    error
}

func (r *recordingSink) AppendAlert(context.Context, model.AlertRecord) error {
	r.alerts++
	return r.err
}

func (r *recordingSink) PutFlag(context.Context, string, model.Flag) error {
	r.flags++
	return r.err
}

func TestSinksAttemptEverySink(t *testing.T) {
	failing := &recordingSink{err: errors.New("disk full")}
	ok := &recordingSink{}

	alerts := AlertSinks{failing, ok}
	if err := alerts.AppendAlert(context.Background(), model.AlertRecord{}); err == nil {
		t.Fatalf("expected joined error")
	}
	flags := FlagSinks{failing, ok}
	if err := flags.PutFlag(context.Background(), "X", model.Flag{}); err == nil {
		t.Fatalf("expected joined error")
	}
	if ok.alerts != 1 || ok.flags != 1 {
		t.Fatalf("healthy sink skipped: %+v", ok)
	}
}
