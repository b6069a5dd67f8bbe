package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"liquidityGuard/internal/model"
)

// AlertLogColumns is the column order of the alert log.
var AlertLogColumns = []string{"ts", "kind", "symbol", "dex", "chain", "risk", "liquidity", "ratio", "ch5m", "ch1h", "ch24h"}

// CSVAlertLog appends alert records as CSV rows.
type CSVAlertLog struct {
	path string
	mu   sync.Mutex
}

func NewCSVAlertLog(path string) *CSVAlertLog {
	return &CSVAlertLog{path: path}
}

// AppendAlert appends one row. Missing numeric fields are written empty.
func (l *CSVAlertLog) AppendAlert(_ context.Context, rec model.AlertRecord) error {
	dir := filepath.Dir(l.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create alert log dir: %w", err)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open alert log: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(EncodeAlertRecord(rec)); err != nil {
		return fmt.Errorf("write alert row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush alert log: %w", err)
	}
	return nil
}

// EncodeAlertRecord renders rec in AlertLogColumns order.
func EncodeAlertRecord(rec model.AlertRecord) []string {
	return []string{
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		string(rec.Kind),
		rec.Symbol,
		rec.Dex,
		rec.Chain,
		string(rec.Risk),
		formatOptional(rec.Liquidity),
		formatOptional(rec.Ratio),
		formatOptional(rec.Change5m),
		formatOptional(rec.Change1h),
		formatOptional(rec.Change24h),
	}
}

// DecodeAlertRecord parses a row written by EncodeAlertRecord.
func DecodeAlertRecord(row []string) (model.AlertRecord, error) {
	if len(row) != len(AlertLogColumns) {
		return model.AlertRecord{}, fmt.Errorf("alert row has %d columns, want %d", len(row), len(AlertLogColumns))
	}
	ts, err := time.Parse(time.RFC3339Nano, row[0])
	if err != nil {
		return model.AlertRecord{}, fmt.Errorf("parse alert ts: %w", err)
	}
	return model.AlertRecord{
		Timestamp: ts,
		Kind:      model.AlertKind(row[1]),
		Symbol:    row[2],
		Dex:       row[3],
		Chain:     row[4],
		Risk:      model.RiskLevel(row[5]),
		Liquidity: parseOptional(row[6]),
		Ratio:     parseOptional(row[7]),
		Change5m:  parseOptional(row[8]),
		Change1h:  parseOptional(row[9]),
		Change24h: parseOptional(row[10]),
	}, nil
}

// ReadAlertLog loads every well-formed row of the alert log. Malformed rows are skipped
// and counted; a missing file yields no records.
func ReadAlertLog(path string) ([]model.AlertRecord, int, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open alert log: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("read alert log: %w", err)
	}

	records := make([]model.AlertRecord, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		rec, err := DecodeAlertRecord(row)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseOptional(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
