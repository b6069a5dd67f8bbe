package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"liquidityGuard/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS liquidity_alerts (
	id BIGSERIAL PRIMARY KEY,
	ts TIMESTAMPTZ NOT NULL,
	kind TEXT NOT NULL,
	symbol TEXT NOT NULL,
	dex TEXT NOT NULL,
	chain TEXT NOT NULL,
	risk TEXT NOT NULL,
	liquidity_usd DOUBLE PRECISION,
	liq_mcap_ratio DOUBLE PRECISION,
	change_5m DOUBLE PRECISION,
	change_1h DOUBLE PRECISION,
	change_24h DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS liquidity_alerts_symbol_ts_idx ON liquidity_alerts (symbol, ts);
CREATE TABLE IF NOT EXISTS liquidity_flags (
	symbol TEXT PRIMARY KEY,
	risk TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

// Store mirrors alerts and flags into Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the alert and flag tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// AppendAlert inserts one alert record.
func (s *Store) AppendAlert(ctx context.Context, rec model.AlertRecord) error {
	return s.AppendAlerts(ctx, []model.AlertRecord{rec})
}

// AppendAlerts inserts alert records in one batch.
func (s *Store) AppendAlerts(ctx context.Context, records []model.AlertRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
			INSERT INTO liquidity_alerts (
				ts, kind, symbol, dex, chain, risk,
				liquidity_usd, liq_mcap_ratio, change_5m, change_1h, change_24h
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`,
			rec.Timestamp.UTC(),
			string(rec.Kind),
			rec.Symbol,
			rec.Dex,
			rec.Chain,
			string(rec.Risk),
			rec.Liquidity,
			rec.Ratio,
			rec.Change5m,
			rec.Change1h,
			rec.Change24h,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert alert: %w", err)
		}
	}
	return nil
}

// PutFlag upserts the latest flag for symbol.
func (s *Store) PutFlag(ctx context.Context, symbol string, flag model.Flag) error {
	updatedAt, err := time.Parse(time.RFC3339Nano, flag.UpdatedAt)
	if err != nil {
		updatedAt = time.Now().UTC()
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO liquidity_flags (symbol, risk, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol) DO UPDATE
		SET risk = EXCLUDED.risk, updated_at = EXCLUDED.updated_at
	`, symbol, flag.Risk, updatedAt)
	if err != nil {
		return fmt.Errorf("upsert flag: %w", err)
	}
	return nil
}

// LoadFlags returns every stored flag.
func (s *Store) LoadFlags(ctx context.Context) (model.FlagMap, error) {
	rows, err := s.pool.Query(ctx, `SELECT symbol, risk, updated_at FROM liquidity_flags`)
	if err != nil {
		return nil, fmt.Errorf("query flags: %w", err)
	}
	defer rows.Close()

	flags := model.FlagMap{}
	for rows.Next() {
		var (
			symbol    string
			risk      string
			updatedAt time.Time
		)
		if err := rows.Scan(&symbol, &risk, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan flag: %w", err)
		}
		flags[symbol] = model.Flag{Risk: risk, UpdatedAt: updatedAt.UTC().Format(time.RFC3339)}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flags: %w", err)
	}
	return flags, nil
}
