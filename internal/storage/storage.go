package storage

import (
	"context"
	"errors"

	"liquidityGuard/internal/model"
)

// AlertSink appends alert records to durable storage.
type AlertSink interface {
	AppendAlert(ctx context.Context, rec model.AlertRecord) error
}

// FlagSink publishes the latest risk flag for a symbol.
type FlagSink interface {
	PutFlag(ctx context.Context, symbol string, flag model.Flag) error
}

// AlertSinks fans a record out to every sink; all sinks are attempted.
type AlertSinks []AlertSink

func (s AlertSinks) AppendAlert(ctx context.Context, rec model.AlertRecord) error {
	var errs []error
	for _, sink := range s {
		if err := sink.AppendAlert(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FlagSinks fans a flag out to every sink; all sinks are attempted.
type FlagSinks []FlagSink

func (s FlagSinks) PutFlag(ctx context.Context, symbol string, flag model.Flag) error {
	var errs []error
	for _, sink := range s {
		if err := sink.PutFlag(ctx, symbol, flag); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
