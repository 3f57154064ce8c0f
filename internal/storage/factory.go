package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage/consul"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage/memory"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage/postgres"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage/sqlite"
)

// Supported drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverConsul   = "consul"
)

// Options selects and configures a back end.
type Options struct {
	Driver string
	DSN    string

	ConsulAddress    string
	ConsulToken      string
	ConsulDatacenter string
	ConsulPrefix     string

	// BreakerFailures is the number of consecutive failures that opens the
	// breaker of a network back end.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// NewRecordStore builds the record store named by opts.Driver. The store
// still has to be opened.
func NewRecordStore(ctx context.Context, opts Options, logger *zap.Logger) (RecordStore, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return memory.NewRecordStore(), nil
	case DriverSQLite:
		store, err := sqlite.NewRecordStore(opts.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverPostgres:
		store, err := postgres.NewRecordStore(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		return GuardRecords(store, newBreaker("records-postgres", opts, logger)), nil
	default:
		return nil, fmt.Errorf("unknown record store driver %q", opts.Driver)
	}
}

// NewKV builds the KV named by opts.Driver.
func NewKV(ctx context.Context, opts Options, logger *zap.Logger) (KV, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return memory.NewKV(), nil
	case DriverSQLite:
		kv, err := sqlite.NewKV(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case DriverConsul:
		kv, err := consul.NewKV(consul.Config{
			Address:    opts.ConsulAddress,
			Token:      opts.ConsulToken,
			Datacenter: opts.ConsulDatacenter,
			Prefix:     opts.ConsulPrefix,
		})
		if err != nil {
			return nil, err
		}
		return GuardKV(kv, newBreaker("kv-consul", opts, logger)), nil
	default:
		return nil, fmt.Errorf("unknown kv driver %q", opts.Driver)
	}
}

func newBreaker(name string, opts Options, logger *zap.Logger) *resilience.Breaker {
	failures := opts.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	return resilience.New(name, resilience.Settings{
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("storage breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}
