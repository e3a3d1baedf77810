// Package postgres implements the account repositories on GORM and PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"accounts/config"
	"accounts/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry `optional:"true"`
}

// New opens the primary (and any replicas) and ties the pool to the fx lifecycle.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	var reg prometheus.Registerer
	if params.Registry != nil {
		reg = params.Registry
	}

	db = configure(db, newQueryLogger(params.Logger, params.Config, reg))

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	if reg != nil {
		reg.MustRegister(collectors.NewDBStatsCollector(sqlDB, "accounts"))
	}

	monitor := &poolMonitor{
		logger:   params.Logger,
		db:       sqlDB,
		interval: params.Config.Database.PoolMonitorInterval,
		warnWait: params.Config.Database.PoolWaitWarnThreshold,
	}
	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			go monitor.run(monitorCtx)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// configure applies the session settings every accounts connection uses.
// Unique, foreign key and check violations surface as GORM sentinel errors.
// Multi-statement writes go through TransactionManager.Execute, so GORM's
// implicit per-statement transaction is off.
func configure(db *gorm.DB, log *queryLogger) *gorm.DB {
	db.Config.TranslateError = true

	return db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 log,
	})
}

// poolMonitor reports connection pool contention between ticks.
type poolMonitor struct {
	logger   *slog.Logger
	db       *sql.DB
	interval time.Duration
	warnWait time.Duration
}

func (m *poolMonitor) run(ctx context.Context) {
	if m.logger == nil || m.db == nil || m.interval <= 0 {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	prev := m.db.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := m.db.Stats()
			m.report(ctx, prev, cur)
			prev = cur
		}
	}
}

func (m *poolMonitor) report(ctx context.Context, prev, cur sql.DBStats) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return
	}

	waited := cur.WaitDuration - prev.WaitDuration
	attrs := []slog.Attr{
		slog.Int64("waitCountDelta", waits),
		slog.Duration("waitDurationDelta", waited),
		slog.Duration("avgWait", waited/time.Duration(waits)),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("openConns", cur.OpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	}

	level, msg := slog.LevelDebug, "Postgres pool wait observed"
	if waited >= m.warnWait {
		level, msg = slog.LevelWarn, "Postgres pool wait detected"
	}
	m.logger.LogAttrs(ctx, level, msg, attrs...)
}
