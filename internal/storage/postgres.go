package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"divequote/internal/config"
	"divequote/internal/domain"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PostgresStorage reads the service catalog from the services table.
type PostgresStorage struct {
	db     *sqlx.DB
	logger *zap.Logger
}

type serviceRow struct {
	Key                string          `db:"key"`
	DisplayName        string          `db:"display_name"`
	Description        string          `db:"description"`
	Mode               string          `db:"mode"`
	Rate               decimal.Decimal `db:"rate"`
	IncludesAnodeStep  bool            `db:"includes_anode_step"`
	PaintAffectsPrice  bool            `db:"paint_affects_price"`
	GrowthAffectsPrice bool            `db:"growth_affects_price"`
	MinimumCharge      decimal.Decimal `db:"minimum_charge"`
	Steps              string          `db:"steps"`
}

func NewPostgresStorage(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = cfg.ConnectTimeout
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name))

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				_ = db.Close()
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		logger: logger,
	}, nil
}

// DB exposes the underlying handle for migrations.
func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

// LoadServices returns the active services in display order.
func (s *PostgresStorage) LoadServices(ctx context.Context) ([]domain.ServiceDefinition, error) {
	const operation = "storage.LoadServices"

	const query = `
        SELECT key, display_name, description, mode, rate,
               includes_anode_step, paint_affects_price, growth_affects_price,
               minimum_charge, steps
        FROM services
        WHERE active = TRUE
        ORDER BY position, key
    `

	var rows []serviceRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%s: failed to get services: %w", operation, err)
	}

	defs := make([]domain.ServiceDefinition, 0, len(rows))
	for _, row := range rows {
		defs = append(defs, row.toDefinition())
	}

	s.logger.Debug("Loaded services from PostgreSQL", zap.Int("count", len(defs)))
	return defs, nil
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// toDefinition maps a row to a definition. An empty steps column leaves the
// sequence to be derived from the pricing mode.
func (r serviceRow) toDefinition() domain.ServiceDefinition {
	def := domain.ServiceDefinition{
		Key:                r.Key,
		DisplayName:        r.DisplayName,
		Description:        r.Description,
		Mode:               domain.PricingMode(r.Mode),
		Rate:               r.Rate,
		IncludesAnodeStep:  r.IncludesAnodeStep,
		PaintAffectsPrice:  r.PaintAffectsPrice,
		GrowthAffectsPrice: r.GrowthAffectsPrice,
		MinimumCharge:      r.MinimumCharge,
	}
	for _, step := range strings.Split(r.Steps, ",") {
		if step = strings.TrimSpace(step); step != "" {
			def.StepSequence = append(def.StepSequence, domain.Step(step))
		}
	}
	return def
}
