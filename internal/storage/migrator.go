package storage

import (
	"context"
	"fmt"

	"divequote/internal/storage/migrations"

	"go.uber.org/zap"
)

func (s *PostgresStorage) RunMigrations(ctx context.Context) error {
	const operation = "storage.RunMigrations"

	s.logger.Info("Running database migrations...")

	if err := migrations.Up(ctx, s.DB()); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	s.logger.Info("Database migrations completed successfully")
	return nil
}

func (s *PostgresStorage) RollbackMigration(ctx context.Context) error {
	const operation = "storage.RollbackMigration"

	s.logger.Info("Rolling back last migration...")

	if err := migrations.Down(ctx, s.DB()); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	s.logger.Info("Migration rollback completed")
	return nil
}

func (s *PostgresStorage) MigrationStatus(ctx context.Context) error {
	const operation = "storage.MigrationStatus"

	s.logger.Info("Checking migration status...", zap.String("database", "postgres"))

	if err := migrations.Status(ctx, s.DB()); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}
