package main

import (
	"context"
	"log/slog"

	"accounts"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the database to the latest version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				db     *gorm.DB
				logger *slog.Logger
			)

			return runOneShot(cmd.Context(), fx.Options(injectInfra(), fx.Populate(&db, &logger)), func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return errors.Wrap(err, "failed to get sql.DB")
				}

				goose.SetBaseFS(accounts.Migrations)
				if err := goose.SetDialect("postgres"); err != nil {
					return errors.Wrap(err, "could not set goose dialect to postgres")
				}
				if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
					return errors.Wrap(err, "could not migrate postgres")
				}

				version, err := goose.GetDBVersionContext(ctx, sqlDB)
				if err != nil {
					return errors.Wrap(err, "could not read schema version")
				}
				logger.Info("Database migrated", slog.Int64("version", version))

				return nil
			})
		},
	}
}

// runOneShot starts an fx app without the HTTP delivery, runs fn and stops it.
func runOneShot(ctx context.Context, opts fx.Option, fn func(ctx context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	app := fx.New(opts, fx.NopLogger)
	if err := app.Err(); err != nil {
		return errors.WithStack(err)
	}

	if err := app.Start(ctx); err != nil {
		return errors.WithStack(err)
	}

	runErr := fn(ctx)

	if err := app.Stop(context.WithoutCancel(ctx)); err != nil && runErr == nil {
		return errors.WithStack(err)
	}

	return runErr
}
