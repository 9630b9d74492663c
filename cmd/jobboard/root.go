package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/jobportal/jobboard/internal/infrastructure/db/mongo"
	"github.com/jobportal/jobboard/internal/pkg/config"
	"github.com/jobportal/jobboard/pkg/logger"
)

const serviceName = "jobboard"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "jobboard",
		Short:        "Job board web service",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCreateUserCmd())
	return root
}

// bootstrap loads configuration and initialises the process logger.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	return cfg, log, nil
}

// openMongo connects and makes sure every index exists.
func openMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*mongodrv.Client, *mongodrv.Database, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, nil, err
	}
	if err := mongo.EnsureIndexes(ctx, db, mongo.IndexOptions{UniqueApplications: cfg.Mongo.UniqueApplications}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Bool("unique_applications", cfg.Mongo.UniqueApplications).Msg("mongodb ready")
	return client, db, nil
}
