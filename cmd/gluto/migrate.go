package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/gluto-backend/internal/database"
)

// gluto migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations (postgres) or create indexes (mongo)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		switch cfg.StoreDriver {
		case "postgres":
			db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.MigratePostgres(db); err != nil {
				return err
			}
		case "mongo":
			client, db, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
			if err != nil {
				return err
			}
			defer client.Disconnect(ctx)
			if err := database.EnsureMongoIndexes(ctx, db); err != nil {
				return err
			}
		default:
			return fmt.Errorf("store driver %q has no schema to migrate", cfg.StoreDriver)
		}
		log.Info("migrations applied", "store", cfg.StoreDriver)
		return nil
	},
}
