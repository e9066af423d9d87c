package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/gluto-backend/internal/server"
	"github.com/georgemunganga/gluto-backend/internal/seed"
)

var (
	adminEmail    string
	adminPassword string
)

// gluto seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load starter data",
}

// gluto seed admin
var seedAdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create or reset the bootstrap admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminEmail == "" || adminPassword == "" {
			return errors.New("--email and --password are required")
		}
		return withApp(cmd.Context(), func(ctx context.Context, app *server.App) error {
			_, err := seed.Admin(ctx, app.Users, adminEmail, adminPassword)
			return err
		})
	},
}

// gluto seed catalog
var seedCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Insert the starter categories and products into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, app *server.App) error {
			_, err := seed.Catalog(ctx, app.Categories, app.Catalog)
			return err
		})
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email address")
	seedAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (min 8 characters)")
	seedCmd.AddCommand(seedAdminCmd)
	seedCmd.AddCommand(seedCatalogCmd)
}

func withApp(ctx context.Context, fn func(context.Context, *server.App) error) error {
	cfg, log, err := boot()
	if err != nil {
		return err
	}
	if cfg.StoreDriver == "memory" {
		return errors.New("seeding the memory store has no lasting effect; set STORE_DRIVER")
	}
	app, err := server.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())
	return fn(ctx, app)
}
