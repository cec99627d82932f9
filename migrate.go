package main

import (
	"errors"

	"github.com/spf13/cobra"

	"parcel-delivery/config"
	"parcel-delivery/database"
	"parcel-delivery/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the request audit log table in PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Configure(cfg.App.Env)

			if !cfg.LogDB.Enabled() {
				return errors.New("LOG_DB_HOST is not set, nothing to migrate")
			}

			logger.Info("🚀 Running request log migrations...")
			db, err := database.InitLogDB(cfg.LogDB)
			if err != nil {
				return err
			}
			defer database.NewRequestLogStore(db).Close()

			return database.Migrate(db)
		},
	}
}
