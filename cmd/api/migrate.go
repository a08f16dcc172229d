package main

import (
	"log"

	"github.com/spf13/cobra"

	"example.com/glams-api/internal/app"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.LoadConfig()
			db, err := app.OpenDB(cfg)
			if err != nil {
				return err
			}
			if err := app.Migrate(db); err != nil {
				return err
			}
			log.Println("migrations applied")
			return nil
		},
	}
}
