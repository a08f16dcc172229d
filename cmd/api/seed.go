package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"example.com/glams-api/internal/app"
	"example.com/glams-api/internal/service"
)

func seedAdminCmd() *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the back-office admin account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			if name == "" {
				name = strings.SplitN(email, "@", 2)[0]
			}

			cfg := app.LoadConfig()
			db, err := app.OpenDB(cfg)
			if err != nil {
				return err
			}
			if err := app.Migrate(db); err != nil {
				return err
			}

			auth := service.NewAuthService(db, cfg.JWTSecret)
			admin, created, err := auth.Seed(email, name, password)
			if err != nil {
				return err
			}
			if !created {
				log.Printf("admin %s already exists, skipping", admin.Email)
				return nil
			}
			log.Printf("admin %s seeded", admin.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the email local part)")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}
