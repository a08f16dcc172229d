package main

import (
	"log"

	"github.com/spf13/cobra"

	"example.com/glams-api/internal/app"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.LoadConfig()

			srv, cleanup, err := app.NewServer(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			log.Printf("listening on :%s", cfg.Port)
			return srv.Run(":" + cfg.Port)
		},
	}
}
