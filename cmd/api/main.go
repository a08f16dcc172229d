package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	root := &cobra.Command{
		Use:   "glams-api",
		Short: "Glams storefront and admin API",
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedAdminCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
