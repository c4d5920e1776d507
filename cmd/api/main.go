package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskmaster/matrix/cmd/api/commands"
)

// @title Eisenhower Matrix API
// @version 1.0
// @description Task tracker organised by urgency and importance.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description Session cookie set by login or register.

func main() {
	rootCmd := &cobra.Command{
		Use:   "matrix",
		Short: "Eisenhower Matrix API server",
		Long:  `Matrix is a task tracker that sorts work into the four quadrants of the Eisenhower Matrix, with per-user task ownership behind a session cookie.`,
	}

	rootCmd.PersistentFlags().StringVar(&commands.ConfigFile, "config", "", "Path to a config file (yaml, json or toml)")

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
