package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskmaster/matrix/internal/adapters/repository"
	"github.com/taskmaster/matrix/internal/application/services"
	"github.com/taskmaster/matrix/internal/infrastructure/config"
	"github.com/taskmaster/matrix/internal/infrastructure/database"
	"github.com/taskmaster/matrix/internal/infrastructure/logger"
	"github.com/taskmaster/matrix/internal/infrastructure/server"
	"github.com/taskmaster/matrix/internal/ports"
)

// Build information, set with -ldflags
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// ConfigFile is the optional config file passed with --config
var ConfigFile string

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migration up completed successfully")
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				if err := m.Down(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migration down completed successfully")
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
				fmt.Fprintf(cmd.OutOrStdout(), "Dirty: %t\n", dirty)
				return nil
			})
		},
	})

	return migrateCmd
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create accounts without going through the HTTP API",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			result, err := createUser(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "User created successfully:")
			fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", result.User.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Email: %s\n", result.User.Email)
			return nil
		},
	}

	createUserCmd.Flags().String("email", "", "User email (required)")
	createUserCmd.Flags().String("password", "", "User password (required)")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Matrix %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Build Date: %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	db, err := database.New(cfg.Database)
	if err != nil {
		appLogger.Errorw("Failed to connect to database", "error", err, "driver", cfg.Database.Driver)
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			appLogger.Errorw("Failed to run migrations", "error", err)
			return err
		}
		appLogger.Info("Database migrations applied")
	}

	srv, err := server.New(cfg, db, appLogger)
	if err != nil {
		appLogger.Errorw("Failed to initialize server", "error", err)
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Infow("Starting Matrix API server",
		"address", cfg.Server.Address(),
		"environment", cfg.App.Environment,
		"driver", cfg.Database.Driver,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Errorw("Server failed", "error", err)
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("Graceful shutdown failed", "error", err)
		return err
	}

	appLogger.Info("Server stopped")
	return nil
}

func withMigrator(fn func(*database.Migrator) error) error {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := database.NewMigrator(db)
	if err != nil {
		return err
	}

	return fn(m)
}

func createUser(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
	}

	codec := services.NewJWTCodec([]byte(cfg.JWT.Secret), cfg.JWT.ExpiresIn, cfg.JWT.Issuer)
	authService := services.NewAuthService(repository.NewUserRepository(db.DB), codec, services.AuthOptions{
		BcryptCost:   cfg.Security.BcryptCost,
		CookieSecure: cfg.Security.CookieSecure,
	}, appLogger)

	if ctx == nil {
		ctx = context.Background()
	}
	return authService.Register(ctx, ports.CredentialsRequest{Email: email, Password: password})
}
