package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"chatorder/cmd"
	"chatorder/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chatorder",
		Short: "Chat-driven order intake and lifecycle service",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the consumer, HTTP server and scheduled jobs",
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			config := loadConfig()
			db, err := openDB(config)
			if err != nil {
				return err
			}
			return postgres.Migrate(db)
		},
	}
}

func serve() error {
	config := loadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := openDB(config)
	if err != nil {
		return err
	}

	root, err := cmd.NewCompositionRoot(config, db, logger)
	if err != nil {
		return err
	}
	defer root.Close()

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	consumer, err := root.CreateConsumer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	root.CreateHTTPServer().Register(e)

	errCh := make(chan error, 2)
	go func() {
		errCh <- consumer.Run(ctx)
	}()
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errCh:
		logger.Error("component stopped", "error", err)
	}

	if shutdownErr := e.Shutdown(context.Background()); shutdownErr != nil {
		logger.Error("http shutdown failed", "error", shutdownErr)
	}

	return err
}

func loadConfig() cmd.Config {
	// A missing .env file is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")
	return cmd.LoadConfig()
}

func openDB(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost,
		config.DBPort,
		config.DBUser,
		config.DBPassword,
		config.DBName,
		config.DBSslMode,
	)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return db, nil
}
