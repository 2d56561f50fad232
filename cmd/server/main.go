package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"church_backend/internal/config"
	"church_backend/internal/database"
	"church_backend/internal/router"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "church-backend",
		Short: "Church management API",
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Path to the .env file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServer,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:       "migrate [up|down|status|reset]",
		Short:     "Run database migrations",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"up", "down", "status", "reset", "up-to", "down-to"},
		RunE:      runMigrate,
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	utils.InitLogger(cfg.Log.Level, cfg.Log.Pretty)
	return cfg, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := database.Open(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.Migrate(cmd.Context(), db, args[0], args[1:]...)
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	utils.LogInfo("Database initialized", map[string]interface{}{"host": cfg.Database.Host, "name": cfg.Database.Name})

	gin.SetMode(cfg.Server.GinMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	app, err := router.Setup(engine, db, cfg)
	if err != nil {
		return fmt.Errorf("setting up routes: %w", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Server.Port, "api": "/api/v2"})
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		utils.LogInfo("Start shutdown...")

		// give outstanding requests a deadline for completion
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			utils.LogError(err, "Could not stop server gracefully")
			if err := server.Close(); err != nil {
				return fmt.Errorf("could not force stop server: %w", err)
			}
		}
	}

	// bulk messages accepted before shutdown are still delivered
	app.Messages.Wait()
	utils.LogInfo("Server stopped")
	return nil
}
