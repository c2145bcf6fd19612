package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/killallgit/player-core/api"
	"github.com/killallgit/player-core/api/types"
	"github.com/killallgit/player-core/internal/cache"
	"github.com/killallgit/player-core/internal/catalog"
	"github.com/killallgit/player-core/internal/playback"
	"github.com/killallgit/player-core/internal/store"
	"github.com/killallgit/player-core/pkg/config"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the player server",
	Long: `Start the podcast player core server with the configured settings.

Example:
  player-core serve
  player-core serve --port 9090
  player-core serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	// Persistent store: SQLite when a path is configured, in-memory otherwise.
	var kv store.Store
	if cfg.Database.Path != "" {
		sqliteStore, err := store.OpenSQLite(cfg.Database.Path, cfg.Database.LogQueries)
		if err != nil {
			return fmt.Errorf("opening store at %s: %w", cfg.Database.Path, err)
		}
		kv = sqliteStore
	} else {
		log.Printf("[WARN] No database path configured, using in-memory store")
		kv = store.NewMemoryStore()
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Printf("[WARN] Closing store: %v", err)
		}
	}()

	ttlCache := cache.New(kv)

	catalogClient := catalog.NewClient(catalog.Config{
		RequestsPerMinute: cfg.Catalog.RequestsPerMinute,
		BurstSize:         cfg.Catalog.Burst,
		Timeout:           cfg.Catalog.Timeout,
		MaxRetries:        cfg.Catalog.MaxRetries,
		RetryBackoff:      cfg.Catalog.RetryBackoff,
		UserAgent:         cfg.Catalog.UserAgent,
		BaseURL:           cfg.Catalog.BaseURL,
		PopularURL:        cfg.Catalog.PopularURL,
		SearchTTL:         cfg.Cache.SearchTTL,
		LookupTTL:         cfg.Cache.LookupTTL,
		PopularTTL:        cfg.Cache.PopularTTL,
	}, ttlCache)

	player := playback.NewEngine(playback.NewNoopMediaEngine(), kv, playback.Config{
		SkipBack:          cfg.Playback.SkipBack,
		SkipForward:       cfg.Playback.SkipForward,
		LoadTimeout:       cfg.Playback.LoadTimeout,
		ReadyPollInterval: cfg.Playback.ReadyPollInterval,
		SessionMaxAge:     cfg.Playback.SessionMaxAge,
	})
	if err := player.RestoreSession(); err != nil {
		log.Printf("[WARN] Could not restore playback session: %v", err)
	}

	srv := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	srv.SetDependencies(&types.Dependencies{
		Store:   kv,
		Cache:   ttlCache,
		Catalog: catalogClient,
		Player:  player,
	})
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Server listening at %s:%d", serverHost, serverPort)

	select {
	case <-stop:
		log.Printf("[INFO] Shutting down server...")
	case err := <-serverErr:
		log.Printf("[ERROR] %v", err)
	}

	player.Destroy()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Printf("[INFO] Server gracefully stopped")
	return nil
}
