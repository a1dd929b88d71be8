package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/notaspie/notaspie/config"
	"github.com/notaspie/notaspie/pkg/auth"
	"github.com/notaspie/notaspie/pkg/checker"
	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/server"
	"github.com/notaspie/notaspie/pkg/storage"
)

const shutdownTimeout = 30 * time.Second

// run is the entrypoint for the notaspie server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring notaspie: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting notaspie server version %s", config.VersionString)

	config.SetLogLevel(cfg)

	shutdownTracing, err := setupTracing(context.Background())
	if err != nil {
		log.Fatalf("Error setting up tracing: %s", err)
	}

	appState := NewAppState(cfg)
	srv := server.Create(appState)
	setupSignalHandler(srv, shutdownTracing)

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// NewAppState creates an AppState struct from the config file / ENV, connects
// the grammar checker and opens the document storage.
func NewAppState(cfg *config.Config) *models.AppState {
	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Error opening document storage: %s", err)
	}
	log.Info("Using document storage: ", cfg.Storage.Type)

	log.Info("Using grammar checker: ", cfg.Checker.URL)

	return &models.AppState{
		Config:  cfg,
		Checker: checker.NewClient(cfg.Checker),
		Storage: store,
	}
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := config.Dump(cfg)
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Print(string(out))
		os.Exit(0)
	}
	if generateKey {
		token, err := auth.GenerateJWT(cfg)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(token)
		os.Exit(0)
	}
}

// setupSignalHandler shuts the server down gracefully on termination and
// flushes pending traces.
func setupSignalHandler(srv *http.Server, shutdownTracing func(context.Context) error) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info("Shutting down")
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Errorf("Error flushing traces: %v", err)
		}
	}()
}
