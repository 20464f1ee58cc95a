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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/marsdash/internal/config"
	"github.com/ziadkadry99/marsdash/internal/dashboard"
	"github.com/ziadkadry99/marsdash/internal/db"
	"github.com/ziadkadry99/marsdash/internal/journal"
	"github.com/ziadkadry99/marsdash/internal/nasa"
	"github.com/ziadkadry99/marsdash/internal/proxy"
	"github.com/ziadkadry99/marsdash/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the dashboard and the photo API proxy",
	Long:  `Starts the HTTP server: the live dashboard at /, the proxy at /rovers/{name}, the fetch journal API and the public static files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}

		var database *db.DB
		if cfg.Journal.Path != "" {
			database, err = db.Open(cfg.Journal.Path)
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			defer database.Close()
		}

		srv, err := buildServer(cfg, newUpstreamClient(cfg), database)
		if err != nil {
			return err
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "marsdash server v%s starting on port %d\n", Version, srv.ServerConfig().Port)
		if verbose {
			fmt.Fprintf(os.Stderr, "  Upstream: %s\n", cfg.Upstream.BaseURL)
			fmt.Fprintf(os.Stderr, "  Proxy for sessions: %s\n", cfg.ProxyBaseURL())
			fmt.Fprintf(os.Stderr, "  Journal: %s\n", cfg.Journal.Path)
			fmt.Fprintf(os.Stderr, "  Static: %s\n", cfg.Static.Dir)
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// buildServer wires every route onto a new server. database may be nil, in
// which case fetches are not journaled and the journal API is absent.
func buildServer(cfg *config.Config, upstream *nasa.Client, database *db.DB) (*server.Server, error) {
	srv := server.New(server.Config{
		Port:     cfg.Port,
		AllowAll: cfg.CORS.AllowAll,
	})
	r := srv.Router()

	var recorder proxy.Recorder
	var journalStore *journal.Store
	if database != nil {
		journalStore = journal.NewStore(database)
		recorder = journalStore
	}

	// The relay has no deadline of its own; upstream.timeout bounds it.
	proxy.New(upstream, recorder, cfg.Dashboard.DefaultSol).RegisterRoutes(r)

	if journalStore != nil {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			journal.RegisterRoutes(r, journalStore)
		})
	}

	dash, err := dashboard.New(dashboard.Options{
		Rovers:       cfg.Dashboard.Rovers,
		DefaultSol:   cfg.Dashboard.DefaultSol,
		Intro:        cfg.Dashboard.Intro,
		ProxyBaseURL: cfg.ProxyBaseURL(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating dashboard: %w", err)
	}
	dash.RegisterRoutes(r)

	if cfg.Static.Dir != "" {
		server.MountStatic(r, cfg.Static.Dir, cfg.Static.Exclude)
	}

	return srv, nil
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", config.DefaultPort, "Port to listen on")
	rootCmd.AddCommand(serverCmd)
}
