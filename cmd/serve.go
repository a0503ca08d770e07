package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/loader"
	"github.com/sells-group/screening-cli/internal/model"
	"github.com/sells-group/screening-cli/internal/screen"
	"github.com/sells-group/screening-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the screening HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		eng, err := newEngine()
		if err != nil {
			return err
		}

		audit, err := openAudit(ctx)
		if err != nil {
			zap.L().Warn("audit store unavailable", zap.Error(err))
		}
		if audit != nil {
			defer audit.Close()
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(eng, audit),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(eng *screen.Engine, audit store.AuditStore) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/lookup", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name       string  `json:"name"`
			Threshold  float64 `json:"threshold"`
			MaxResults int     `json:"max_results"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		outcome, err := eng.Lookup(req.Name, lookupOptions(cfg.Match, req.Threshold, req.MaxResults))
		if err != nil {
			zap.L().Error("lookup failed", zap.String("name", req.Name), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}

		if audit != nil {
			if _, err := audit.RecordLookup(r.Context(), outcome); err != nil {
				zap.L().Warn("audit record failed", zap.String("query", req.Name), zap.Error(err))
			}
		}

		writeJSON(w, http.StatusOK, outcome)
	})

	r.Get("/v1/companies", func(w http.ResponseWriter, r *http.Request) {
		var filter model.Status
		if s := r.URL.Query().Get("status"); s != "" {
			parsed, ok := model.ParseStatus(s)
			if !ok {
				writeError(w, http.StatusBadRequest, "unknown status filter")
				return
			}
			filter = parsed
		}

		writeJSON(w, http.StatusOK, eng.List(filter))
	})

	r.Get("/v1/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, eng.Stats())
	})

	r.Post("/v1/reload", func(w http.ResponseWriter, r *http.Request) {
		records, err := loader.LoadFile(cfg.Lists.Path, loaderOptions(cfg.Lists))
		if err != nil {
			zap.L().Error("reload failed", zap.String("path", cfg.Lists.Path), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "reload failed")
			return
		}
		eng.Swap(records)
		zap.L().Info("reference lists reloaded", zap.Int("companies", len(records)))
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "reloaded",
			"companies": len(records),
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
