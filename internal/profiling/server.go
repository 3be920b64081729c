package profiling

import (
	"context"
	"net/http"
	"net/http/pprof"
	"time"

	"esglens/internal"
	"esglens/internal/config"
)

// NewHandler returns a mux exposing the pprof endpoints under /debug/pprof/
func NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// Start serves pprof on its own port when enabled and stops when ctx is done
func Start(ctx context.Context, cfg config.ProfilingConfig) {
	if !cfg.Enabled {
		return
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		internal.DefaultLogger.Info("[Profiling] Server starting on :%s", cfg.Port)
		internal.DefaultLogger.Info("[Profiling] View profiles: go tool pprof -http=:8081 http://localhost:%s/debug/pprof/profile?seconds=30", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			internal.DefaultLogger.Error("[Profiling] pprof server failed: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
