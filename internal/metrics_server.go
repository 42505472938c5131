package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// StartMetricsServer serves the Prometheus endpoint on its own listener so the
// feed's JSON response policy never applies to it.
// The returned server is shut down by the caller.
func StartMetricsServer(log *slog.Logger, address string, metrics http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics)

	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Metrics endpoint available", "url", "http://"+address+"/metrics")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server stopped", "error", err)
		}
	}()
	return server
}
