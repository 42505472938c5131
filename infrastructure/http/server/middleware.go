package server

import (
	"log/slog"
	"net/http"
	"time"
)

const contentTypeJSON = "application/json"

// responseRecorder remembers the status written through it.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	// stampJSON sets the JSON content type when the status line goes out.
	stampJSON bool
}

func (w *responseRecorder) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code
	if w.stampJSON {
		w.Header().Set("Content-Type", contentTypeJSON)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// flush sends the status line for handlers that wrote nothing at all.
func (w *responseRecorder) flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
}

// withJSONContentType applies the response content-type policy to every
// response regardless of status code, overriding whatever the handler set.
func withJSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK, stampJSON: true}
		next.ServeHTTP(rec, r)
		rec.flush()
	})
}

// withAccessLog emits one line per request once the response is complete.
func withAccessLog(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
