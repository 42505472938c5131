package server

import (
	"feed-lab/domain"
	"feed-lab/observability"
	"feed-lab/repositories"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the three operations to their routes.
// metrics may be nil, in which case no instrumentation is installed.
func NewRouter(log *slog.Logger, repository repositories.IPostRepository, metrics *observability.Metrics) http.Handler {
	var onCreated PostCreatedHook
	if metrics != nil {
		onCreated = func(domain.Post) { metrics.IncrPostsCreated() }
	}

	router := mux.NewRouter()
	router.Handle("/feed", NewFeedOperation(repository)).Methods(http.MethodGet).Name("feed")
	router.Handle("/post", NewCreateOperation(repository, onCreated)).Methods(http.MethodPost).Name("make_post")
	router.Handle("/post/{id}", NewGetOperation(repository)).Methods(http.MethodGet).Name("post")

	var notFound, notAllowed http.Handler = statusHandler(http.StatusNotFound), statusHandler(http.StatusMethodNotAllowed)
	if metrics != nil {
		router.Use(metrics.Instrument)
		notFound, notAllowed = metrics.Instrument(notFound), metrics.Instrument(notAllowed)
	}
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = notAllowed

	return withAccessLog(log, withJSONContentType(router))
}

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
}
