// Package server exposes the feed over HTTP.
// Each route is served by its own operation type sharing one post repository.
package server

import (
	"encoding/json"
	"feed-lab/domain"
	"feed-lab/errors"
	"feed-lab/repositories"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// PostCreatedHook is notified after a post has been appended.
type PostCreatedHook func(post domain.Post)

// FeedOperation serves GET /feed.
type FeedOperation struct {
	repository repositories.IPostRepository
}

func NewFeedOperation(repository repositories.IPostRepository) *FeedOperation {
	return &FeedOperation{repository: repository}
}

func (o *FeedOperation) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	posts, err := o.repository.List()
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errors.ErrStorage, err), err)
		return
	}
	bytes, err := json.Marshal(posts)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errors.ErrEncoding, err), err)
		return
	}
	write(w, http.StatusOK, bytes)
}

// CreateOperation serves POST /post.
// The caller-supplied id and created_at are stored verbatim.
type CreateOperation struct {
	repository repositories.IPostRepository
	onCreated  PostCreatedHook
}

func NewCreateOperation(repository repositories.IPostRepository, onCreated PostCreatedHook) *CreateOperation {
	return &CreateOperation{repository: repository, onCreated: onCreated}
}

func (o *CreateOperation) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errors.ErrBodyRead, err), err)
		return
	}
	post, err := domain.DecodePost(payload)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err), err)
		return
	}
	if err = o.repository.Add(post); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errors.ErrStorage, err), err)
		return
	}
	if o.onCreated != nil {
		o.onCreated(post)
	}
	// The payload is echoed exactly as received.
	write(w, http.StatusCreated, payload)
}

// GetOperation serves GET /post/{id}.
type GetOperation struct {
	repository repositories.IPostRepository
}

func NewGetOperation(repository repositories.IPostRepository) *GetOperation {
	return &GetOperation{repository: repository}
}

func (o *GetOperation) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		// No {id} variable matched for this request.
		write(w, errors.StatusCode(errors.ErrMissingRouteParam), nil)
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errors.ErrInvalidPostID, err), err)
		return
	}
	post, found, err := o.repository.Find(id)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errors.ErrStorage, err), err)
		return
	}
	if !found {
		write(w, errors.StatusCode(errors.ErrPostNotFound), nil)
		return
	}
	bytes, err := json.Marshal(post)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errors.ErrEncoding, err), err)
		return
	}
	write(w, http.StatusOK, bytes)
}

// writeError picks the status from the classified error and uses the
// underlying error's description as the body.
func writeError(w http.ResponseWriter, classified, cause error) {
	write(w, errors.StatusCode(classified), []byte(cause.Error()))
}

// write never touches Content-Type: the response policy stamps it.
func write(w http.ResponseWriter, status int, body []byte) {
	w.WriteHeader(status)
	if len(body) > 0 {
		_, _ = w.Write(body)
	}
}
