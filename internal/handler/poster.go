package handler

import (
	"errors"
	"net/http"

	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/storage"
)

// PosterHandler redirects poster keys to short-lived URLs on the blob
// store. It sits below the event layer so cached keys keep working
// after an event record changes.
type PosterHandler struct {
	store storage.BlobStore
}

// NewPosterHandler creates a new poster handler
func NewPosterHandler(store storage.BlobStore) *PosterHandler {
	return &PosterHandler{store: store}
}

// Redirect handles GET /api/posters/{key...}
func (h *PosterHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	url, err := h.store.PresignGet(r.Context(), r.PathValue("key"))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			WriteError(w, model.NewNotFoundError("poster"))
		case errors.Is(err, storage.ErrUnavailable):
			WriteError(w, model.NewUnavailableError("poster store unavailable"))
		default:
			WriteError(w, model.NewInternalError("failed to resolve poster"))
		}
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// DevPosters serves poster bytes straight from an in-memory store. Only
// registered in development, where presigned URLs point back at the
// server.
func DevPosters(store *storage.MemoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, contentType, ok := store.Get(r.PathValue("key"))
		if !ok {
			WriteError(w, model.NewNotFoundError("poster"))
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "private, max-age=60")
		_, _ = w.Write(data)
	}
}
