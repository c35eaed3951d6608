package repos

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sundayezeilo/repohub/internal/errx"
	"github.com/sundayezeilo/repohub/internal/httpx"
)

// HTTPRepositoryRequest is the JSON body accepted by create and update.
type HTTPRepositoryRequest struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Techs []string `json:"techs"`
}

func (req HTTPRepositoryRequest) input() Input {
	return Input{
		Title: req.Title,
		URL:   req.URL,
		Techs: req.Techs,
	}
}

// Handler provides the HTTP handlers for the repositories resource.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// HandlerConfig holds configuration for the handler.
type HandlerConfig struct {
	Store  Store
	Logger *slog.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		store:  cfg.Store,
		logger: logger,
	}
}

// Register mounts the repositories routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /repositories", h.List)
	mux.HandleFunc("POST /repositories", h.Create)
	mux.HandleFunc("PUT /repositories/{id}", h.Update)
	mux.HandleFunc("DELETE /repositories/{id}", h.Delete)
	mux.HandleFunc("POST /repositories/{id}/like", h.Like)
}

// List handles GET /repositories.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.store.List(ctx)
	if err != nil {
		h.handleStoreError(ctx, w, err, "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, items)
}

// Create handles POST /repositories.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	req, err := httpx.DecodeJSON[HTTPRepositoryRequest](r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	repo, err := h.store.Create(ctx, req.input())
	if err != nil {
		h.handleStoreError(ctx, w, err, "")
		return
	}

	logger.InfoContext(ctx, "repository created",
		"repository_id", repo.ID.String(),
		"title", repo.Title,
	)

	httpx.WriteJSON(w, http.StatusOK, repo)
}

// Update handles PUT /repositories/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)
	id := r.PathValue("id")

	// A malformed id wins over a malformed body.
	if _, err := ParseID(id); err != nil {
		h.handleStoreError(ctx, w, errx.E("repos.handler.Update", errx.Invalid, err), id)
		return
	}

	req, err := httpx.DecodeJSON[HTTPRepositoryRequest](r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	repo, err := h.store.Update(ctx, id, req.input())
	if err != nil {
		h.handleStoreError(ctx, w, err, id)
		return
	}

	logger.InfoContext(ctx, "repository updated", "repository_id", repo.ID.String())

	httpx.WriteJSON(w, http.StatusOK, repo)
}

// Delete handles DELETE /repositories/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.store.Delete(ctx, id); err != nil {
		h.handleStoreError(ctx, w, err, id)
		return
	}

	h.requestLogger(r).InfoContext(ctx, "repository deleted", "repository_id", id)

	httpx.WriteNoContent(w)
}

// Like handles POST /repositories/{id}/like.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	repo, err := h.store.Like(ctx, id)
	if err != nil {
		h.handleStoreError(ctx, w, err, id)
		return
	}

	h.requestLogger(r).DebugContext(ctx, "repository liked",
		"repository_id", repo.ID.String(),
		"likes", repo.Likes,
	)

	httpx.WriteJSON(w, http.StatusOK, repo)
}

func (h *Handler) requestLogger(r *http.Request) *slog.Logger {
	return h.logger.With(
		"request_id", httpx.GetRequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
}

// handleStoreError writes the response for an error returned by the store.
func (h *Handler) handleStoreError(ctx context.Context, w http.ResponseWriter, err error, id string) {
	kind := errx.KindOf(err)

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind.String(),
		"operation", errx.OpOf(err),
		"repository_id", id,
	}

	switch kind {
	case errx.Invalid:
		h.logger.WarnContext(ctx, "invalid repository id", logAttrs...)
		httpx.WriteError(w, http.StatusBadRequest, ErrInvalidID.Error())

	case errx.NotFound:
		h.logger.WarnContext(ctx, "repository not found", logAttrs...)
		httpx.WriteError(w, http.StatusNotFound, ErrNotFound.Error())

	default:
		h.logger.ErrorContext(ctx, "unexpected store error", logAttrs...)
		httpx.WriteError(w, httpx.ErrorKindToStatus(kind), httpx.ErrorKindToMessage(kind))
	}
}
