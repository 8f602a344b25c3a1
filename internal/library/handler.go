// AngelaMos | 2026
// handler.go

package library

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/truyenhub/backend/internal/core"
	"github.com/truyenhub/backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, activeOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(activeOnly)

		r.Post("/bookmarks", h.AddBookmark)
		r.Get("/bookmarks", h.ListBookmarks)
		r.Get("/bookmarks/check", h.CheckBookmark)
		r.Delete("/bookmarks/{storyID}", h.RemoveBookmark)

		r.Put("/history/{storyID}", h.TouchHistory)
		r.Get("/history", h.ListHistory)
		r.Delete("/history/{entryID}", h.DeleteHistory)
	})
}

func (h *Handler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	var req AddBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())

	bookmark, err := h.service.AddBookmark(r.Context(), userID, req.StoryID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("bookmark"))
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "story")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToBookmarkResponse(bookmark))
}

func (h *Handler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	storyID := chi.URLParam(r, "storyID")

	if err := h.service.RemoveBookmark(r.Context(), userID, storyID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "bookmark")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	bookmarks, err := h.service.ListBookmarks(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBookmarkResponseList(bookmarks))
}

func (h *Handler) CheckBookmark(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	storyID := r.URL.Query().Get("story_id")
	if storyID == "" {
		core.BadRequest(w, "story_id is required")
		return
	}

	bookmarked, err := h.service.IsBookmarked(r.Context(), userID, storyID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, BookmarkCheckResponse{Bookmarked: bookmarked})
}

func (h *Handler) TouchHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	storyID := chi.URLParam(r, "storyID")

	entry, err := h.service.TouchHistory(r.Context(), userID, storyID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "story")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToHistoryResponse(entry))
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	entries, err := h.service.ListHistory(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToHistoryResponseList(entries))
}

func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	entryID := chi.URLParam(r, "entryID")

	if err := h.service.DeleteHistory(r.Context(), userID, entryID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "history entry")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
