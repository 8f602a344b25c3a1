// AngelaMos | 2026
// handler.go

package chapter

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
	r.Get("/stories/{storyID}/chapters", h.ListChapters)
	r.Get("/chapters/{chapterID}", h.GetChapter)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(activeOnly)
		r.Use(middleware.RequireAdmin)

		r.Post("/chapters", h.CreateChapter)
		r.Put("/chapters/{chapterID}", h.UpdateChapter)
		r.Delete("/chapters/{chapterID}", h.DeleteChapter)
	})
}

// ListChapters returns the chapter index for a story, without bodies.
func (h *Handler) ListChapters(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyID")

	chapters, err := h.service.ListByStory(r.Context(), storyID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	if chapters == nil {
		chapters = []ChapterSummary{}
	}

	core.OK(w, chapters)
}

func (h *Handler) GetChapter(w http.ResponseWriter, r *http.Request) {
	chapterID := chi.URLParam(r, "chapterID")

	chapter, err := h.service.Get(r.Context(), chapterID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "chapter")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToChapterResponse(chapter))
}

func (h *Handler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	var req CreateChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	chapter, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("chapter number"))
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "story")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToChapterResponse(chapter))
}

func (h *Handler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	chapterID := chi.URLParam(r, "chapterID")

	var req UpdateChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	chapter, err := h.service.Update(r.Context(), chapterID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "chapter")
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("chapter number"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToChapterResponse(chapter))
}

func (h *Handler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	chapterID := chi.URLParam(r, "chapterID")

	if err := h.service.Delete(r.Context(), chapterID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "chapter")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
