// AngelaMos | 2026
// handler.go

package story

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the story endpoints. Reads are public; likes
// need a bearer token; mutations are admin only.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, activeOnly func(http.Handler) http.Handler,
) {
	r.Get("/stories", h.ListStories)
	r.Get("/stories/home", h.GetHomeData)
	r.Get("/stories/{storyID}", h.GetStory)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(activeOnly)

		r.Post("/stories/{storyID}/like", h.LikeStory)
		r.Delete("/stories/{storyID}/like", h.UnlikeStory)
		r.Get("/stories/{storyID}/like", h.GetLikeStatus)
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(activeOnly)
		r.Use(middleware.RequireAdmin)

		r.Post("/stories", h.CreateStory)
		r.Put("/stories/{storyID}", h.UpdateStory)
		r.Delete("/stories/{storyID}", h.DeleteStory)
	})
}

func (h *Handler) ListStories(w http.ResponseWriter, r *http.Request) {
	params := ListStoriesParams{
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "page_size", 20),
		Search:     r.URL.Query().Get("search"),
		CategoryID: r.URL.Query().Get("category_id"),
		Type:       r.URL.Query().Get("type"),
		Status:     r.URL.Query().Get("status"),
	}

	stories, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToStoryResponseList(stories),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetHomeData(w http.ResponseWriter, r *http.Request) {
	home, err := h.service.HomeData(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, home)
}

func (h *Handler) GetStory(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyID")

	story, err := h.service.Get(r.Context(), storyID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "story")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToStoryResponse(story))
}

func (h *Handler) CreateStory(w http.ResponseWriter, r *http.Request) {
	var req CreateStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	story, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req,
	)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("slug"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToStoryResponse(story))
}

func (h *Handler) UpdateStory(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyID")

	var req UpdateStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	story, err := h.service.Update(r.Context(), storyID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "story")
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("slug"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToStoryResponse(story))
}

func (h *Handler) DeleteStory(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyID")

	if err := h.service.Delete(r.Context(), storyID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "story")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) LikeStory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	storyID := chi.URLParam(r, "storyID")

	status, err := h.service.Like(r.Context(), userID, storyID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("like"))
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "story")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, status)
}

func (h *Handler) UnlikeStory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	storyID := chi.URLParam(r, "storyID")

	status, err := h.service.Unlike(r.Context(), userID, storyID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "like")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, status)
}

func (h *Handler) GetLikeStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	storyID := chi.URLParam(r, "storyID")

	status, err := h.service.LikeStatus(r.Context(), userID, storyID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "story")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, status)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
