package enquiry

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nrng2025001/motorsync-sub002/internal/platform/httpx"
	"github.com/nrng2025001/motorsync-sub002/internal/shared"
)

// Handler exposes enquiry operations as JSON endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs an enquiry handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// MountRoutes attaches enquiry routes to the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/export", h.Export)
	r.Get("/{id}", h.Show)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}/assign", h.Assign)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Patch("/{id}/category", h.UpdateCategory)
	r.Post("/{id}/convert", h.Convert)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	q := r.URL.Query()
	filter := ListFilter{
		Category: Category(q.Get("category")),
		Status:   Status(q.Get("status")),
		Timeline: q.Get("timeline"),
		Search:   q.Get("search"),
	}

	items, err := h.service.List(r.Context(), sess, filter)
	if err != nil {
		h.logger.Error("list enquiries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"enquiries": items, "total": len(items)})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	enq, err := h.service.Get(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, enq)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())

	var req CreateEnquiryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if !req.Source.IsValid() {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "unknown enquiry source")
		return
	}

	enq, err := h.service.Create(r.Context(), sess, req)
	if err != nil {
		h.logger.Error("create enquiry", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, enq)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())

	var req UpdateEnquiryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	enq, err := h.service.Update(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, enq)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Delete(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())

	var req AssignRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	enq, err := h.service.Assign(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, enq)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())

	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}

	enq, err := h.service.UpdateStatus(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, enq)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())

	var req UpdateCategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}

	enq, err := h.service.UpdateCategory(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, enq)
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())

	// An empty body is fine; the reason defaults server-side.
	var req ConvertRequest
	if err := httpx.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}

	result, err := h.service.ConvertToBooking(r.Context(), sess, chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		h.logger.Error("convert enquiry", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())

	blob, contentType, err := h.service.Export(r.Context(), sess, r.URL.Query().Get("format"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="enquiries"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}
