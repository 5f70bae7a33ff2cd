package finder

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Shyngys777/temporun/internal/catalog"
	"github.com/Shyngys777/temporun/internal/platform/httpx"
)

// Handler wires the finder endpoint.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers finder routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/finder/recommendations", h.recommend)
}

type recommendResponse struct {
	Products []catalog.ProductView `json:"products"`
	Total    int                   `json:"total"`
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request) {
	var answers Answers
	if err := httpx.DecodeJSON(r, &answers); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(answers); err != nil {
		fields := []string{}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			fields = append(fields, strings.ToLower(fieldErr.Field()))
		}
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid answer for: "+strings.Join(fields, ", "))
		return
	}

	products, total, err := h.service.Recommend(r.Context(), answers)
	if err != nil {
		h.logger.Error("finder recommendation failed", slog.Any("error", err))
		w.Header().Set("Retry-After", "5")
		httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "unable to load, please retry")
		return
	}
	httpx.JSON(w, http.StatusOK, recommendResponse{Products: products, Total: total})
}
