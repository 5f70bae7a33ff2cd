package chat

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Shyngys777/temporun/internal/platform/httpx"
)

// Handler wires the assistant endpoints.
type Handler struct {
	logger    *slog.Logger
	responder *Responder
	store     *Store
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, responder *Responder, store *Store) *Handler {
	return &Handler{logger: logger, responder: responder, store: store}
}

// MountRoutes registers chat routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/chat/conversations", h.startConversation)
	r.Get("/chat/conversations/{id}", h.getConversation)
	r.Post("/chat/conversations/{id}/messages", h.sendMessage)
}

func (h *Handler) startConversation(w http.ResponseWriter, r *http.Request) {
	conv := h.store.Start()
	httpx.JSON(w, http.StatusCreated, conv)
}

func (h *Handler) getConversation(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "conversation not found")
		return
	}
	httpx.JSON(w, http.StatusOK, conv)
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "message is required")
		return
	}

	id := chi.URLParam(r, "id")
	reply := h.responder.Reply(r.Context(), req.Message)
	conv, ok := h.store.Append(id, req.Message, reply)
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "conversation not found")
		return
	}
	httpx.JSON(w, http.StatusOK, conv)
}
