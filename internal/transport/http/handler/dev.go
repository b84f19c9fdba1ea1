package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PasscodePeeker exposes a pending passcode without consuming it.
type PasscodePeeker interface {
	Peek(recipient string) (string, bool)
}

// DevHandler serves development-only visibility endpoints. The router never
// registers these routes when APP_ENV is production.
type DevHandler struct {
	store PasscodePeeker
}

func NewDevHandler(store PasscodePeeker) *DevHandler {
	return &DevHandler{store: store}
}

func (h *DevHandler) PeekPasscode(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	code, ok := h.store.Peek(email)
	if !ok {
		writeError(w, http.StatusNotFound, "no pending passcode")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": email, "code": code})
}
