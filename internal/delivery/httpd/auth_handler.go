package httpd

import (
	"net/http"

	"github.com/schoolcore/admin-service/internal/models"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Login successful", resp)
}

// Logout is an acknowledgement only. Tokens are stateless, so the client
// discards its copy.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, "Logged out successfully", nil)
}
