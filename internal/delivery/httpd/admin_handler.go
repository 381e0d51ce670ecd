package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolcore/admin-service/internal/models"
)

func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	admin, err := h.adminService.Create(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeCreated(w, "Admin created successfully", admin)
}

func (h *Handler) GetAdminByID(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "id")

	admin, err := h.adminService.GetByID(r.Context(), adminID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Admin retrieved", admin)
}

func (h *Handler) GetAllAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminService.GetAll(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Admins retrieved", admins)
}

func (h *Handler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "id")

	var req models.UpdateAdminRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	admin, err := h.adminService.Update(r.Context(), adminID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Admin updated successfully", admin)
}

func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "id")

	if err := h.adminService.SoftDelete(r.Context(), adminID); err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Admin deleted successfully", nil)
}
