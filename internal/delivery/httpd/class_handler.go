package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolcore/admin-service/internal/models"
)

func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClassRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	class, err := h.classService.Create(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeCreated(w, "Class created successfully", class)
}

func (h *Handler) GetClassByID(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "id")

	class, err := h.classService.GetByID(r.Context(), classID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Class retrieved", class)
}

func (h *Handler) GetAllClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classService.GetAll(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Classes retrieved", classes)
}

func (h *Handler) GetClassesByGrade(w http.ResponseWriter, r *http.Request) {
	gradeID := chi.URLParam(r, "grade_id")

	classes, err := h.classService.GetByGrade(r.Context(), gradeID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Classes retrieved", classes)
}

func (h *Handler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "id")

	var req models.UpdateClassRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	class, err := h.classService.Update(r.Context(), classID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Class updated successfully", class)
}

func (h *Handler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "id")

	if err := h.classService.SoftDelete(r.Context(), classID); err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Class deleted successfully", nil)
}
