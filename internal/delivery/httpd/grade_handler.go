package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolcore/admin-service/internal/models"
)

func (h *Handler) CreateGrade(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGradeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	grade, err := h.gradeService.Create(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeCreated(w, "Grade created successfully", grade)
}

func (h *Handler) GetGradeByID(w http.ResponseWriter, r *http.Request) {
	gradeID := chi.URLParam(r, "id")

	grade, err := h.gradeService.GetByID(r.Context(), gradeID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Grade retrieved", grade)
}

func (h *Handler) GetAllGrades(w http.ResponseWriter, r *http.Request) {
	grades, err := h.gradeService.GetAll(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Grades retrieved", grades)
}

func (h *Handler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	gradeID := chi.URLParam(r, "id")

	var req models.UpdateGradeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	grade, err := h.gradeService.Update(r.Context(), gradeID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Grade updated successfully", grade)
}

func (h *Handler) DeleteGrade(w http.ResponseWriter, r *http.Request) {
	gradeID := chi.URLParam(r, "id")

	if err := h.gradeService.SoftDelete(r.Context(), gradeID); err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Grade deleted successfully", nil)
}
