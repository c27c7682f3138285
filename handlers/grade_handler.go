package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
	"github.com/halilcengel/note.verse.backend/utils"
)

// GradeRequest is the payload for recording or revising a grade
type GradeRequest struct {
	EnrollmentID uuid.UUID `json:"enrollmentId" validate:"required"`
	Value        float64   `json:"value" validate:"gte=0,lte=100"`
	Letter       string    `json:"letter" validate:"required"`
}

// GradeHandler handles grade HTTP requests
type GradeHandler struct {
	grades repositories.GradeRepository
	logger *zap.Logger
}

// NewGradeHandler creates a new GradeHandler
func NewGradeHandler(grades repositories.GradeRepository, logger *zap.Logger) *GradeHandler {
	return &GradeHandler{
		grades: grades,
		logger: logger,
	}
}

// HandleCreate handles POST /api/grades. One grade per enrollment; a
// second insert for the same enrollment surfaces as 409.
func (h *GradeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	grade := models.NewGrade(req.EnrollmentID, req.Value, req.Letter)
	if err := h.grades.Create(r.Context(), grade); err != nil {
		handleRepoError(w, err, "Grade", h.logger)
		return
	}

	_ = utils.WriteCreated(w, grade)
}

// HandleGet handles GET /api/grades/{id}
func (h *GradeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid grade ID", nil)
		return
	}

	grade, err := h.grades.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Grade", h.logger)
		return
	}

	_ = utils.WriteOK(w, grade)
}

// HandleList handles GET /api/grades
func (h *GradeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	grades, total, err := h.grades.List(r.Context(), params)
	if err != nil {
		handleRepoError(w, err, "Grade", h.logger)
		return
	}

	_ = utils.WriteOKPaginated(w, grades, utils.NewPagination(total, params.Page, params.Limit))
}

// HandleUpdate handles PUT /api/grades/{id}
func (h *GradeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid grade ID", nil)
		return
	}

	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	grade, err := h.grades.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Grade", h.logger)
		return
	}

	grade.EnrollmentID = req.EnrollmentID
	grade.Value = req.Value
	grade.Letter = req.Letter
	if err := h.grades.Update(r.Context(), grade); err != nil {
		handleRepoError(w, err, "Grade", h.logger)
		return
	}

	_ = utils.WriteOK(w, grade)
}

// HandleDelete handles DELETE /api/grades/{id}
func (h *GradeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid grade ID", nil)
		return
	}

	if err := h.grades.Delete(r.Context(), id); err != nil {
		handleRepoError(w, err, "Grade", h.logger)
		return
	}

	utils.WriteNoContent(w)
}
