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

// StudentRequest is the payload for creating or updating a student record
type StudentRequest struct {
	StudentNumber  string    `json:"studentNumber" validate:"required"`
	EnrollmentYear int       `json:"enrollmentYear" validate:"required,gte=1990"`
	UserID         uuid.UUID `json:"userId" validate:"required"`
}

// StudentHandler handles student record HTTP requests
type StudentHandler struct {
	students repositories.StudentRepository
	logger   *zap.Logger
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(students repositories.StudentRepository, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{
		students: students,
		logger:   logger,
	}
}

// HandleCreate handles POST /api/students
func (h *StudentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req StudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	student := models.NewStudent(req.StudentNumber, req.EnrollmentYear, req.UserID)
	if err := h.students.Create(r.Context(), student); err != nil {
		handleRepoError(w, err, "Student", h.logger)
		return
	}

	_ = utils.WriteCreated(w, student)
}

// HandleGet handles GET /api/students/{id}
func (h *StudentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid student ID", nil)
		return
	}

	student, err := h.students.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Student", h.logger)
		return
	}

	_ = utils.WriteOK(w, student)
}

// HandleList handles GET /api/students
func (h *StudentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	students, total, err := h.students.List(r.Context(), params)
	if err != nil {
		handleRepoError(w, err, "Student", h.logger)
		return
	}

	_ = utils.WriteOKPaginated(w, students, utils.NewPagination(total, params.Page, params.Limit))
}

// HandleUpdate handles PUT /api/students/{id}
func (h *StudentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid student ID", nil)
		return
	}

	var req StudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	student, err := h.students.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Student", h.logger)
		return
	}

	student.StudentNumber = req.StudentNumber
	student.EnrollmentYear = req.EnrollmentYear
	student.UserID = req.UserID
	if err := h.students.Update(r.Context(), student); err != nil {
		handleRepoError(w, err, "Student", h.logger)
		return
	}

	_ = utils.WriteOK(w, student)
}

// HandleDelete handles DELETE /api/students/{id}
func (h *StudentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid student ID", nil)
		return
	}

	if err := h.students.Delete(r.Context(), id); err != nil {
		handleRepoError(w, err, "Student", h.logger)
		return
	}

	utils.WriteNoContent(w)
}
