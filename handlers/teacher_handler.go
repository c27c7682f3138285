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

// TeacherRequest is the payload for creating or updating a teacher record
type TeacherRequest struct {
	Title        string    `json:"title" validate:"required"`
	OfficeNumber string    `json:"officeNumber"`
	Phone        string    `json:"phone"`
	DepartmentID uuid.UUID `json:"departmentId" validate:"required"`
	UserID       uuid.UUID `json:"userId" validate:"required"`
}

// TeacherHandler handles teacher record HTTP requests
type TeacherHandler struct {
	teachers repositories.TeacherRepository
	logger   *zap.Logger
}

// NewTeacherHandler creates a new TeacherHandler
func NewTeacherHandler(teachers repositories.TeacherRepository, logger *zap.Logger) *TeacherHandler {
	return &TeacherHandler{
		teachers: teachers,
		logger:   logger,
	}
}

// HandleCreate handles POST /api/teachers
func (h *TeacherHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req TeacherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	teacher := models.NewTeacher(req.Title, req.OfficeNumber, req.Phone, req.DepartmentID, req.UserID)
	if err := h.teachers.Create(r.Context(), teacher); err != nil {
		handleRepoError(w, err, "Teacher", h.logger)
		return
	}

	_ = utils.WriteCreated(w, teacher)
}

// HandleGet handles GET /api/teachers/{id}
func (h *TeacherHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid teacher ID", nil)
		return
	}

	teacher, err := h.teachers.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Teacher", h.logger)
		return
	}

	_ = utils.WriteOK(w, teacher)
}

// HandleList handles GET /api/teachers
func (h *TeacherHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	teachers, total, err := h.teachers.List(r.Context(), params)
	if err != nil {
		handleRepoError(w, err, "Teacher", h.logger)
		return
	}

	_ = utils.WriteOKPaginated(w, teachers, utils.NewPagination(total, params.Page, params.Limit))
}

// HandleUpdate handles PUT /api/teachers/{id}
func (h *TeacherHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid teacher ID", nil)
		return
	}

	var req TeacherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	teacher, err := h.teachers.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Teacher", h.logger)
		return
	}

	teacher.Title = req.Title
	teacher.OfficeNumber = req.OfficeNumber
	teacher.Phone = req.Phone
	teacher.DepartmentID = req.DepartmentID
	teacher.UserID = req.UserID
	if err := h.teachers.Update(r.Context(), teacher); err != nil {
		handleRepoError(w, err, "Teacher", h.logger)
		return
	}

	_ = utils.WriteOK(w, teacher)
}

// HandleDelete handles DELETE /api/teachers/{id}
func (h *TeacherHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid teacher ID", nil)
		return
	}

	if err := h.teachers.Delete(r.Context(), id); err != nil {
		handleRepoError(w, err, "Teacher", h.logger)
		return
	}

	utils.WriteNoContent(w)
}
