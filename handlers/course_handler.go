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

// CourseRequest is the payload for creating or updating a catalog course
type CourseRequest struct {
	Code         string    `json:"code" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	Credits      int       `json:"credits" validate:"required,gt=0"`
	DepartmentID uuid.UUID `json:"departmentId" validate:"required"`
}

// CourseHandler handles course catalog HTTP requests
type CourseHandler struct {
	courses repositories.CourseRepository
	logger  *zap.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courses repositories.CourseRepository, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		courses: courses,
		logger:  logger,
	}
}

// HandleCreate handles POST /api/courses
func (h *CourseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	course := models.NewCourse(req.Code, req.Name, req.Credits, req.DepartmentID)
	if err := h.courses.Create(r.Context(), course); err != nil {
		handleRepoError(w, err, "Course", h.logger)
		return
	}

	_ = utils.WriteCreated(w, course)
}

// HandleGet handles GET /api/courses/{id}
func (h *CourseHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid course ID", nil)
		return
	}

	course, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Course", h.logger)
		return
	}

	_ = utils.WriteOK(w, course)
}

// HandleList handles GET /api/courses
func (h *CourseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	courses, total, err := h.courses.List(r.Context(), params)
	if err != nil {
		handleRepoError(w, err, "Course", h.logger)
		return
	}

	_ = utils.WriteOKPaginated(w, courses, utils.NewPagination(total, params.Page, params.Limit))
}

// HandleUpdate handles PUT /api/courses/{id}
func (h *CourseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid course ID", nil)
		return
	}

	var req CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	course, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Course", h.logger)
		return
	}

	course.Code = req.Code
	course.Name = req.Name
	course.Credits = req.Credits
	course.DepartmentID = req.DepartmentID
	if err := h.courses.Update(r.Context(), course); err != nil {
		handleRepoError(w, err, "Course", h.logger)
		return
	}

	_ = utils.WriteOK(w, course)
}

// HandleDelete handles DELETE /api/courses/{id}
func (h *CourseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid course ID", nil)
		return
	}

	if err := h.courses.Delete(r.Context(), id); err != nil {
		handleRepoError(w, err, "Course", h.logger)
		return
	}

	utils.WriteNoContent(w)
}
