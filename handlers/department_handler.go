package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
	"github.com/halilcengel/note.verse.backend/utils"
)

// DepartmentRequest is the payload for creating or updating a department
type DepartmentRequest struct {
	Name string `json:"name" validate:"required"`
}

// DepartmentHandler handles department HTTP requests
type DepartmentHandler struct {
	departments repositories.DepartmentRepository
	logger      *zap.Logger
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(departments repositories.DepartmentRepository, logger *zap.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		departments: departments,
		logger:      logger,
	}
}

// HandleCreate handles POST /api/departments
func (h *DepartmentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req DepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	department := models.NewDepartment(req.Name)
	if err := h.departments.Create(r.Context(), department); err != nil {
		handleRepoError(w, err, "Department", h.logger)
		return
	}

	_ = utils.WriteCreated(w, department)
}

// HandleGet handles GET /api/departments/{id}
func (h *DepartmentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid department ID", nil)
		return
	}

	department, err := h.departments.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Department", h.logger)
		return
	}

	_ = utils.WriteOK(w, department)
}

// HandleList handles GET /api/departments
func (h *DepartmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	departments, total, err := h.departments.List(r.Context(), params)
	if err != nil {
		handleRepoError(w, err, "Department", h.logger)
		return
	}

	_ = utils.WriteOKPaginated(w, departments, utils.NewPagination(total, params.Page, params.Limit))
}

// HandleUpdate handles PUT /api/departments/{id}
func (h *DepartmentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid department ID", nil)
		return
	}

	var req DepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	department, err := h.departments.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Department", h.logger)
		return
	}

	department.Name = req.Name
	if err := h.departments.Update(r.Context(), department); err != nil {
		handleRepoError(w, err, "Department", h.logger)
		return
	}

	_ = utils.WriteOK(w, department)
}

// HandleDelete handles DELETE /api/departments/{id}
func (h *DepartmentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid department ID", nil)
		return
	}

	if err := h.departments.Delete(r.Context(), id); err != nil {
		handleRepoError(w, err, "Department", h.logger)
		return
	}

	utils.WriteNoContent(w)
}
