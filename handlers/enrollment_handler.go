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

// EnrollmentRequest is the payload for enrolling a student in an offering
type EnrollmentRequest struct {
	StudentID  uuid.UUID `json:"studentId" validate:"required"`
	OfferingID uuid.UUID `json:"offeringId" validate:"required"`
}

// EnrollmentStatusRequest is the payload for changing an enrollment's status
type EnrollmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active dropped completed"`
}

// EnrollmentHandler handles enrollment HTTP requests
type EnrollmentHandler struct {
	enrollments repositories.EnrollmentRepository
	logger      *zap.Logger
}

// NewEnrollmentHandler creates a new EnrollmentHandler
func NewEnrollmentHandler(enrollments repositories.EnrollmentRepository, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollments: enrollments,
		logger:      logger,
	}
}

// HandleCreate handles POST /api/enrollments. A student can hold at most
// one enrollment per offering; the unique constraint surfaces as 409.
func (h *EnrollmentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req EnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	enrollment := models.NewEnrollment(req.StudentID, req.OfferingID)
	if err := h.enrollments.Create(r.Context(), enrollment); err != nil {
		handleRepoError(w, err, "Enrollment", h.logger)
		return
	}

	_ = utils.WriteCreated(w, enrollment)
}

// HandleGet handles GET /api/enrollments/{id}
func (h *EnrollmentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid enrollment ID", nil)
		return
	}

	enrollment, err := h.enrollments.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Enrollment", h.logger)
		return
	}

	_ = utils.WriteOK(w, enrollment)
}

// HandleList handles GET /api/enrollments
func (h *EnrollmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	enrollments, total, err := h.enrollments.List(r.Context(), params)
	if err != nil {
		handleRepoError(w, err, "Enrollment", h.logger)
		return
	}

	_ = utils.WriteOKPaginated(w, enrollments, utils.NewPagination(total, params.Page, params.Limit))
}

// HandleListByOffering handles GET /api/course-offerings/{id}/enrollments
func (h *EnrollmentHandler) HandleListByOffering(w http.ResponseWriter, r *http.Request) {
	offeringID, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid course offering ID", nil)
		return
	}

	enrollments, err := h.enrollments.ListByOffering(r.Context(), offeringID)
	if err != nil {
		handleRepoError(w, err, "Enrollment", h.logger)
		return
	}

	_ = utils.WriteOK(w, enrollments)
}

// HandleUpdateStatus handles PUT /api/enrollments/{id}
func (h *EnrollmentHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid enrollment ID", nil)
		return
	}

	var req EnrollmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	enrollment, err := h.enrollments.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Enrollment", h.logger)
		return
	}

	enrollment.Status = models.EnrollmentStatus(req.Status)
	if err := h.enrollments.Update(r.Context(), enrollment); err != nil {
		handleRepoError(w, err, "Enrollment", h.logger)
		return
	}

	_ = utils.WriteOK(w, enrollment)
}

// HandleDelete handles DELETE /api/enrollments/{id}
func (h *EnrollmentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid enrollment ID", nil)
		return
	}

	if err := h.enrollments.Delete(r.Context(), id); err != nil {
		handleRepoError(w, err, "Enrollment", h.logger)
		return
	}

	utils.WriteNoContent(w)
}
