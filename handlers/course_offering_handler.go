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

// OfferingRequest is the payload for creating or updating a course offering
type OfferingRequest struct {
	CourseID     uuid.UUID `json:"courseId" validate:"required"`
	TeacherID    uuid.UUID `json:"teacherId" validate:"required"`
	Semester     string    `json:"semester" validate:"required,oneof=fall spring summer"`
	AcademicYear string    `json:"academicYear" validate:"required"`
	Capacity     int       `json:"capacity" validate:"required,gt=0"`
}

// ScheduleRequest is the payload for adding a weekly slot to an offering
type ScheduleRequest struct {
	DayOfWeek int    `json:"dayOfWeek" validate:"required,gte=1,lte=7"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Room      string `json:"room" validate:"required"`
}

// OfferingDetail is an offering together with its weekly schedule
type OfferingDetail struct {
	*models.CourseOffering
	Schedules []*models.Schedule `json:"schedules"`
}

// CourseOfferingHandler handles course offering HTTP requests
type CourseOfferingHandler struct {
	offerings repositories.CourseOfferingRepository
	schedules repositories.ScheduleRepository
	logger    *zap.Logger
}

// NewCourseOfferingHandler creates a new CourseOfferingHandler
func NewCourseOfferingHandler(
	offerings repositories.CourseOfferingRepository,
	schedules repositories.ScheduleRepository,
	logger *zap.Logger,
) *CourseOfferingHandler {
	return &CourseOfferingHandler{
		offerings: offerings,
		schedules: schedules,
		logger:    logger,
	}
}

// HandleCreate handles POST /api/course-offerings
func (h *CourseOfferingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req OfferingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	offering := models.NewCourseOffering(req.CourseID, req.TeacherID,
		models.Semester(req.Semester), req.AcademicYear, req.Capacity)
	if err := h.offerings.Create(r.Context(), offering); err != nil {
		handleRepoError(w, err, "Course offering", h.logger)
		return
	}

	_ = utils.WriteCreated(w, offering)
}

// HandleGet handles GET /api/course-offerings/{id}. The detail response
// includes the offering's weekly schedule.
func (h *CourseOfferingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid course offering ID", nil)
		return
	}

	offering, err := h.offerings.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Course offering", h.logger)
		return
	}

	schedules, err := h.schedules.ListByOffering(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Schedule", h.logger)
		return
	}

	_ = utils.WriteOK(w, OfferingDetail{CourseOffering: offering, Schedules: schedules})
}

// HandleList handles GET /api/course-offerings with optional semester and
// academicYear filters.
func (h *CourseOfferingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	q := r.URL.Query()
	filter := repositories.OfferingFilter{
		Semester:     models.Semester(q.Get("semester")),
		AcademicYear: q.Get("academicYear"),
	}

	offerings, total, err := h.offerings.List(r.Context(), params, filter)
	if err != nil {
		handleRepoError(w, err, "Course offering", h.logger)
		return
	}

	_ = utils.WriteOKPaginated(w, offerings, utils.NewPagination(total, params.Page, params.Limit))
}

// HandleUpdate handles PUT /api/course-offerings/{id}
func (h *CourseOfferingHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid course offering ID", nil)
		return
	}

	var req OfferingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	offering, err := h.offerings.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Course offering", h.logger)
		return
	}

	offering.CourseID = req.CourseID
	offering.TeacherID = req.TeacherID
	offering.Semester = models.Semester(req.Semester)
	offering.AcademicYear = req.AcademicYear
	offering.Capacity = req.Capacity
	if err := h.offerings.Update(r.Context(), offering); err != nil {
		handleRepoError(w, err, "Course offering", h.logger)
		return
	}

	_ = utils.WriteOK(w, offering)
}

// HandleDelete handles DELETE /api/course-offerings/{id}
func (h *CourseOfferingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid course offering ID", nil)
		return
	}

	if err := h.offerings.Delete(r.Context(), id); err != nil {
		handleRepoError(w, err, "Course offering", h.logger)
		return
	}

	utils.WriteNoContent(w)
}

// HandleAddSchedule handles POST /api/course-offerings/{id}/schedules
func (h *CourseOfferingHandler) HandleAddSchedule(w http.ResponseWriter, r *http.Request) {
	offeringID, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid course offering ID", nil)
		return
	}

	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	// The offering must exist before a slot can hang off it
	if _, err := h.offerings.GetByID(r.Context(), offeringID); err != nil {
		handleRepoError(w, err, "Course offering", h.logger)
		return
	}

	schedule := models.NewSchedule(offeringID, req.DayOfWeek, req.StartTime, req.EndTime, req.Room)
	if err := h.schedules.Create(r.Context(), schedule); err != nil {
		handleRepoError(w, err, "Schedule", h.logger)
		return
	}

	_ = utils.WriteCreated(w, schedule)
}

// HandleDeleteSchedule handles DELETE /api/course-offerings/{id}/schedules/{scheduleId}
func (h *CourseOfferingHandler) HandleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := pathUUID(r, "scheduleId")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid schedule ID", nil)
		return
	}

	if err := h.schedules.Delete(r.Context(), scheduleID); err != nil {
		handleRepoError(w, err, "Schedule", h.logger)
		return
	}

	utils.WriteNoContent(w)
}
