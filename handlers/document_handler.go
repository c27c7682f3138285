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

// DocumentRequest is the payload for publishing or updating a document
type DocumentRequest struct {
	Title        string    `json:"title" validate:"required"`
	URL          string    `json:"url" validate:"required,url"`
	DepartmentID uuid.UUID `json:"departmentId" validate:"required"`
}

// DocumentHandler handles department document HTTP requests
type DocumentHandler struct {
	documents repositories.DocumentRepository
	logger    *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documents repositories.DocumentRepository, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		logger:    logger,
	}
}

// HandleCreate handles POST /api/documents
func (h *DocumentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	document := models.NewDocument(req.Title, req.URL, req.DepartmentID)
	if err := h.documents.Create(r.Context(), document); err != nil {
		handleRepoError(w, err, "Document", h.logger)
		return
	}

	_ = utils.WriteCreated(w, document)
}

// HandleGet handles GET /api/documents/{id}
func (h *DocumentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid document ID", nil)
		return
	}

	document, err := h.documents.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Document", h.logger)
		return
	}

	_ = utils.WriteOK(w, document)
}

// HandleList handles GET /api/documents
func (h *DocumentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	documents, total, err := h.documents.List(r.Context(), params)
	if err != nil {
		handleRepoError(w, err, "Document", h.logger)
		return
	}

	_ = utils.WriteOKPaginated(w, documents, utils.NewPagination(total, params.Page, params.Limit))
}

// HandleUpdate handles PUT /api/documents/{id}
func (h *DocumentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid document ID", nil)
		return
	}

	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	document, err := h.documents.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "Document", h.logger)
		return
	}

	document.Title = req.Title
	document.URL = req.URL
	document.DepartmentID = req.DepartmentID
	if err := h.documents.Update(r.Context(), document); err != nil {
		handleRepoError(w, err, "Document", h.logger)
		return
	}

	_ = utils.WriteOK(w, document)
}

// HandleDelete handles DELETE /api/documents/{id}
func (h *DocumentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid document ID", nil)
		return
	}

	if err := h.documents.Delete(r.Context(), id); err != nil {
		handleRepoError(w, err, "Document", h.logger)
		return
	}

	utils.WriteNoContent(w)
}
