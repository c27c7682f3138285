package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/middleware"
	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
	"github.com/halilcengel/note.verse.backend/utils"
)

// UserUpdateRequest is the payload for updating a user account. Password
// changes go through a separate flow and are not accepted here.
type UserUpdateRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	TcNo  string `json:"tcNo" validate:"required"`
	Role  string `json:"role" validate:"required,oneof=admin teacher student"`
}

// UserHandler handles user account HTTP requests
type UserHandler struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repositories.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// HandleList handles GET /api/users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	users, total, err := h.users.List(r.Context(), params)
	if err != nil {
		handleRepoError(w, err, "User", h.logger)
		return
	}

	_ = utils.WriteOKPaginated(w, users, utils.NewPagination(total, params.Page, params.Limit))
}

// HandleGet handles GET /api/users/{id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid user ID", nil)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "User", h.logger)
		return
	}

	_ = utils.WriteOK(w, user)
}

// HandleGetMe handles GET /api/users/me
func (h *UserHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		_ = utils.WriteUnauthorized(w, "Invalid or expired token")
		return
	}

	id, err := claims.UserUUID()
	if err != nil {
		_ = utils.WriteUnauthorized(w, "Invalid or expired token")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "User", h.logger)
		return
	}

	_ = utils.WriteOK(w, user)
}

// HandleUpdate handles PUT /api/users/{id}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid user ID", nil)
		return
	}

	var req UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, err, "User", h.logger)
		return
	}

	user.Email = req.Email
	user.Name = req.Name
	user.TcNo = req.TcNo
	user.Role = models.UserRole(req.Role)
	if err := h.users.Update(r.Context(), user); err != nil {
		handleRepoError(w, err, "User", h.logger)
		return
	}

	_ = utils.WriteOK(w, user)
}

// HandleDelete handles DELETE /api/users/{id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid user ID", nil)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		handleRepoError(w, err, "User", h.logger)
		return
	}

	utils.WriteNoContent(w)
}
