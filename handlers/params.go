package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/repositories"
	"github.com/halilcengel/note.verse.backend/utils"
)

// parseListParams reads pagination and ordering from the query string.
// Out-of-range values fall back to repository defaults via Normalize.
func parseListParams(r *http.Request) repositories.ListParams {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return repositories.ListParams{
		Page:      page,
		Limit:     limit,
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}.Normalize()
}

// pathUUID parses a UUID path parameter
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// handleRepoError maps repository sentinel errors to HTTP responses for
// handlers that talk to a repository directly.
func handleRepoError(w http.ResponseWriter, err error, resource string, logger *zap.Logger) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		_ = utils.WriteNotFound(w, resource+" not found")
	case errors.Is(err, repositories.ErrDuplicate):
		_ = utils.WriteConflict(w, resource+" already exists", nil)
	default:
		logger.Error("repository operation failed",
			zap.String("resource", resource),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "An internal error occurred")
	}
}
