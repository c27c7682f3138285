package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteOK(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteOK(rec, map[string]string{"name": "Engineering"})

	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeResponse(t, rec)
	assert.Equal(t, "success", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Pagination)
}

func TestWriteOKPaginated(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteOKPaginated(rec, []string{"a", "b"}, NewPagination(25, 2, 10))

	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "success", resp.Status)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 25, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 10, resp.Pagination.Limit)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestNewPagination_TotalPages(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		limit      int
		totalPages int
	}{
		{"exact multiple", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"empty", 0, 10, 0},
		{"zero limit", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, 1, tt.limit)
			assert.Equal(t, tt.totalPages, p.TotalPages)
		})
	}
}

func TestWriteCreated(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteCreated(rec, map[string]string{"id": "abc"})

	require.NoError(t, err)
	assert.Equal(t, 201, rec.Code)
	assert.Equal(t, "success", decodeResponse(t, rec).Status)
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteError(rec, 500, "Failed to communicate with chat service", "connection refused")

	require.NoError(t, err)
	assert.Equal(t, 500, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Failed to communicate with chat service", resp.Message)
	assert.Equal(t, "connection refused", resp.Details)
}

func TestWriteUnauthorized_DefaultMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteUnauthorized(rec, "")

	require.NoError(t, err)
	assert.Equal(t, 401, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Authentication required", resp.Message)
}

func TestWriteNotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteNotFound(rec, "department not found")

	require.NoError(t, err)
	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, "department not found", decodeResponse(t, rec).Message)
}

func TestWriteNoContent(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteNoContent(rec)

	assert.Equal(t, 204, rec.Code)
	assert.Empty(t, rec.Body.String())
}
