package postgres

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
)

var documentSortColumns = map[string]string{
	"title":     "title",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// DocumentRepository implements the repositories.DocumentRepository interface
type DocumentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *DB, logger *zap.Logger) repositories.DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new document
func (r *DocumentRepository) Create(ctx context.Context, document *models.Document) error {
	query := `
		INSERT INTO documents (id, title, url, department_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		document.ID,
		document.Title,
		document.URL,
		document.DepartmentID,
		document.CreatedAt,
		document.UpdatedAt,
	)
	if err != nil {
		return mapError("create document", err)
	}

	r.logger.Debug("document created", zap.String("id", document.ID.String()))
	return nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := `
		SELECT id, title, url, department_id, created_at, updated_at
		FROM documents
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	document := &models.Document{}

	err := executor.QueryRowContext(ctx, query, id).Scan(
		&document.ID,
		&document.Title,
		&document.URL,
		&document.DepartmentID,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("get document", err)
	}

	return document, nil
}

// List retrieves documents with pagination
func (r *DocumentRepository) List(ctx context.Context, params repositories.ListParams) ([]*models.Document, int, error) {
	params = params.Normalize()
	executor := GetExecutor(ctx, r.db)

	var total int
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&total); err != nil {
		return nil, 0, mapError("count documents", err)
	}

	query := `
		SELECT id, title, url, department_id, created_at, updated_at
		FROM documents
	` + orderClause(documentSortColumns, params) + `
		LIMIT $1 OFFSET $2
	`

	rows, err := executor.QueryContext(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, mapError("list documents", err)
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		document := &models.Document{}
		if err := rows.Scan(
			&document.ID,
			&document.Title,
			&document.URL,
			&document.DepartmentID,
			&document.CreatedAt,
			&document.UpdatedAt,
		); err != nil {
			return nil, 0, mapError("scan document", err)
		}
		documents = append(documents, document)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list documents", err)
	}

	return documents, total, nil
}

// Update updates a document
func (r *DocumentRepository) Update(ctx context.Context, document *models.Document) error {
	query := `
		UPDATE documents
		SET title = $2, url = $3, department_id = $4, updated_at = NOW()
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		document.ID,
		document.Title,
		document.URL,
		document.DepartmentID,
	)
	if err != nil {
		return mapError("update document", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("update document", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete deletes a document
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return mapError("delete document", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("delete document", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}
