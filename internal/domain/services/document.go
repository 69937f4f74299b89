package services

import (
	"context"
	"io"

	"docvault/internal/domain/models"
)

// CreateDocumentRequest carries everything needed to ingest a new document.
type CreateDocumentRequest struct {
	UserID           int64
	CompanyID        int64
	DepartmentID     *int64
	FolderID         *int64
	DocumentTypeID   *int64
	Name             string
	Description      string
	OriginalFilename string
	Size             int64
	Content          io.Reader
}

// DocumentContent is an open handle on a stored document's bytes.
// The caller owns closing it.
type DocumentContent struct {
	Document *models.Document
	Body     io.ReadCloser
}

// DocumentIngest creates documents (blob write plus relational insert as one
// logical unit: a failed insert unwinds the blob, a failed blob write never
// reaches the insert) and streams stored bytes back out through the
// capability, restriction and quota gates.
type DocumentIngest interface {
	Create(ctx context.Context, pctx *models.PermissionContext, req *CreateDocumentRequest) (*models.Document, error)
	Open(ctx context.Context, pctx *models.PermissionContext, userID, documentID int64) (*DocumentContent, error)
}
