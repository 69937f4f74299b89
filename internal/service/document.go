package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
	"docvault/internal/storage"
)

const maxDocumentNameLength = 255

type documentIngest struct {
	documents repositories.DocumentRepository
	folders   repositories.FolderRepository
	blobs     storage.BlobStore
	usage     services.UsageLimiter
	logger    *slog.Logger
}

// NewDocumentIngest creates the document creation and download service.
func NewDocumentIngest(
	documents repositories.DocumentRepository,
	folders repositories.FolderRepository,
	blobs storage.BlobStore,
	usage services.UsageLimiter,
	logger *slog.Logger,
) services.DocumentIngest {
	return &documentIngest{
		documents: documents,
		folders:   folders,
		blobs:     blobs,
		usage:     usage,
		logger:    logger,
	}
}

// Create ingests a new document. The blob write happens before the
// relational insert; when the insert fails the blob is deleted again so no
// orphaned bytes are left behind, and when the blob write fails the insert
// is never attempted. The upload quota is reserved up front through the
// limiter's conditional insert.
func (s *documentIngest) Create(ctx context.Context, pctx *models.PermissionContext, req *services.CreateDocumentRequest) (*models.Document, error) {
	if !pctx.Can(models.CapCreate) {
		return nil, &domain.ForbiddenError{Message: "no create permission"}
	}
	if err := validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if !pctx.Companies.Allows(req.CompanyID) {
		return nil, &domain.ForbiddenError{Message: "access restricted"}
	}
	if req.DepartmentID != nil && !pctx.Departments.Allows(*req.DepartmentID) {
		return nil, &domain.ForbiddenError{Message: "access restricted"}
	}
	if req.DocumentTypeID != nil && !pctx.DocumentTypes.Allows(*req.DocumentTypeID) {
		return nil, &domain.ForbiddenError{Message: "access restricted"}
	}

	if req.FolderID != nil {
		folder, err := s.folders.GetByID(ctx, *req.FolderID)
		if err != nil {
			if isNotFound(err) {
				return nil, &domain.NotFoundError{Message: "folder not found"}
			}
			return nil, &domain.StorageError{Op: "resolve folder", Cause: err}
		}
		// A document's folder must match its (company, department) pair.
		if !folder.Active() || folder.CompanyID != req.CompanyID ||
			req.DepartmentID == nil || folder.DepartmentID != *req.DepartmentID {
			return nil, &domain.NotFoundError{Message: "folder not found"}
		}
	}

	allowed, err := s.usage.CheckAndRecord(ctx, pctx, req.UserID, models.ActionUpload, 0)
	if err != nil {
		return nil, &domain.StorageError{Op: "upload quota check", Cause: err}
	}
	if !allowed {
		return nil, fmt.Errorf("upload: %w", domain.ErrQuotaReached)
	}

	blobKey := uuid.New().String() + filepath.Ext(req.OriginalFilename)
	contentType := mime.TypeByExtension(filepath.Ext(req.OriginalFilename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.blobs.Put(ctx, blobKey, req.Content, req.Size, contentType); err != nil {
		s.logger.Error("blob write failed, aborting document creation", "blob_key", blobKey, "error", err)
		return nil, &domain.StorageError{Op: "store document content", Cause: err}
	}

	doc := &models.Document{
		CompanyID:        req.CompanyID,
		DepartmentID:     req.DepartmentID,
		FolderID:         req.FolderID,
		DocumentTypeID:   req.DocumentTypeID,
		Name:             req.Name,
		Description:      req.Description,
		OriginalFilename: req.OriginalFilename,
		BlobKey:          blobKey,
		SizeBytes:        req.Size,
		Status:           models.StatusActive,
		UploadedBy:       req.UserID,
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		// Compensating action: the blob must not outlive a failed insert.
		if delErr := s.blobs.Delete(ctx, blobKey); delErr != nil {
			s.logger.Error("orphaned blob cleanup failed", "blob_key", blobKey, "error", delErr)
		}
		if isNotFound(err) || isConflict(err) {
			return nil, err
		}
		return nil, &domain.StorageError{Op: "create document", Cause: err}
	}

	s.logger.Info("document created",
		"document_id", doc.ID,
		"company_id", doc.CompanyID,
		"blob_key", blobKey,
		"user_id", req.UserID,
	)
	return doc, nil
}

// Open streams a stored document's bytes after the view and download
// capability gates, the restriction checks and the download quota. Missing,
// inactive and restricted documents are indistinguishable to the caller.
func (s *documentIngest) Open(ctx context.Context, pctx *models.PermissionContext, userID, documentID int64) (*services.DocumentContent, error) {
	if !pctx.Can(models.CapView) || !pctx.Can(models.CapDownload) {
		return nil, &domain.ForbiddenError{Message: "no download permission"}
	}

	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if isNotFound(err) {
			return nil, &domain.NotFoundError{Message: "document not found"}
		}
		return nil, &domain.StorageError{Op: "resolve document", Cause: err}
	}
	if !doc.Active() ||
		!pctx.Companies.Allows(doc.CompanyID) ||
		(doc.DepartmentID != nil && !pctx.Departments.Allows(*doc.DepartmentID)) ||
		(doc.DocumentTypeID != nil && !pctx.DocumentTypes.Allows(*doc.DocumentTypeID)) {
		return nil, &domain.NotFoundError{Message: "document not found"}
	}

	allowed, err := s.usage.CheckAndRecord(ctx, pctx, userID, models.ActionDownload, doc.ID)
	if err != nil {
		return nil, &domain.StorageError{Op: "download quota check", Cause: err}
	}
	if !allowed {
		return nil, fmt.Errorf("download: %w", domain.ErrQuotaReached)
	}

	body, err := s.blobs.Get(ctx, doc.BlobKey)
	if err != nil {
		return nil, &domain.StorageError{Op: "open document content", Cause: err}
	}

	return &services.DocumentContent{Document: doc, Body: body}, nil
}

func validateCreateRequest(req *services.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CompanyID, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.Name, validation.Required, validation.Length(1, maxDocumentNameLength)),
		validation.Field(&req.OriginalFilename, validation.Required),
		validation.Field(&req.Content, validation.Required),
	)
}
