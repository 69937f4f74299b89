package service

import (
	"context"
	"fmt"
	"log/slog"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

// Precondition failure messages. Each failed check has its own distinct
// message; storage failures always surface the generic one.
const (
	msgNoEditPermission = "no edit permission"
	msgFolderNotFound   = "folder not found"
	msgAccessRestricted = "access restricted"
	msgDocumentNotFound = "document not found"
	msgMoveConflict     = "document was modified by another request, try again"
	msgMoveFailed       = "unable to move document"
	msgMoved            = "document moved"
)

type transferService struct {
	documents repositories.DocumentRepository
	folders   repositories.FolderRepository
	activity  repositories.ActivityRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewTransferService creates the document relocation service.
func NewTransferService(
	documents repositories.DocumentRepository,
	folders repositories.FolderRepository,
	activity repositories.ActivityRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.TransferService {
	return &transferService{
		documents: documents,
		folders:   folders,
		activity:  activity,
		txManager: txManager,
		logger:    logger,
	}
}

// Move relocates a document into the target folder. Preconditions run in
// order and short-circuit on the first failure: edit capability, target
// folder exists and is active, restrictions permit the target's company and
// department, document exists and is active. The write itself is one
// version-guarded update plus an audit entry in a single transaction; a
// version mismatch means a concurrent move won and this one is rejected
// rather than silently overwritten.
func (s *transferService) Move(ctx context.Context, pctx *models.PermissionContext, userID, documentID, targetFolderID int64) services.MoveResult {
	if !pctx.Can(models.CapEdit) {
		return services.MoveResult{Success: false, Message: msgNoEditPermission}
	}

	folder, err := s.folders.GetByID(ctx, targetFolderID)
	if err != nil {
		if isNotFound(err) {
			return services.MoveResult{Success: false, Message: msgFolderNotFound}
		}
		s.logger.Error("move failed resolving folder", "folder_id", targetFolderID, "error", err)
		return services.MoveResult{Success: false, Message: msgMoveFailed}
	}
	if !folder.Active() {
		return services.MoveResult{Success: false, Message: msgFolderNotFound}
	}

	if !pctx.Companies.Allows(folder.CompanyID) || !pctx.Departments.Allows(folder.DepartmentID) {
		return services.MoveResult{Success: false, Message: msgAccessRestricted}
	}

	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if isNotFound(err) {
			return services.MoveResult{Success: false, Message: msgDocumentNotFound}
		}
		s.logger.Error("move failed resolving document", "document_id", documentID, "error", err)
		return services.MoveResult{Success: false, Message: msgMoveFailed}
	}
	if !doc.Active() {
		return services.MoveResult{Success: false, Message: msgDocumentNotFound}
	}

	// A document belongs to exactly one company; folders never change it.
	if doc.CompanyID != folder.CompanyID {
		return services.MoveResult{Success: false, Message: msgAccessRestricted}
	}

	var moved bool
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		moved, err = s.documents.Move(txCtx, doc.ID, folder.ID, folder.DepartmentID, doc.Version)
		if err != nil {
			return err
		}
		if !moved {
			return nil
		}
		return s.activity.Record(txCtx, &models.ActivityEntry{
			UserID:     userID,
			Action:     models.ActionMove,
			EntityType: "document",
			EntityID:   doc.ID,
			Detail:     fmt.Sprintf("moved to folder %d", folder.ID),
		})
	})
	if err != nil {
		s.logger.Error("move failed", "document_id", doc.ID, "folder_id", folder.ID, "error", err)
		return services.MoveResult{Success: false, Message: msgMoveFailed}
	}
	if !moved {
		return services.MoveResult{Success: false, Message: msgMoveConflict}
	}

	s.logger.Info("document moved",
		"document_id", doc.ID,
		"folder_id", folder.ID,
		"department_id", folder.DepartmentID,
		"user_id", userID,
	)
	return services.MoveResult{Success: true, Message: msgMoved}
}
