package services

import (
	"context"

	"docvault/internal/domain/models"
)

// MoveResult reports the outcome of a document relocation. Message carries
// the distinct precondition failure, or a generic message for storage
// failures - never internal detail.
type MoveResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TransferService validates and performs a document relocation between
// folders, re-checking permissions against the destination.
type TransferService interface {
	Move(ctx context.Context, pctx *models.PermissionContext, userID, documentID, targetFolderID int64) MoveResult
}
