package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// TransferHandler serves document relocation.
type TransferHandler struct {
	resolver services.PermissionResolver
	transfer services.TransferService
	logger   *slog.Logger
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(
	resolver services.PermissionResolver,
	transfer services.TransferService,
	logger *slog.Logger,
) *TransferHandler {
	return &TransferHandler{
		resolver: resolver,
		transfer: transfer,
		logger:   logger,
	}
}

type moveRequest struct {
	DocumentID int64 `json:"document_id"`
	FolderID   int64 `json:"folder_id"`
}

// Move relocates a document into a target folder. The response is always
// 200 with a success flag and message; precondition failures are outcomes,
// not transport errors.
// POST /api/documents/move
func (h *TransferHandler) Move(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req moveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DocumentID <= 0 || req.FolderID <= 0 {
		httputil.RespondError(w, http.StatusBadRequest, "document_id and folder_id must be positive integers")
		return
	}

	pctx := h.resolver.Resolve(r.Context(), userID, httputil.GetRole(r))
	result := h.transfer.Move(r.Context(), pctx, userID, req.DocumentID, req.FolderID)

	httputil.RespondJSON(w, http.StatusOK, result)
}
