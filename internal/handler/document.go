package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// Uploads are capped at 100MB. Larger files belong in a different flow.
const maxUploadBytes = 100 << 20

// DocumentHandler serves document upload and download.
type DocumentHandler struct {
	resolver services.PermissionResolver
	ingest   services.DocumentIngest
	logger   *slog.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(
	resolver services.PermissionResolver,
	ingest services.DocumentIngest,
	logger *slog.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		resolver: resolver,
		ingest:   ingest,
		logger:   logger,
	}
}

// Upload ingests a new document from a multipart form. The file arrives in
// the "file" part; the remaining fields are form values.
// POST /api/documents
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	companyID, err := strconv.ParseInt(r.FormValue("company_id"), 10, 64)
	if err != nil || companyID <= 0 {
		httputil.RespondError(w, http.StatusBadRequest, "company_id must be a positive integer")
		return
	}

	req := &services.CreateDocumentRequest{
		UserID:           userID,
		CompanyID:        companyID,
		Name:             r.FormValue("name"),
		Description:      r.FormValue("description"),
		OriginalFilename: header.Filename,
		Size:             header.Size,
		Content:          file,
	}
	if req.Name == "" {
		req.Name = header.Filename
	}
	for field, dest := range map[string]**int64{
		"department_id":    &req.DepartmentID,
		"folder_id":        &req.FolderID,
		"document_type_id": &req.DocumentTypeID,
	} {
		raw := r.FormValue(field)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httputil.RespondError(w, http.StatusBadRequest, field+" must be a positive integer")
			return
		}
		*dest = &id
	}

	pctx := h.resolver.Resolve(r.Context(), userID, httputil.GetRole(r))

	doc, err := h.ingest.Create(r.Context(), pctx, req)
	if err != nil {
		h.logger.Error("upload failed", "user_id", userID, "company_id", companyID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// Download streams a stored document's bytes.
// GET /api/documents/{id}/download
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	documentID, ok := PathID(w, r, "id", "document ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	pctx := h.resolver.Resolve(r.Context(), userID, httputil.GetRole(r))

	content, err := h.ingest.Open(r.Context(), pctx, userID, documentID)
	if err != nil {
		handleError(w, err)
		return
	}
	defer content.Body.Close()

	doc := content.Document
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalFilename))
	if doc.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(doc.SizeBytes, 10))
	}

	if _, err := io.Copy(w, content.Body); err != nil {
		// Headers are gone; all that is left is logging the broken stream.
		h.logger.Error("download stream interrupted", "document_id", doc.ID, "error", err)
	}
}
