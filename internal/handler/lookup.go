package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// LookupHandler serves the cascading form lists.
type LookupHandler struct {
	resolver services.PermissionResolver
	lookups  services.DependentLookups
	logger   *slog.Logger
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(
	resolver services.PermissionResolver,
	lookups services.DependentLookups,
	logger *slog.Logger,
) *LookupHandler {
	return &LookupHandler{
		resolver: resolver,
		lookups:  lookups,
		logger:   logger,
	}
}

type departmentsResponse struct {
	Success     bool                        `json:"success"`
	Departments []services.DepartmentOption `json:"departments"`
}

type foldersResponse struct {
	Success bool                    `json:"success"`
	Folders []services.FolderOption `json:"folders"`
}

// Departments lists a company's departments visible to the caller.
// GET /api/lookups/departments?company_id=...
func (h *LookupHandler) Departments(w http.ResponseWriter, r *http.Request) {
	companyID, ok := QueryID(w, r, "company_id")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	pctx := h.resolver.Resolve(r.Context(), userID, httputil.GetRole(r))

	options, err := h.lookups.DepartmentsForCompany(r.Context(), pctx, companyID)
	if err != nil {
		h.logger.Error("department lookup failed", "company_id", companyID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, departmentsResponse{Success: true, Departments: options})
}

// Folders lists a department's folders visible to the caller.
// GET /api/lookups/folders?department_id=...
func (h *LookupHandler) Folders(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := QueryID(w, r, "department_id")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	pctx := h.resolver.Resolve(r.Context(), userID, httputil.GetRole(r))

	options, err := h.lookups.FoldersForDepartment(r.Context(), pctx, departmentID)
	if err != nil {
		h.logger.Error("folder lookup failed", "department_id", departmentID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, foldersResponse{Success: true, Folders: options})
}
