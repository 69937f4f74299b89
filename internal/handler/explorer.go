package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// ExplorerHandler serves the browse and search surface.
// Handlers only communicate with services, never repositories.
type ExplorerHandler struct {
	resolver   services.PermissionResolver
	navigation services.NavigationProvider
	search     services.SearchEngine
	logger     *slog.Logger
}

// NewExplorerHandler creates a new explorer handler.
func NewExplorerHandler(
	resolver services.PermissionResolver,
	navigation services.NavigationProvider,
	search services.SearchEngine,
	logger *slog.Logger,
) *ExplorerHandler {
	return &ExplorerHandler{
		resolver:   resolver,
		navigation: navigation,
		search:     search,
		logger:     logger,
	}
}

type explorerResponse struct {
	Items []models.Item `json:"items"`
}

// Browse lists the children at a virtual path, or searches when a term is
// present - a non-empty term overrides the path entirely.
// GET /api/explorer?path=...&term=...
func (h *ExplorerHandler) Browse(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	pctx := h.resolver.Resolve(r.Context(), userID, httputil.GetRole(r))

	query := r.URL.Query()
	term := query.Get("term")

	var (
		items []models.Item
		err   error
	)
	if term != "" {
		items, err = h.search.Search(r.Context(), pctx, term)
	} else {
		items, err = h.navigation.List(r.Context(), pctx, query.Get("path"))
	}
	if err != nil {
		h.logger.Error("explorer request failed", "user_id", userID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, explorerResponse{Items: items})
}
