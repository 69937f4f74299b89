package handler

import (
	"net/http"
	"strconv"

	"docvault/internal/httputil"
)

// PathID extracts a positive int64 path parameter, responding with 400 when
// it is missing or malformed. The second return value reports success.
func PathID(w http.ResponseWriter, r *http.Request, name, label string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondError(w, http.StatusBadRequest, label+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// QueryID extracts a positive int64 query parameter the same way.
func QueryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondError(w, http.StatusBadRequest, name+" query parameter must be a positive integer")
		return 0, false
	}
	return id, true
}
