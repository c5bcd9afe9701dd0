package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/httputil"

	"github.com/google/uuid"
)

// PathParam returns a required path value, writing 400 when it is blank
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := strings.TrimSpace(r.PathValue(name))
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return value, true
}

// IDParam returns a path value that must be a UUID. Anything else cannot
// name a stored row, so it gets the same 404 as a missing one.
func IDParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := r.PathValue(name)
	if _, err := uuid.Parse(value); err != nil {
		httputil.RespondError(w, http.StatusNotFound, "not found")
		return "", false
	}
	return value, true
}

// VersionParam parses a positive version number from the path
func VersionParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(r.PathValue("versionNo"))
	if err != nil || n < 1 {
		httputil.RespondError(w, http.StatusBadRequest, "invalid version number")
		return 0, false
	}
	return n, true
}

// QueryInt parses an integer query parameter, clamped to [min, max].
// Missing or malformed values yield def.
func QueryInt(r *http.Request, name string, def, min, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// QueryBool parses a boolean query parameter; malformed values are false
func QueryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

// pageRequest reads ?page=&size=; size 0 lets the service pick its default
func pageRequest(r *http.Request) models.PageRequest {
	return models.PageRequest{
		Page: QueryInt(r, "page", 0, 0, 1<<20),
		Size: QueryInt(r, "size", 0, 0, models.MaxPageSize),
	}
}

func includeArchived(r *http.Request) bool {
	return QueryBool(r, "include_archived")
}

// decodeBody parses the JSON body into dest, writing 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	err := httputil.ParseJSON(w, r, dest)
	switch {
	case err == nil:
		return true
	case errors.Is(err, httputil.ErrBodyTooLarge):
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	default:
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
	}
	return false
}
