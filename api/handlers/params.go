package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/carelinkhq/hospital-api/config"
	"github.com/carelinkhq/hospital-api/databases"
	"github.com/carelinkhq/hospital-api/models"
)

// parseListOptions reads the recognized list parameters off the query
// string. Unknown parameters are ignored; malformed numerics fall back to
// the defaults.
func parseListOptions(r *http.Request) databases.ListOptions {
	q := r.URL.Query()
	lo := databases.ListOptions{
		Name:         q.Get("name"),
		Status:       q.Get("status"),
		DoctorID:     q.Get("doctor_id"),
		DepartmentID: q.Get("department_id"),
		SortBy:       q.Get("sort_by"),
		SortOrder:    q.Get("sort_order"),
	}
	if pageStr := q.Get("page"); pageStr != "" {
		if page, err := strconv.ParseInt(pageStr, 10, 64); err == nil {
			lo.Page = page
		} else {
			zap.S().Warnf("page not parseable, using default of %v, err: %v", databases.DefaultPage, err)
		}
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.ParseInt(limitStr, 10, 64); err == nil {
			lo.Limit = limit
		} else {
			zap.S().Warnf("limit not parseable, using default of %v, err: %v", databases.DefaultLimit, err)
		}
	}
	if deletedStr := q.Get("is_deleted"); deletedStr != "" {
		if deleted, err := strconv.ParseBool(deletedStr); err == nil {
			lo.IncludeDeleted = &deleted
		}
	}
	return lo
}

// respondError maps a domain error kind to an HTTP status and writes the
// error response
func respondError(message string, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch models.KindOf(err) {
	case models.KindNotFound:
		status = http.StatusNotFound
	case models.KindInvalidArgument:
		status = http.StatusBadRequest
	case models.KindAlreadyExists, models.KindInvalidState:
		status = http.StatusConflict
	}
	config.ErrorStatus(message, status, w, err)
}
