package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"tlstory/internal/domain"
	"tlstory/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		conflictErr  *domain.ConflictError
		malformedErr *domain.MalformedRowError
	)

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]any{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	case errors.As(err, &malformedErr):
		logger.Error("malformed row",
			"request_id", httputil.GetRequestID(r),
			"entity", malformedErr.Entity,
			"row_id", malformedErr.RowID,
			"field", malformedErr.Field,
			"error", err,
		)
		httputil.RespondError(w, http.StatusInternalServerError, malformedErr.Error())
	default:
		logger.Error("request failed",
			"request_id", httputil.GetRequestID(r),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID reads the {id} path value, answering 400 when it is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := httputil.PathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// queryBool reads a boolean query parameter, answering 400 when it does not parse.
func queryBool(w http.ResponseWriter, r *http.Request, key string, def bool) (bool, bool) {
	v, err := httputil.QueryBool(r, key, def)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return false, false
	}
	return v, true
}
