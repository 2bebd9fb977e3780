package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	httpmw "github.com/cwrk-planet/meeting-service/internal/transport/http/middleware"
	"github.com/cwrk-planet/meeting-service/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrMeetingNotFound),
		errors.Is(err, domain.ErrBoardNotFound),
		errors.Is(err, domain.ErrPageOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrModuleDisabled):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyJoined):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError: 5xx логируются с ошибкой, в теле ответа без подробностей.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		httpmw.L(r.Context()).Error(op, logger.Err(err), "route", routePattern(r))
		writeJSON(w, status, ErrorResponse{Error: "internal error"})
		return
	}
	httpmw.L(r.Context()).Debug(op, logger.Err(err))
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
