package api

import (
	"errors"
	"net/http"

	"vdot/internal/analysis"
	"vdot/internal/export"
	"vdot/internal/service"
	"vdot/internal/store"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// responseFormat picks JSON unless the request asks for format=msgpack
func responseFormat(r *http.Request) export.Format {
	if r.URL.Query().Get("format") == string(export.FormatMsgPack) {
		return export.FormatMsgPack
	}
	return export.FormatJSON
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, resp apiResponse) {
	format := responseFormat(r)
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(status)

	if err := export.Encode(w, format, resp); err != nil {
		s.log.Errorw("failed to encode response", "error", err, "format", format)
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	s.write(w, r, status, apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	s.write(w, r, status, apiResponse{
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	})
}

// respondErr maps a domain error to a status code and error code
func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, analysis.ErrInvalidInput),
		errors.Is(err, service.ErrBadDistance),
		errors.Is(err, service.ErrBadDuration):
		s.respondError(w, r, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, analysis.ErrNoEquivalentTime),
		errors.Is(err, analysis.ErrPaceOutOfDomain),
		errors.Is(err, analysis.ErrOutsideTable):
		s.respondError(w, r, http.StatusUnprocessableEntity, "out_of_domain", err.Error())
	case errors.Is(err, store.ErrRowNotFound):
		s.respondError(w, r, http.StatusNotFound, "not_found", "table row not found, run `vdot table generate`")
	case errors.Is(err, store.ErrCalculationNotFound):
		s.respondError(w, r, http.StatusNotFound, "not_found", "calculation not found")
	case errors.Is(err, service.ErrNoStore):
		s.respondError(w, r, http.StatusServiceUnavailable, "no_store", "storage is not configured")
	default:
		s.log.Errorw("request failed", "error", err, "path", r.URL.Path)
		s.respondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
