package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/logger"
	"github.com/abhisek/educareer/internal/mentor"
	"github.com/abhisek/educareer/internal/oracle"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/sessions"
)

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error:   &apiError{Code: code, Message: message},
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeError maps domain errors to a status and error code.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	var (
		guard      *session.GuardError
		transition *session.TransitionError
		invalid    *session.ValidationError
		fields     validator.ValidationErrors
	)

	switch {
	case errors.As(err, &guard):
		w.Header().Set("X-Redirect", guard.Redirect.String())
		respondError(w, http.StatusConflict, "guard_redirect", guard.Error())
	case errors.As(err, &transition):
		respondError(w, http.StatusConflict, "illegal_transition", transition.Error())
	case errors.Is(err, sessions.ErrNotFound):
		respondError(w, http.StatusNotFound, "session_not_found", "session not found")
	case errors.Is(err, session.ErrUnknownSpecialization), errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, "specialization_not_found", err.Error())
	case errors.As(err, &invalid), errors.As(err, &fields),
		errors.Is(err, mentor.ErrEmptySubmission), errors.Is(err, mentor.ErrEmptyMessage),
		errors.Is(err, assessment.ErrOutOfRange), errors.Is(err, assessment.ErrUnanswered),
		errors.Is(err, session.ErrInvalidResult), errors.Is(err, session.ErrInvalidTask),
		errors.Is(err, errBadRequest):
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, session.ErrActionInFlight):
		respondError(w, http.StatusTooManyRequests, "action_in_flight", err.Error())
	case errors.Is(err, assessment.ErrContentUnavailable),
		errors.Is(err, oracle.ErrUnavailable), errors.Is(err, oracle.ErrMalformed), errors.Is(err, oracle.ErrIncomplete):
		respondError(w, http.StatusServiceUnavailable, "content_unavailable", err.Error())
	case errors.Is(err, mentor.ErrNoTask), errors.Is(err, mentor.ErrNoFeedback),
		errors.Is(err, mentor.ErrChatUnavailable), errors.Is(err, session.ErrAssessmentNotLoaded),
		errors.Is(err, assessment.ErrNotFinished):
		respondError(w, http.StatusConflict, "precondition_failed", err.Error())
	default:
		log.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

var errBadRequest = errors.New("invalid JSON body")

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errBadRequest
	}
	return nil
}

// decode reads and validates a JSON body.
func (s *Server) decode(r *http.Request, v interface{}) error {
	if err := decodeBody(r, v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}
