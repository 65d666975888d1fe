package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rs/zerolog"
)

const totalCountHeader = "X-Total-Count"

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	// Marshal the data first so a failure can still become a clean 500
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WritePage writes the items of a page as a bare array and the match count
// in the X-Total-Count header.
func WritePage[T any](r Responder, w http.ResponseWriter, page resource.Page[T]) {
	w.Header().Set(totalCountHeader, strconv.FormatInt(page.Total, 10))
	r.WriteJSON(w, http.StatusOK, page.Items)
}

func (r Responder) WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (r Responder) WriteMessage(w http.ResponseWriter, message string) {
	r.WriteJSON(w, http.StatusOK, MessageResponse{Message: message})
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal Server Error",
			Code:   "internal",
			Status: "error",
		})
		return
	}

	response := ErrorResponse{
		Error:   apiErr.Message(),
		Code:    apiErr.Code(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		// Storage and other infrastructure details stay in the log.
		r.logger.Error().Err(err).Str("cause", apiErr.GetFullError()).Msg("internal error")
		response.Error = "Internal Server Error"
		response.Field = ""
		response.Details = ""
	}

	r.WriteJSON(w, apiErr.StatusCode, response)
}
