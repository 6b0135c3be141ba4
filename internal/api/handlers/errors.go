package handlers

import (
	"errors"
	"net/http"

	"github.com/ramonehamilton/proxygen/internal/api/response"
	"github.com/ramonehamilton/proxygen/internal/cards"
	"github.com/ramonehamilton/proxygen/internal/decklist"
	"github.com/ramonehamilton/proxygen/internal/metrics"
)

// suggestionCount bounds "did you mean" lists.
const suggestionCount = 5

// StatusFor maps a decklist or resolution error to an HTTP status.
func StatusFor(err error) int {
	switch metrics.Classify(err) {
	case metrics.FailureParse:
		return http.StatusBadRequest
	case metrics.FailureTooManyCards:
		return http.StatusRequestEntityTooLarge
	case metrics.FailureInvalidName:
		return http.StatusNotFound
	case metrics.FailureMalformed:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// describe builds the error payload for err. Unknown names carry
// suggestions from catalog.
func describe(catalog Catalog, err error) response.ErrorResponse {
	kind := metrics.Classify(err)
	resp := response.ErrorResponse{
		Code:    StatusFor(err),
		Kind:    string(kind),
		Message: err.Error(),
	}
	if kind == metrics.FailureInternal {
		resp.Message = "internal error"
	}

	var (
		lineErr  *decklist.LineError
		limitErr *decklist.LimitError
		nameErr  *cards.NameError
	)
	switch {
	case errors.As(err, &lineErr):
		resp.Line = lineErr.Number
	case errors.As(err, &limitErr):
		resp.Line = limitErr.Number
	}
	if errors.As(err, &nameErr) {
		resp.Name = nameErr.Name
		if kind == metrics.FailureInvalidName {
			resp.Suggestions = catalog.Suggest(nameErr.Name, suggestionCount)
		}
	}
	return resp
}
