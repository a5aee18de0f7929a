package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mdd-api/internal/model"
	"mdd-api/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "user not found"
	} else if errors.Is(err, model.ErrSubjectNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "subject not found"
	} else if errors.Is(err, model.ErrPostNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "post not found"
	} else if errors.Is(err, model.ErrDuplicateRow) {
		status = http.StatusConflict
		body.Code = "CONFLICT"
		body.Message = "resource already exists"
	} else {
		slog.Error("unhandled error", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

func invalidJSONBody(w http.ResponseWriter) {
	writeError(w, apierror.BadRequest("invalid JSON body", ""))
}

func authenticationRequired(w http.ResponseWriter) {
	writeError(w, apierror.Unauthorized("not authenticated"))
}
