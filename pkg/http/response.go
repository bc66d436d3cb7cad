package http

import (
	"encoding/json"
	"net/http"

	apperrors "hotelbooking/pkg/errors"
)

type SuccessResponse struct {
	Data any `json:"data"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError renders err using its AppError status. Anything else becomes a 500.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	if appErr.Code == apperrors.CodeInternal {
		return WriteJSON(w, appErr.StatusCode(), apperrors.ErrorResponse{
			Code:    appErr.Code,
			Message: "Internal server error",
		})
	}
	return WriteJSON(w, appErr.StatusCode(), appErr.Response())
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteAccepted(w http.ResponseWriter, data any) error {
	if data == nil {
		w.WriteHeader(http.StatusAccepted)
		return nil
	}
	return WriteJSON(w, http.StatusAccepted, SuccessResponse{Data: data})
}
