package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/OliveiraNt/kafka-admin-api/internal/application"
	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

type messageResponse struct {
	Message string `json:"message"`
}

func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, application.ErrClusterNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrTopicAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, application.ErrInvalidTopicName),
		errors.Is(err, application.ErrInvalidPartitionCount),
		errors.Is(err, application.ErrInvalidReplicationFactor),
		errors.Is(err, application.ErrNoNamesRequested):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Logger.Error("encode response failed", "err", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func writeError(w http.ResponseWriter, err error) {
	writeMessage(w, mapErrorToHTTPStatus(err), err.Error())
}
