package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/hearthabitz/pkg/api"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// Сообщения ответов
const (
	msgServerError   = "Server error"
	msgInternalError = "Internal server error"
	msgInvalidBody   = "Invalid request body"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendMessage отправляет конверт message + errorCode
func sendMessage(logger *slog.Logger, w http.ResponseWriter, message, code string, statusCode int) {
	resp := api.MessageResponse{Message: message}
	if code != "" {
		resp.ErrorCode = api.String(code)
	}
	sendJSON(logger, w, resp, statusCode)
}

// decodeJSON читает тело запроса в dst с ограничением размера
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
