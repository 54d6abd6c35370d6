package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/hearthabitz/internal/server/auth"
	"github.com/iudanet/hearthabitz/pkg/api"
)

// DataService сохранение произвольных данных пользователя
type DataService interface {
	SaveUserData(ctx context.Context, username string, loginTimestamp time.Time, payload json.RawMessage) error
}

// DataHandler обрабатывает POST /api/data
type DataHandler struct {
	logger  *slog.Logger
	service DataService
}

// NewDataHandler создает новый handler для данных пользователя
func NewDataHandler(logger *slog.Logger, service DataService) *DataHandler {
	return &DataHandler{
		logger:  logger,
		service: service,
	}
}

// Save обрабатывает POST /api/data
// payload сохраняется целиком, обязательно поле loginTimestamp
func (h *DataHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	const msgMissingFields = "Missing required fields"

	var req api.DataRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode data request", slog.Any("error", err))
		sendMessage(h.logger, w, msgMissingFields, api.CodeBadRequest, http.StatusBadRequest)
		return
	}

	payload := bytes.TrimSpace(req.Payload)
	if req.Username == "" || len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		sendMessage(h.logger, w, msgMissingFields, api.CodeBadRequest, http.StatusBadRequest)
		return
	}

	var fields api.DataPayload
	if err := json.Unmarshal(payload, &fields); err != nil || fields.LoginTimestamp.IsZero() {
		h.logger.WarnContext(ctx, "invalid data payload", slog.String("username", req.Username), slog.Any("error", err))
		sendMessage(h.logger, w, msgMissingFields, api.CodeBadRequest, http.StatusBadRequest)
		return
	}

	if err := h.service.SaveUserData(ctx, req.Username, fields.LoginTimestamp.Time, payload); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			sendMessage(h.logger, w, "Invalid username", api.CodeUserNotFound, http.StatusOK)
			return
		}
		h.logger.ErrorContext(ctx, "failed to save user data", slog.Any("error", err))
		sendMessage(h.logger, w, msgInternalError, api.CodeServerError, http.StatusInternalServerError)
		return
	}

	sendMessage(h.logger, w, "Data saved successfully", "", http.StatusOK)
}
