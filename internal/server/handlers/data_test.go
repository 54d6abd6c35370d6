package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/hearthabitz/internal/server/auth"
)

type mockDataService struct {
	err     error
	calls   int
	payload json.RawMessage
	at      time.Time
}

func (m *mockDataService) SaveUserData(_ context.Context, _ string, at time.Time, payload json.RawMessage) error {
	m.calls++
	m.at = at
	m.payload = payload
	return m.err
}

func TestDataHandler_Save(t *testing.T) {
	tests := []struct {
		serviceErr error
		name       string
		body       string
		wantCode   any
		wantMsg    string
		wantStatus int
		wantCalls  int
	}{
		{
			name:       "epoch millis",
			body:       `{"username":"alice@example.com","payload":{"loginTimestamp":1700000000000,"mood":"ok"}}`,
			wantStatus: http.StatusOK,
			wantMsg:    "Data saved successfully",
			wantCalls:  1,
		},
		{
			name:       "rfc3339 string",
			body:       `{"username":"alice@example.com","payload":{"loginTimestamp":"2026-03-14T12:00:00Z"}}`,
			wantStatus: http.StatusOK,
			wantMsg:    "Data saved successfully",
			wantCalls:  1,
		},
		{
			name:       "missing username",
			body:       `{"payload":{"loginTimestamp":1700000000000}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantMsg:    "Missing required fields",
		},
		{
			name:       "missing payload",
			body:       `{"username":"alice@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantMsg:    "Missing required fields",
		},
		{
			name:       "null payload",
			body:       `{"username":"alice@example.com","payload":null}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantMsg:    "Missing required fields",
		},
		{
			name:       "missing login timestamp",
			body:       `{"username":"alice@example.com","payload":{"mood":"ok"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantMsg:    "Missing required fields",
		},
		{
			name:       "payload is not an object",
			body:       `{"username":"alice@example.com","payload":"text"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantMsg:    "Missing required fields",
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantMsg:    "Missing required fields",
		},
		{
			name:       "unknown user",
			body:       `{"username":"ghost@example.com","payload":{"loginTimestamp":1700000000000}}`,
			serviceErr: auth.ErrUserNotFound,
			wantStatus: http.StatusOK,
			wantCode:   "USER_NOT_FOUND",
			wantMsg:    "Invalid username",
			wantCalls:  1,
		},
		{
			name:       "storage failure",
			body:       `{"username":"alice@example.com","payload":{"loginTimestamp":1700000000000}}`,
			serviceErr: errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SERVER_ERROR",
			wantMsg:    "Internal server error",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockDataService{err: tt.serviceErr}
			handler := NewDataHandler(setupTestLogger(), svc)

			w := doJSON(t, handler.Save, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, tt.wantCode, body["errorCode"])
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.Equal(t, tt.wantCalls, svc.calls)
		})
	}
}

func TestDataHandler_Save_PassesPayloadThrough(t *testing.T) {
	svc := &mockDataService{}
	handler := NewDataHandler(setupTestLogger(), svc)

	w := doJSON(t, handler.Save, `{"username":"alice@example.com","payload":{"loginTimestamp":1700000000000,"steps":[1,2]}}`)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.JSONEq(t, `{"loginTimestamp":1700000000000,"steps":[1,2]}`, string(svc.payload))
	assert.True(t, time.UnixMilli(1700000000000).Equal(svc.at))
}
