package models

import (
	"encoding/json"
	"time"
)

// UserData представляет произвольный JSON payload, присланный клиентом после входа.
// Payload хранится как есть, LoginTimestamp извлекается из него для индексации.
type UserData struct {
	LoginTimestamp time.Time       `json:"login_timestamp"` // время входа, указанное клиентом
	CreatedAt      time.Time       `json:"created_at"`      // время сохранения на сервере
	ID             string          `json:"id"`              // UUID записи
	Username       string          `json:"username"`        // владелец записи
	Payload        json.RawMessage `json:"payload"`         // исходный JSON объект
}
