package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DataRequest запрос /data: payload сохраняется как есть
type DataRequest struct {
	Username string          `json:"username"`
	Payload  json.RawMessage `json:"payload"`
}

// DataPayload обязательные поля payload
type DataPayload struct {
	LoginTimestamp Timestamp `json:"loginTimestamp"`
}

// Timestamp принимает epoch миллисекунды (число) или строку RFC 3339
// Ноль, пустая строка и null дают нулевое значение
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time = parsed.UTC()
				return nil
			}
		}
		return fmt.Errorf("invalid timestamp %q", s)
	}

	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	if ms == 0 {
		t.Time = time.Time{}
		return nil
	}

	t.Time = time.UnixMilli(int64(ms)).UTC()
	return nil
}

// MarshalJSON кодирует время как epoch миллисекунды
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}
