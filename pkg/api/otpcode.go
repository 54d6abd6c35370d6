package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// OTPCode код из приложения-аутентификатора
// Принимает строку или целое число: число дополняется нулями слева до 6 цифр
type OTPCode string

// UnmarshalJSON implements json.Unmarshaler
func (c *OTPCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = OTPCode(s)
		return nil
	}

	n, err := strconv.ParseUint(string(data), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid otp code %s: %w", data, err)
	}

	*c = OTPCode(fmt.Sprintf("%06d", n))
	return nil
}
