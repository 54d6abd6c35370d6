package api

import "time"

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"` // email пользователя
	Password string `json:"password"` // пароль в открытом виде, только по TLS
}

// LoginRequest представляет запрос на проверку пароля
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse общий ответ /register и /login
// Поля, не относящиеся к исходу, сериализуются как null
type AuthResponse struct {
	Token            *string `json:"token"`           // всегда null: сессия выдается только после OTP
	ErrorCode        *string `json:"errorCode"`       // null при успехе
	MfaSessionToken  *string `json:"mfaSessionToken"` // токен MFA challenge
	OtpAuthURI       *string `json:"otpAuthUri"`      // otpauth:// URI для приложения-аутентификатора
	ManualEntryKey   *string `json:"manualEntryKey"`  // base32 секрет для ручного ввода
	Message          string  `json:"message"`
	RequiresMfa      bool    `json:"requiresMfa"`
	MfaSetupRequired bool    `json:"mfaSetupRequired"`
}

// EnrollRequest запрос на выдачу TOTP секрета
type EnrollRequest struct {
	Username string `json:"username"`
}

// EnrollResponse ответ /mfa/enroll
type EnrollResponse struct {
	ManualEntryKey *string `json:"manualEntryKey,omitempty"`
	OtpauthURI     *string `json:"otpauthUri,omitempty"`
	QRCodeDataURI  *string `json:"qrCodeDataUri,omitempty"` // PNG QR код otpauthUri как data: URI
	ErrorCode      *string `json:"errorCode"`
	Message        string  `json:"message"`
}

// VerifyRequest запрос на проверку OTP кода
type VerifyRequest struct {
	Username        string  `json:"username"`
	MfaSessionToken string  `json:"mfaSessionToken"`
	OtpCode         OTPCode `json:"otpCode"` // строка или число
}

// VerifyResponse ответ /mfa/verify
type VerifyResponse struct {
	Token     *string `json:"token"` // токен сессии, null при неудаче
	ErrorCode *string `json:"errorCode"`
	Message   string  `json:"message"`
}

// SessionResponse ответ GET /session
type SessionResponse struct {
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	ErrorCode *string    `json:"errorCode"`
	UserID    string     `json:"userId,omitempty"`
	Username  string     `json:"username,omitempty"`
	Message   string     `json:"message"`
}

// MessageResponse минимальный конверт ответа: message + errorCode
type MessageResponse struct {
	ErrorCode *string `json:"errorCode"`
	Message   string  `json:"message"`
}

// HealthResponse ответ GET /health
type HealthResponse struct {
	ErrorCode *string `json:"errorCode"` // null если БД доступна
	Status    string  `json:"status"`
	Version   string  `json:"version"`
	Message   string  `json:"message"`
}
