package api

// Машиночитаемые коды ошибок в поле errorCode
const (
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUsernameMissing    = "USERNAME_MISSING"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeBadRequest         = "BAD_REQUEST"
	CodeExpiredMfaSession  = "EXPIRED_MFA_SESSION"
	CodeMfaNotConfigured   = "MFA_NOT_CONFIGURED"
	CodeInvalidMfaCode     = "INVALID_MFA_CODE"
	CodeInvalidSession     = "INVALID_SESSION"
	CodeServerError        = "SERVER_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// String возвращает указатель на строку для nullable полей ответа
func String(v string) *string {
	return &v
}
