// Package otp реализует TOTP второй фактор: выдачу секрета и проверку кодов.
package otp

import (
	"crypto/subtle"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	pqotp "github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// SecretSize размер секрета в байтах (160 бит, RFC 4226)
	SecretSize = 20
	// Period длительность шага TOTP
	Period = 30 * time.Second
	// Digits количество цифр в коде
	Digits = 6
	// DefaultWindow количество соседних шагов, допускаемых с каждой стороны
	DefaultWindow = 1
)

var (
	// ErrInvalidSecret возвращается для секрета, который не декодируется из base32
	ErrInvalidSecret = errors.New("invalid base32 secret")
	// ErrMissingIssuer возвращается, если provisioner создан без issuer
	ErrMissingIssuer = errors.New("issuer is required")
	// ErrMissingAccount возвращается для пустого account label
	ErrMissingAccount = errors.New("account name is required")
)

var secretEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Enrollment содержит данные для настройки приложения-аутентификатора
type Enrollment struct {
	Secret      string // base32 секрет для ручного ввода
	URI         string // otpauth:// URI для QR кода
	Issuer      string
	AccountName string
}

// Provisioner генерирует TOTP секреты и provisioning URI
type Provisioner struct {
	issuer string
}

// NewProvisioner создает provisioner для заданного issuer
func NewProvisioner(issuer string) (*Provisioner, error) {
	if strings.TrimSpace(issuer) == "" {
		return nil, ErrMissingIssuer
	}
	return &Provisioner{issuer: issuer}, nil
}

// Issuer возвращает имя issuer, которое видит пользователь в приложении
func (p *Provisioner) Issuer() string {
	return p.issuer
}

// Generate создает новый случайный секрет для аккаунта
func (p *Provisioner) Generate(accountName string) (*Enrollment, error) {
	if accountName == "" {
		return nil, ErrMissingAccount
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      p.issuer,
		AccountName: accountName,
		Period:      uint(Period / time.Second),
		SecretSize:  SecretSize,
		Digits:      pqotp.DigitsSix,
		Algorithm:   pqotp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate totp key: %w", err)
	}

	return &Enrollment{
		Secret:      key.Secret(),
		URI:         key.URL(),
		Issuer:      p.issuer,
		AccountName: accountName,
	}, nil
}

// FromSecret восстанавливает enrollment для уже сохраненного секрета
// Используется повторным enrollment, чтобы не перевыпускать секрет
func (p *Provisioner) FromSecret(accountName, secret string) (*Enrollment, error) {
	if accountName == "" {
		return nil, ErrMissingAccount
	}

	raw, err := decodeSecret(secret)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      p.issuer,
		AccountName: accountName,
		Period:      uint(Period / time.Second),
		Secret:      raw,
		Digits:      pqotp.DigitsSix,
		Algorithm:   pqotp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build totp key: %w", err)
	}

	return &Enrollment{
		Secret:      key.Secret(),
		URI:         key.URL(),
		Issuer:      p.issuer,
		AccountName: accountName,
	}, nil
}

// Verifier проверяет TOTP коды. Не хранит состояния
type Verifier struct {
	window int
}

// NewVerifier создает verifier, принимающий window шагов с каждой стороны
func NewVerifier(window int) *Verifier {
	if window < 0 {
		window = 0
	}
	return &Verifier{window: window}
}

// Verify проверяет код для момента at с допуском на рассинхронизацию часов
// Все кандидаты сравниваются за постоянное время, перебор не прерывается досрочно
func (v *Verifier) Verify(secret, code string, at time.Time) bool {
	code = strings.TrimSpace(code)
	if len(code) != Digits {
		return false
	}

	matched := 0
	for step := -v.window; step <= v.window; step++ {
		candidate, err := Code(secret, at.Add(time.Duration(step)*Period))
		if err != nil {
			return false
		}
		matched |= subtle.ConstantTimeCompare([]byte(candidate), []byte(code))
	}

	return matched == 1
}

// Code вычисляет TOTP код для момента at
func Code(secret string, at time.Time) (string, error) {
	raw, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	code, err := totp.GenerateCodeCustom(secretEncoding.EncodeToString(raw), at, totp.ValidateOpts{
		Period:    uint(Period / time.Second),
		Digits:    pqotp.DigitsSix,
		Algorithm: pqotp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate totp code: %w", err)
	}

	return code, nil
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	secret = strings.TrimRight(secret, "=")
	if secret == "" {
		return nil, ErrInvalidSecret
	}

	raw, err := secretEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}

	return raw, nil
}
