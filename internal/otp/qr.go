package otp

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultQRSize размер PNG по умолчанию в пикселях
const DefaultQRSize = 256

// ErrEmptyURI возвращается при попытке закодировать пустой URI
var ErrEmptyURI = errors.New("provisioning uri cannot be empty")

// QRCodePNG кодирует provisioning URI в PNG
func QRCodePNG(uri string, size int) ([]byte, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, ErrEmptyURI
	}
	if size <= 0 {
		size = DefaultQRSize
	}

	png, err := qrcode.Encode(uri, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	return png, nil
}

// QRCodeDataURI возвращает PNG в виде data: URI для встраивания в HTML
func QRCodeDataURI(uri string, size int) (string, error) {
	png, err := QRCodePNG(uri, size)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// QRCodeTerminal рисует QR код символами блоков для вывода в терминал
func QRCodeTerminal(uri string) (string, error) {
	if strings.TrimSpace(uri) == "" {
		return "", ErrEmptyURI
	}

	code, err := qrcode.New(uri, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}

	return code.ToSmallString(false), nil
}
