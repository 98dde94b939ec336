package hashtool

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// RenderQR draws text as a QR code made of terminal block characters.
func RenderQR(text string) (string, error) {
	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}
	return code.ToString(false), nil
}
