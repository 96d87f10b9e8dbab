package render

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRDataURI encodes content as a PNG QR code and returns it as an inline
// data URI suitable for the {{qr_code}} placeholder on receipt templates.
// The encoding stays fully in memory.
func QRDataURI(content string, size int) (string, error) {
	if size <= 0 {
		size = 192
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
