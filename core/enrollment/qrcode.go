package enrollment

import (
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

// QRSize is the default side, in pixels, of badge QR images.
const QRSize = 256

// QRCodePNG renders the enrollment's check-in code as a PNG.
func QRCodePNG(e Enrollment, size int) ([]byte, error) {
	if e.QRCode == "" {
		return nil, errors.Errorf("enrollment %s has no qr code", e.ID)
	}
	if size <= 0 {
		size = QRSize
	}
	png, err := qrcode.Encode(e.QRCode, qrcode.Medium, size)
	return png, errors.Wrap(err, "encoding qr code")
}

// WriteQRCode writes the enrollment's check-in code as a PNG file.
func WriteQRCode(e Enrollment, size int, path string) error {
	if e.QRCode == "" {
		return errors.Errorf("enrollment %s has no qr code", e.ID)
	}
	if size <= 0 {
		size = QRSize
	}
	return errors.Wrap(qrcode.WriteFile(e.QRCode, qrcode.Medium, size, path), "writing qr code")
}
