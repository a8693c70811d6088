package service

// QRCodeService renders payloads such as otpauth:// URLs as PNG images.
type QRCodeService interface {
	Encode(content string) ([]byte, error)
}
