package utils

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// MaxEncodedPlanBytes bounds the share payload so it stays embeddable in a
// URL query parameter. Oversized plans are rejected, never truncated.
const MaxEncodedPlanBytes = 8000

// EncodeForSharing serializes v and applies a URL-safe base64 transform.
func EncodeForSharing(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodingTooLarge, err)
	}
	encoded := base64.URLEncoding.EncodeToString(raw)
	if len(encoded) > MaxEncodedPlanBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrEncodingTooLarge, len(encoded))
	}
	return encoded, nil
}

// DecodeShared reverses EncodeForSharing. Any decode or parse failure is a
// corrupt link; callers fall back to a fresh wizard session.
func DecodeShared[T any](encoded string) (T, error) {
	var out T
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrCorruptShareLink, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrCorruptShareLink, err)
	}
	return out, nil
}

// ShareQR renders a share URL as a 256px QR PNG.
func ShareQR(url string) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingTooLarge, err)
	}
	return png, nil
}
