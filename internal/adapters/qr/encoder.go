package qr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"guestgate/internal/domain"
)

// imageSize is the fixed edge length in pixels of rendered pass images.
// Changing it changes the bytes of every regenerated image, so it is a
// constant rather than configuration.
const imageSize = 256

type encoder struct {
	baseURL string
}

// NewEncoder returns a PassEncoder. With a non-empty baseURL the payload
// is a full redemption URL; otherwise it is the bare token.
func NewEncoder(baseURL string) domain.PassEncoder {
	return &encoder{baseURL: baseURL}
}

func (e *encoder) EncodePayload(token string) string {
	if e.baseURL == "" {
		return token
	}
	return strings.TrimRight(e.baseURL, "/") + "/checkin?token=" + token
}

// RenderPNG is a pure function of the payload: the same string always
// yields byte-identical PNG output.
func (e *encoder) RenderPNG(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, imageSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
