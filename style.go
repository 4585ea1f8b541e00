package secid

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/speps/go-hashids/v2"
)

// styleCodec renders envelopes as text and back.
// decode errors are never shown to callers; they become ErrInvalidID.
type styleCodec interface {
	encode(raw []byte) (string, error)
	decode(text string) ([]byte, error)
}

// newStyleCodec builds the codec for style. hashidsSalt is only used by StyleHashids.
func newStyleCodec(style Style, hashidsSalt string) (styleCodec, error) {
	switch style {
	case StyleHex:
		return hexStyle{}, nil
	case StyleBase64:
		return base64Style{}, nil
	case StyleHashids:
		return newHashidsStyle(hashidsSalt)
	default:
		return nil, newConfigError(ErrInvalidStyle, "", string(style))
	}
}

type hexStyle struct{}

func (hexStyle) encode(raw []byte) (string, error) {
	return hex.EncodeToString(raw), nil
}

func (hexStyle) decode(text string) ([]byte, error) {
	return hex.DecodeString(text)
}

// base64Style is URL-safe base64 with the padding stripped.
type base64Style struct{}

func (base64Style) encode(raw []byte) (string, error) {
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func (base64Style) decode(text string) ([]byte, error) {
	text = strings.TrimRight(text, "=")
	if pad := len(text) % 4; pad != 0 {
		text += strings.Repeat("=", 4-pad)
	}
	return base64.URLEncoding.DecodeString(text)
}

type hashidsStyle struct {
	h *hashids.HashID
}

func newHashidsStyle(salt string) (*hashidsStyle, error) {
	data := hashids.NewData()
	data.Salt = salt
	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("hashids: %w", err)
	}
	return &hashidsStyle{h: h}, nil
}

func (s *hashidsStyle) encode(raw []byte) (string, error) {
	return s.h.EncodeHex(hex.EncodeToString(raw))
}

// decode treats the hashids codec as untrusted with attacker input:
// any error or panic is reported as a plain decode failure.
func (s *hashidsStyle) decode(text string) (raw []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw, err = nil, fmt.Errorf("hashids: %v", r)
		}
	}()
	h, err := s.h.DecodeHex(text)
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(h)
}
