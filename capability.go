package secid

import "fmt"

// Style represents a supported external rendering of an id envelope.
// Use these constants with WithStyle or in configuration: `SECID_STYLE=base64`
type Style string

const (
	// StyleHex renders the envelope as lowercase hexadecimal, two characters per byte.
	StyleHex Style = "hex"

	// StyleBase64 renders the envelope as URL-safe base64 without padding.
	StyleBase64 Style = "base64"

	// StyleHashids renders the envelope as an opaque alphanumeric string
	// produced by a hashids codec salted from the factory secret.
	StyleHashids Style = "hashids"
)

// DefaultStyle is used when no style option is given.
const DefaultStyle = StyleHashids

// validStyles contains all valid styles for option and config validation.
var validStyles = map[Style]bool{
	StyleHex:     true,
	StyleBase64:  true,
	StyleHashids: true,
}

// IsValidStyle returns true if the style is a known rendering.
func IsValidStyle(s Style) bool {
	return validStyles[s]
}

// String implements fmt.Stringer.
func (s Style) String() string {
	return string(s)
}

// UnmarshalText lets configuration decoders read a Style from text.
func (s *Style) UnmarshalText(text []byte) error {
	style := Style(text)
	if !IsValidStyle(style) {
		return fmt.Errorf("%w: %q", ErrInvalidStyle, string(text))
	}
	*s = style
	return nil
}

// Kind is the closed set of value kinds an id can carry.
type Kind uint8

const (
	// KindNumber carries an unsigned integer in [0, MaxNumber].
	KindNumber Kind = iota + 1

	// KindString carries a UTF-8 string of at most MaxStringBytes bytes.
	KindString
)

// String returns "number" or "string".
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}
