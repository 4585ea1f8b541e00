package secid

import (
	"encoding/binary"
	"unicode/utf8"
)

// Payload format versions. The version byte doubles as the kind tag.
const (
	versionNumber byte = 1
	versionString byte = 2
)

// Value limits.
const (
	// MaxNumber is the largest value a number id can carry.
	MaxNumber = 2147483647

	// MaxStringBytes is the largest UTF-8 byte length a string id can carry.
	MaxStringBytes = 65535
)

const (
	numberPayloadLen = 7 // version + type id + uint32
	stringHeaderLen  = 5 // version + type id + uint16 length
)

// payload is the plaintext framed inside an envelope.
// Exactly one of number or text is meaningful, selected by kind.
type payload struct {
	kind   Kind
	typeID uint16
	number uint32
	text   string
}

// marshal frames p. Values must already be validated.
func (p payload) marshal() []byte {
	switch p.kind {
	case KindNumber:
		buf := make([]byte, numberPayloadLen)
		buf[0] = versionNumber
		binary.BigEndian.PutUint16(buf[1:3], p.typeID)
		binary.BigEndian.PutUint32(buf[3:7], p.number)
		return buf
	case KindString:
		buf := make([]byte, stringHeaderLen+len(p.text))
		buf[0] = versionString
		binary.BigEndian.PutUint16(buf[1:3], p.typeID)
		binary.BigEndian.PutUint16(buf[3:5], uint16(len(p.text))) // #nosec G115 -- bounded by MaxStringBytes
		copy(buf[stringHeaderLen:], p.text)
		return buf
	default:
		panic("secid: payload with unknown kind " + p.kind.String())
	}
}

// unmarshalPayload reads a framed payload without failing early.
// versionOK reports a known version byte; valueOK reports that the value
// for that version was read completely. Callers fold both into a single
// verdict together with the tag and type checks.
func unmarshalPayload(buf []byte) (p payload, versionOK, valueOK bool) {
	if len(buf) < 3 {
		return payload{}, false, false
	}
	version := buf[0]
	p.typeID = binary.BigEndian.Uint16(buf[1:3])

	switch version {
	case versionNumber:
		p.kind = KindNumber
		versionOK = true
		if len(buf) == numberPayloadLen {
			p.number = binary.BigEndian.Uint32(buf[3:7])
			valueOK = true
		}
	case versionString:
		p.kind = KindString
		versionOK = true
		if len(buf) >= stringHeaderLen {
			n := int(binary.BigEndian.Uint16(buf[3:5]))
			body := buf[stringHeaderLen:]
			if len(body) == n && utf8.Valid(body) {
				p.text = string(body)
				valueOK = true
			}
		}
	}
	return p, versionOK, valueOK
}

// numberPayload validates v for a number namespace.
func numberPayload(typeName string, typeID uint16, v int64) (payload, error) {
	if v < 0 {
		return payload{}, newMalformed(typeName, ReasonNegative, v)
	}
	if v > MaxNumber {
		return payload{}, newMalformed(typeName, ReasonTooLarge, v)
	}
	return payload{kind: KindNumber, typeID: typeID, number: uint32(v)}, nil // #nosec G115 -- range checked
}

// stringPayload validates s for a string namespace.
func stringPayload(typeName string, typeID uint16, s string) (payload, error) {
	if len(s) > MaxStringBytes {
		return payload{}, newMalformed(typeName, ReasonTooLong, len(s))
	}
	if !utf8.ValidString(s) {
		return payload{}, newMalformed(typeName, ReasonEncoding, s)
	}
	return payload{kind: KindString, typeID: typeID, text: s}, nil
}
