package secid

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
)

// engine is the encode/decode pipeline shared by a factory and all of its
// namespaces. It holds no mutable state.
type engine struct {
	envelope *envelope
	style    styleCodec
}

func (e *engine) render(p payload) (string, error) {
	return e.style.encode(e.envelope.seal(p.marshal()))
}

// read decodes text and verifies it. accept reports, as 1 or 0, whether the
// decoded payload belongs to an acceptable namespace. Every check is computed
// before the single verdict branch.
func (e *engine) read(text string, accept func(payload) int) (payload, error) {
	raw, err := e.style.decode(text)
	if err != nil || len(raw) < MinEnvelopeLen {
		return payload{}, newInvalidID(text)
	}

	plaintext, tagOK := e.envelope.open(raw)
	p, versionOK, valueOK := unmarshalPayload(plaintext)
	typeOK := accept(p)

	if tagOK&typeOK&bit(versionOK)&bit(valueOK) != 1 {
		return payload{}, newInvalidID(text)
	}
	return p, nil
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Namespace is a handle bound to one registered type. Namespaces are created
// by a Factory and are safe for concurrent use.
type Namespace struct {
	name   string
	typeID uint16
	kind   Kind
	engine *engine
}

// Name returns the type name as registered, in its original case.
func (n *Namespace) Name() string { return n.name }

// TypeID returns the 16-bit type id derived from the name.
func (n *Namespace) TypeID() uint16 { return n.typeID }

// Kind returns the kind of value ids in this namespace carry.
func (n *Namespace) Kind() Kind { return n.kind }

func (n *Namespace) String() string {
	return n.name + "(" + n.kind.String() + ")"
}

// Encode serializes a dynamically typed value. Number namespaces accept any
// Go integer, integral floats and json.Number; string namespaces accept strings.
func (n *Namespace) Encode(v any) (string, error) {
	p, err := n.payloadOf(v)
	if err != nil {
		return "", err
	}
	return n.render(p)
}

// Decode parses text and returns an int64 or a string depending on Kind.
func (n *Namespace) Decode(text string) (any, error) {
	p, err := n.parse(text)
	if err != nil {
		return nil, err
	}
	return valueOf(p), nil
}

func (n *Namespace) render(p payload) (string, error) {
	text, err := n.engine.render(p)
	if err != nil {
		return "", newTransformError(ErrEncode, "encode", n.name, err)
	}
	return text, nil
}

func (n *Namespace) parse(text string) (payload, error) {
	p, err := n.engine.read(text, n.accepts)
	if err != nil {
		emitIDRejected(context.Background(), n.name, len(text))
		return payload{}, err
	}
	return p, nil
}

func (n *Namespace) accepts(p payload) int {
	return bit(p.typeID == n.typeID) & bit(p.kind == n.kind)
}

func (n *Namespace) payloadOf(v any) (payload, error) {
	switch n.kind {
	case KindNumber:
		i, err := n.integer(v)
		if err != nil {
			return payload{}, err
		}
		return numberPayload(n.name, n.typeID, i)
	case KindString:
		s, ok := v.(string)
		if !ok {
			return payload{}, newMalformed(n.name, ReasonKind, v)
		}
		return stringPayload(n.name, n.typeID, s)
	default:
		return payload{}, newMalformed(n.name, ReasonKind, v)
	}
}

// integer normalizes the Go numeric types a caller may hold.
func (n *Namespace) integer(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return n.unsigned(uint64(x))
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return n.unsigned(x)
	case float32:
		return n.float(float64(x))
	case float64:
		return n.float(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, newMalformed(n.name, ReasonKind, v)
		}
		return n.float(f)
	default:
		return 0, newMalformed(n.name, ReasonKind, v)
	}
}

func (n *Namespace) unsigned(u uint64) (int64, error) {
	if u > MaxNumber {
		return 0, newMalformed(n.name, ReasonTooLarge, u)
	}
	return int64(u), nil // #nosec G115 -- range checked
}

// float applies the checks in the same order as the typed API:
// sign, then integrality, then range.
func (n *Namespace) float(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, newMalformed(n.name, ReasonFraction, f)
	}
	if f < 0 {
		return 0, newMalformed(n.name, ReasonNegative, f)
	}
	if f != math.Trunc(f) {
		return 0, newMalformed(n.name, ReasonFraction, f)
	}
	if f > MaxNumber {
		return 0, newMalformed(n.name, ReasonTooLarge, strconv.FormatFloat(f, 'f', -1, 64))
	}
	return int64(f), nil
}

func valueOf(p payload) any {
	if p.kind == KindString {
		return p.text
	}
	return int64(p.number)
}

// NumberID is a namespace for unsigned integer ids in [0, MaxNumber].
type NumberID struct {
	*Namespace
}

// Serialize encrypts and renders v. It fails with ErrMalformedValue for
// negative values and values above MaxNumber.
func (id *NumberID) Serialize(v int64) (string, error) {
	if id.kind != KindNumber {
		return "", newMalformed(id.name, ReasonKind, v)
	}
	p, err := numberPayload(id.name, id.typeID, v)
	if err != nil {
		return "", err
	}
	return id.render(p)
}

// Parse verifies text and returns the number it carries.
// Every failure is an *InvalidIDError.
func (id *NumberID) Parse(text string) (int64, error) {
	p, err := id.parse(text)
	if err != nil {
		return 0, err
	}
	return int64(p.number), nil
}

// StringID is a namespace for UTF-8 string ids of at most MaxStringBytes bytes.
type StringID struct {
	*Namespace
}

// Serialize encrypts and renders s.
func (id *StringID) Serialize(s string) (string, error) {
	if id.kind != KindString {
		return "", newMalformed(id.name, ReasonKind, s)
	}
	p, err := stringPayload(id.name, id.typeID, s)
	if err != nil {
		return "", err
	}
	return id.render(p)
}

// Parse verifies text and returns the string it carries.
func (id *StringID) Parse(text string) (string, error) {
	p, err := id.parse(text)
	if err != nil {
		return "", err
	}
	return p.text, nil
}

// Resolved is the result of Factory.Resolve.
type Resolved struct {
	Type   *Namespace // Namespace whose type id matched
	Number int64      // Set when Type.Kind() == KindNumber
	Text   string     // Set when Type.Kind() == KindString
}

// Value returns Number or Text according to the namespace kind.
func (r *Resolved) Value() any {
	if r.Type.Kind() == KindString {
		return r.Text
	}
	return r.Number
}
