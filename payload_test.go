package secid

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPayload_MarshalNumber(t *testing.T) {
	p := payload{kind: KindNumber, typeID: 0x1234, number: 123}
	want := []byte{1, 0x12, 0x34, 0, 0, 0, 123}

	if got := p.marshal(); !bytes.Equal(got, want) {
		t.Errorf("marshal() = %x, want %x", got, want)
	}
}

func TestPayload_MarshalString(t *testing.T) {
	p := payload{kind: KindString, typeID: 0xabcd, text: "test"}
	want := []byte{2, 0xab, 0xcd, 0, 4, 't', 'e', 's', 't'}

	if got := p.marshal(); !bytes.Equal(got, want) {
		t.Errorf("marshal() = %x, want %x", got, want)
	}
}

func TestPayload_MarshalUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown kind")
		}
	}()
	payload{kind: Kind(7)}.marshal()
}

func TestUnmarshalPayload_RoundTrip(t *testing.T) {
	for _, p := range []payload{
		{kind: KindNumber, typeID: 1, number: 0},
		{kind: KindNumber, typeID: 65535, number: MaxNumber},
		{kind: KindString, typeID: 42, text: ""},
		{kind: KindString, typeID: 42, text: "тест🤔"},
	} {
		got, versionOK, valueOK := unmarshalPayload(p.marshal())
		if !versionOK || !valueOK {
			t.Errorf("unmarshalPayload(%+v) versionOK=%v valueOK=%v", p, versionOK, valueOK)
			continue
		}
		if got != p {
			t.Errorf("round trip = %+v, want %+v", got, p)
		}
	}
}

func TestUnmarshalPayload_Rejects(t *testing.T) {
	number := payload{kind: KindNumber, typeID: 9, number: 5}.marshal()
	str := payload{kind: KindString, typeID: 9, text: "abc"}.marshal()

	tests := []struct {
		name        string
		buf         []byte
		wantVersion bool
	}{
		{"empty", nil, false},
		{"too short for type id", []byte{1, 0}, false},
		{"unknown version", append([]byte{3}, number[1:]...), false},
		{"zero version", append([]byte{0}, number[1:]...), false},
		{"number truncated", number[:6], true},
		{"number trailing byte", append(append([]byte{}, number...), 0), true},
		{"string header truncated", str[:4], true},
		{"string body short", str[:len(str)-1], true},
		{"string body long", append(append([]byte{}, str...), 'd'), true},
		{"string invalid utf8", []byte{2, 0, 9, 0, 2, 0xc3, 0x28}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, versionOK, valueOK := unmarshalPayload(tt.buf)
			if versionOK != tt.wantVersion {
				t.Errorf("versionOK = %v, want %v", versionOK, tt.wantVersion)
			}
			if valueOK {
				t.Error("valueOK = true, want false")
			}
		})
	}
}

func TestNumberPayload_Bounds(t *testing.T) {
	for _, v := range []int64{0, 1, MaxNumber} {
		if _, err := numberPayload("Order", 1, v); err != nil {
			t.Errorf("numberPayload(%d) error: %v", v, err)
		}
	}

	tests := []struct {
		v      int64
		reason Reason
	}{
		{-1, ReasonNegative},
		{-MaxNumber, ReasonNegative},
		{MaxNumber + 1, ReasonTooLarge},
		{1 << 40, ReasonTooLarge},
	}
	for _, tt := range tests {
		_, err := numberPayload("Order", 1, tt.v)
		var me *MalformedValueError
		if !errors.As(err, &me) {
			t.Errorf("numberPayload(%d) error = %v, want *MalformedValueError", tt.v, err)
			continue
		}
		if me.Reason != tt.reason {
			t.Errorf("numberPayload(%d) reason = %q, want %q", tt.v, me.Reason, tt.reason)
		}
	}
}

func TestStringPayload_Bounds(t *testing.T) {
	if _, err := stringPayload("Coupon", 1, strings.Repeat("a", MaxStringBytes)); err != nil {
		t.Errorf("max length string rejected: %v", err)
	}

	_, err := stringPayload("Coupon", 1, strings.Repeat("a", MaxStringBytes+1))
	var me *MalformedValueError
	if !errors.As(err, &me) || me.Reason != ReasonTooLong {
		t.Errorf("oversized string error = %v, want ReasonTooLong", err)
	}

	// The limit is in bytes, not runes.
	_, err = stringPayload("Coupon", 1, strings.Repeat("т", MaxStringBytes/2+1))
	if !errors.As(err, &me) || me.Reason != ReasonTooLong {
		t.Errorf("multibyte oversized string error = %v, want ReasonTooLong", err)
	}

	_, err = stringPayload("Coupon", 1, "bad \xff")
	if !errors.As(err, &me) || me.Reason != ReasonEncoding {
		t.Errorf("invalid UTF-8 error = %v, want ReasonEncoding", err)
	}
}
