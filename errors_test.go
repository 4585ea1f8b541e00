package secid

import (
	"errors"
	"strings"
	"testing"
)

func TestMalformedValueError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"negative", newMalformed("Order", ReasonNegative, int64(-1)), "ids can't be negative"},
		{"fraction", newMalformed("Order", ReasonFraction, 0.1), "ids can't be float numbers"},
		{"too large", newMalformed("Order", ReasonTooLarge, int64(2147483648)), "ids can't be bigger than 2147483647, got 2147483648"},
		{"too long", newMalformed("Coupon", ReasonTooLong, 70000), "string value length can't be bigger than 65535, got 70000"},
		{"kind", newMalformed("Order", ReasonKind, "x"), `value and value kind mismatch for "Order", got string`},
		{"encoding", newMalformed("Coupon", ReasonEncoding, "\xff"), "string value is not valid UTF-8"},
		{"unknown", newMalformed("Order", Reason("other"), nil), "malformed value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrMalformedValue) {
				t.Error("expected errors.Is(err, ErrMalformedValue)")
			}
		})
	}
}

func TestInvalidIDError(t *testing.T) {
	err := newInvalidID("somestring")
	if err.Error() != "invalid id: somestring" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidID) {
		t.Error("expected errors.Is(err, ErrInvalidID)")
	}

	var ie *InvalidIDError
	if !errors.As(err, &ie) {
		t.Fatal("expected errors.As to find *InvalidIDError")
	}
	if ie.Input != "somestring" {
		t.Errorf("Input = %q", ie.Input)
	}
}

func TestRegistrationError(t *testing.T) {
	same := &RegistrationError{TypeName: "Order", TypeID: 7, Existing: "Order"}
	if got := same.Error(); got != `type collision for "Order", please use a different name` {
		t.Errorf("Error() = %q", got)
	}

	other := &RegistrationError{TypeName: "order", TypeID: 7, Existing: "Order"}
	if got := other.Error(); !strings.Contains(got, `with "Order"`) {
		t.Errorf("Error() = %q, want mention of existing name", got)
	}

	if !errors.Is(other, ErrRegistration) {
		t.Error("expected errors.Is(err, ErrRegistration)")
	}
}

func TestConfigError(t *testing.T) {
	tests := []struct {
		err  *ConfigError
		want string
	}{
		{&ConfigError{Err: ErrUnknownType, Field: "Buyer", Value: "User"}, `unknown type "User" (field Buyer)`},
		{&ConfigError{Err: ErrInvalidStyle, Value: "rot13"}, `invalid style "rot13"`},
		{&ConfigError{Err: ErrInvalidSecret, Field: "secret"}, "invalid secret (field secret)"},
		{&ConfigError{Err: ErrInvalidOption}, "invalid option"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if !errors.Is(tt.err, tt.err.Err) {
			t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.err.Err)
		}
	}
}

func TestTransformError(t *testing.T) {
	cause := newInvalidID("abc")
	err := newTransformError(ErrDecode, "decode", "Items[1]", cause)

	if got := err.Error(); got != "decode field Items[1]: invalid id: abc" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrDecode) {
		t.Error("expected errors.Is(err, ErrDecode)")
	}

	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatal("expected *TransformError")
	}
	if !errors.Is(te.Cause, ErrInvalidID) {
		t.Errorf("Cause = %v, want ErrInvalidID", te.Cause)
	}

	bare := &TransformError{Err: ErrEncode, Field: "ID", Operation: "encode"}
	if got := bare.Error(); got != "encode field ID" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCodecError(t *testing.T) {
	err := newCodecError(ErrUnmarshal, errors.New("unexpected EOF"))
	if got := err.Error(); got != "unmarshal failed: unexpected EOF" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrUnmarshal) {
		t.Error("expected errors.Is(err, ErrUnmarshal)")
	}

	bare := &CodecError{Err: ErrMarshal}
	if bare.Error() != "marshal failed" {
		t.Errorf("Error() = %q", bare.Error())
	}
}
