package json

import (
	"context"
	"errors"
	"testing"

	"github.com/zoobzio/secid"
	secidtest "github.com/zoobzio/secid/testing"
)

func TestNew(t *testing.T) {
	if New() == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	if got := New().ContentType(); got != "application/json" {
		t.Errorf("ContentType() = %q, want %q", got, "application/json")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()
	original := secidtest.SimpleOrder{ID: "1", Note: "plain"}

	data, err := c.Marshal(&original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored secidtest.SimpleOrder
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored != original {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var v secidtest.SimpleOrder
	if err := New().Unmarshal([]byte("not json"), &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestProcessor_SendReceive(t *testing.T) {
	f := secidtest.TestFactory(t)
	proc, err := secid.NewProcessor[secidtest.Order](f, New())
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	original := secidtest.SampleOrder()
	data, err := proc.Send(context.Background(), original)
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	var wire secidtest.Order
	if err := New().Unmarshal(data, &wire); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if wire.ID == original.ID || wire.Buyer == original.Buyer || wire.Coupon == original.Coupon {
		t.Errorf("Send() should serialize tagged fields, got %+v", wire)
	}
	if wire.Note != original.Note {
		t.Errorf("Note = %q, want %q", wire.Note, original.Note)
	}

	restored, err := proc.Receive(context.Background(), data)
	if err != nil {
		t.Fatalf("Receive() error: %v", err)
	}
	if restored.ID != original.ID || restored.Buyer != original.Buyer || restored.Coupon != original.Coupon {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
	for i := range original.Items {
		if restored.Items[i] != original.Items[i] {
			t.Errorf("Items[%d] = %q, want %q", i, restored.Items[i], original.Items[i])
		}
	}
}

func TestProcessor_ReceiveTampered(t *testing.T) {
	f := secidtest.TestFactory(t)
	proc, err := secid.NewProcessor[secidtest.Order](f, New())
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	// A raw internal value is not a valid id.
	data, err := New().Marshal(secidtest.SampleOrder())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	_, err = proc.Receive(context.Background(), data)
	if !errors.Is(err, secid.ErrDecode) {
		t.Errorf("Receive() error = %v, want ErrDecode", err)
	}
	var te *secid.TransformError
	if !errors.As(err, &te) || !errors.Is(te.Cause, secid.ErrInvalidID) {
		t.Errorf("Receive() cause = %v, want ErrInvalidID", err)
	}
}
