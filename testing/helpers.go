// Package testing provides test utilities for secid.
package testing

import (
	"testing"

	"github.com/zoobzio/secid"
)

// TestIterations keeps key derivation fast in tests.
// Ids produced with it do not match production factories.
const TestIterations = 1000

// TestSecret returns the shared secret used by test factories.
func TestSecret(tb testing.TB) []byte {
	tb.Helper()
	return []byte("Shared Secret")
}

// TestFactory returns a hex style factory with the sample namespaces
// Order, User and Item (numbers) and Coupon (string) registered.
func TestFactory(tb testing.TB, opts ...secid.Option) *secid.Factory {
	tb.Helper()
	opts = append([]secid.Option{
		secid.WithStyle(secid.StyleHex),
		secid.WithIterations(TestIterations),
	}, opts...)

	f, err := secid.New(TestSecret(tb), opts...)
	if err != nil {
		tb.Fatalf("secid.New: %v", err)
	}
	for _, name := range []string{"Order", "User", "Item"} {
		if _, err := f.CreateID(name); err != nil {
			tb.Fatalf("CreateID(%q): %v", name, err)
		}
	}
	if _, err := f.CreateStringID("Coupon"); err != nil {
		tb.Fatalf("CreateStringID(%q): %v", "Coupon", err)
	}
	return f
}

// SimpleOrder is a test type with no transformation tags.
type SimpleOrder struct {
	ID   string `json:"id" xml:"id" yaml:"id" msgpack:"id" bson:"id"`
	Note string `json:"note" xml:"note" yaml:"note" msgpack:"note" bson:"note"`
}

// Clone implements Cloner[SimpleOrder].
func (o SimpleOrder) Clone() SimpleOrder { return o }

// Order is a test type demonstrating send/receive id tags.
type Order struct {
	ID     string   `json:"id" xml:"id" yaml:"id" msgpack:"id" bson:"id" send.secid:"Order" receive.secid:"Order"`
	Buyer  string   `json:"buyer" xml:"buyer" yaml:"buyer" msgpack:"buyer" bson:"buyer" send.secid:"User" receive.secid:"User"`
	Coupon string   `json:"coupon" xml:"coupon" yaml:"coupon" msgpack:"coupon" bson:"coupon" send.secid:"Coupon" receive.secid:"Coupon"`
	Items  []string `json:"items" xml:"item" yaml:"items" msgpack:"items" bson:"items" send.secid:"Item" receive.secid:"Item"`
	Note   string   `json:"note" xml:"note" yaml:"note" msgpack:"note" bson:"note"`
}

// Clone implements Cloner[Order].
func (o Order) Clone() Order {
	items := make([]string, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

// SampleOrder returns an Order holding internal values.
func SampleOrder() *Order {
	return &Order{
		ID:     "1001",
		Buyer:  "42",
		Coupon: "SUMMER-24",
		Items:  []string{"7", "8", "9"},
		Note:   "leave at door",
	}
}
