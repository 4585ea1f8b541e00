// Package secid issues and verifies short, opaque, tamper-evident ids.
//
// An id carries a typed value (an unsigned integer or a UTF-8 string) and a
// 16-bit type id, encrypted with AES-128-CTR and authenticated with a
// truncated HMAC-SHA256. All key material is derived from one shared secret.
//
// # Namespaces
//
// A Factory owns the key material and a registry of namespaces. Each
// namespace is bound to a type name; ids from one namespace never parse in
// another:
//
//	f, _ := secid.New([]byte(secret), secid.WithStyle(secid.StyleBase64))
//	users := f.MustCreateID("User")
//	orgs := f.MustCreateStringID("Org")
//
//	text, _ := users.Serialize(42)
//	n, _ := users.Parse(text) // 42
//	_, err := orgs.Parse(text) // errors.Is(err, secid.ErrInvalidID)
//
// Type names are case-insensitive: factories sharing a secret produce the
// same ids for "User" and "USER".
//
// # Resolve
//
// Endpoints that accept several kinds of ids can ask the factory which
// namespace an id belongs to:
//
//	r, err := f.Resolve(text)
//	if err == nil && r.Type == users.Namespace {
//	    // r.Number is the user id
//	}
//
// # Styles
//
//   - hex: lowercase hexadecimal
//   - base64: URL-safe base64 without padding
//   - hashids: opaque alphanumeric (default)
//
// # Wire Format
//
// Before encryption a payload is framed big-endian as
//
//	number: [1][type id:2][value:4]
//	string: [2][type id:2][length:2][utf-8 bytes]
//
// and the rendered envelope is ciphertext followed by an 8-byte tag.
//
// # Errors
//
// Errors wrap three sentinels: ErrMalformedValue (bad input to Serialize),
// ErrInvalidID (every Parse or Resolve failure, with no detail about which
// check failed) and ErrRegistration (type id collision at setup).
//
// # Processors
//
// Processor applies namespaces to tagged struct fields at API boundaries:
//
//	type Order struct {
//	    ID     string `json:"id" send.secid:"Order" receive.secid:"Order"`
//	    Buyer  string `json:"buyer" send.secid:"User" receive.secid:"User"`
//	}
//
//	func (o Order) Clone() Order { return o }
//
//	proc, _ := secid.NewProcessor[Order](f, json.New())
//	body, _ := proc.Send(ctx, &order)     // ids serialized
//	order, _ := proc.Receive(ctx, body)   // ids parsed back
//
// Codec implementations are available as subpackages: json, xml, yaml,
// msgpack and bson.
package secid
