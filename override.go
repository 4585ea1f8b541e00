package secid

// Override interfaces allow types to bypass reflection-based processing.
// When a type implements one of these interfaces, the Processor calls the
// interface method instead of walking tagged fields.

// IDEncoder bypasses reflection for send.secid actions.
type IDEncoder interface {
	// EncodeIDs replaces internal values with serialized ids.
	// The receiver is a clone, so mutations are safe.
	EncodeIDs(f *Factory) error
}

// IDDecoder bypasses reflection for receive.secid actions.
type IDDecoder interface {
	// DecodeIDs replaces serialized ids with the values they carry.
	// Called on freshly unmarshaled data.
	DecodeIDs(f *Factory) error
}
