package secid

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for secid events.
var (
	SignalFactoryCreated   = capitan.NewSignal("secid.factory.created", "Factory key material derived")
	SignalTypeRegistered   = capitan.NewSignal("secid.type.registered", "Namespace registered")
	SignalTypeCollision    = capitan.NewSignal("secid.type.collision", "Namespace registration rejected")
	SignalIDRejected       = capitan.NewSignal("secid.id.rejected", "Serialized id failed verification")
	SignalProcessorCreated = capitan.NewSignal("secid.processor.created", "Processor instantiated")
	SignalReceiveComplete  = capitan.NewSignal("secid.receive.complete", "Receive operation finished")
	SignalSendComplete     = capitan.NewSignal("secid.send.complete", "Send operation finished")
)

// Keys for typed event data.
var (
	KeyStyle       = capitan.NewStringKey("style")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyTypeID      = capitan.NewIntKey("type_id")
	KeyKind        = capitan.NewStringKey("kind")
	KeyInputLength = capitan.NewIntKey("input_length")
	KeyContentType = capitan.NewStringKey("content_type")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyFieldCount  = capitan.NewIntKey("field_count")
	KeyError       = capitan.NewErrorKey("error")
)

// emitFactoryCreated emits an event when a factory finishes key derivation.
func emitFactoryCreated(ctx context.Context, style Style) {
	capitan.Emit(ctx, SignalFactoryCreated,
		KeyStyle.Field(string(style)),
	)
}

// emitTypeRegistered emits an event when a namespace is registered.
func emitTypeRegistered(ctx context.Context, typeName string, typeID uint16, kind Kind) {
	capitan.Emit(ctx, SignalTypeRegistered,
		KeyTypeName.Field(typeName),
		KeyTypeID.Field(int(typeID)),
		KeyKind.Field(kind.String()),
	)
}

// emitTypeCollision emits an event when registration hits a taken type id.
func emitTypeCollision(ctx context.Context, typeName string, typeID uint16, err error) {
	capitan.Error(ctx, SignalTypeCollision,
		KeyTypeName.Field(typeName),
		KeyTypeID.Field(int(typeID)),
		KeyError.Field(err),
	)
}

// emitIDRejected emits an event when parse or resolve fails.
// The input is attacker controlled, so only its length is recorded.
func emitIDRejected(ctx context.Context, typeName string, inputLen int) {
	capitan.Error(ctx, SignalIDRejected,
		KeyTypeName.Field(typeName),
		KeyInputLength.Field(inputLen),
	)
}

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitReceiveComplete emits an event when receive finishes.
func emitReceiveComplete(ctx context.Context, contentType, typeName string, duration time.Duration, fields int, err error) {
	fs := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyFieldCount.Field(fields),
	}
	if err != nil {
		fs = append(fs, KeyError.Field(err))
		capitan.Error(ctx, SignalReceiveComplete, fs...)
	} else {
		capitan.Emit(ctx, SignalReceiveComplete, fs...)
	}
}

// emitSendComplete emits an event when send finishes.
func emitSendComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, fields int, err error) {
	fs := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyFieldCount.Field(fields),
	}
	if err != nil {
		fs = append(fs, KeyError.Field(err))
		capitan.Error(ctx, SignalSendComplete, fs...)
	} else {
		capitan.Emit(ctx, SignalSendComplete, fs...)
	}
}
