package secid

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Option configures a Factory.
type Option func(*options)

type options struct {
	style      Style
	iterations int
}

// WithStyle selects the text rendering. The default is StyleHashids.
func WithStyle(s Style) Option {
	return func(o *options) {
		o.style = s
	}
}

// WithIterations overrides the PBKDF2 iteration count used for every
// derivation. Factories built with different counts produce unrelated ids.
func WithIterations(n int) Option {
	return func(o *options) {
		o.iterations = n
	}
}

// Factory derives key material from a shared secret and issues namespaces.
//
// A Factory is safe for concurrent use. Registration takes a write lock;
// Parse, Serialize and Resolve only read the registry.
type Factory struct {
	style  Style
	keys   *keyMaterial
	engine *engine

	mu     sync.RWMutex
	byID   map[uint16]*Namespace
	byName map[string]*Namespace // lowercased names
}

// New derives all key material from secret once. The secret itself is not retained.
func New(secret []byte, opts ...Option) (*Factory, error) {
	o := options{style: DefaultStyle, iterations: DefaultIterations}
	for _, opt := range opts {
		opt(&o)
	}

	if len(secret) == 0 {
		return nil, newConfigError(ErrInvalidSecret, "secret", "")
	}
	if !IsValidStyle(o.style) {
		return nil, newConfigError(ErrInvalidStyle, "style", string(o.style))
	}
	if o.iterations < 1 {
		return nil, newConfigError(ErrInvalidOption, "iterations", strconv.Itoa(o.iterations))
	}

	keys := deriveKeys(secret, o.iterations)

	env, err := newEnvelope(keys)
	if err != nil {
		return nil, err
	}
	style, err := newStyleCodec(o.style, keys.hashidsSalt)
	if err != nil {
		return nil, err
	}

	f := &Factory{
		style:  o.style,
		keys:   keys,
		engine: &engine{envelope: env, style: style},
		byID:   make(map[uint16]*Namespace),
		byName: make(map[string]*Namespace),
	}

	emitFactoryCreated(context.Background(), o.style)
	return f, nil
}

// Style returns the rendering chosen at construction.
func (f *Factory) Style() Style {
	return f.style
}

// CreateID registers typeName as a number namespace.
// It fails with ErrRegistration if the derived type id is already taken.
func (f *Factory) CreateID(typeName string) (*NumberID, error) {
	ns, err := f.register(typeName, KindNumber)
	if err != nil {
		return nil, err
	}
	return &NumberID{Namespace: ns}, nil
}

// CreateStringID registers typeName as a string namespace.
func (f *Factory) CreateStringID(typeName string) (*StringID, error) {
	ns, err := f.register(typeName, KindString)
	if err != nil {
		return nil, err
	}
	return &StringID{Namespace: ns}, nil
}

// MustCreateID is like CreateID but panics on error.
// It simplifies safe initialization of package level handles.
func (f *Factory) MustCreateID(typeName string) *NumberID {
	id, err := f.CreateID(typeName)
	if err != nil {
		panic("secid: CreateID(" + strconv.Quote(typeName) + "): " + err.Error())
	}
	return id
}

// MustCreateStringID is like CreateStringID but panics on error.
func (f *Factory) MustCreateStringID(typeName string) *StringID {
	id, err := f.CreateStringID(typeName)
	if err != nil {
		panic("secid: CreateStringID(" + strconv.Quote(typeName) + "): " + err.Error())
	}
	return id
}

func (f *Factory) register(typeName string, kind Kind) (*Namespace, error) {
	typeID := f.keys.typeID(typeName)

	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.byID[typeID]; ok {
		err := &RegistrationError{TypeName: typeName, TypeID: typeID, Existing: existing.name}
		emitTypeCollision(context.Background(), typeName, typeID, err)
		return nil, err
	}

	ns := &Namespace{
		name:   typeName,
		typeID: typeID,
		kind:   kind,
		engine: f.engine,
	}
	f.byID[typeID] = ns
	f.byName[strings.ToLower(typeName)] = ns

	emitTypeRegistered(context.Background(), typeName, typeID, kind)
	return ns, nil
}

// Resolve parses an id from any namespace registered on this factory and
// returns the value together with the matching namespace.
func (f *Factory) Resolve(text string) (*Resolved, error) {
	var matched *Namespace
	p, err := f.engine.read(text, func(d payload) int {
		ns, ok := f.Lookup(d.typeID)
		if !ok {
			return 0
		}
		matched = ns
		return bit(ns.kind == d.kind)
	})
	if err != nil {
		emitIDRejected(context.Background(), "*", len(text))
		return nil, err
	}

	r := &Resolved{Type: matched}
	switch p.kind {
	case KindNumber:
		r.Number = int64(p.number)
	case KindString:
		r.Text = p.text
	}
	return r, nil
}

// Lookup returns the namespace registered under typeID.
func (f *Factory) Lookup(typeID uint16) (*Namespace, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ns, ok := f.byID[typeID]
	return ns, ok
}

// LookupName returns the namespace registered under typeName, ignoring case.
func (f *Factory) LookupName(typeName string) (*Namespace, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ns, ok := f.byName[strings.ToLower(typeName)]
	return ns, ok
}

// Types returns all registered namespaces ordered by type id.
func (f *Factory) Types() []*Namespace {
	f.mu.RLock()
	out := make([]*Namespace, 0, len(f.byID))
	for _, ns := range f.byID {
		out = append(out, ns)
	}
	f.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Namespace) int {
		return int(a.typeID) - int(b.typeID)
	})
	return out
}
