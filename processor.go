package secid

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

// Compound tags understood by Processor.
const (
	tagSend    = "send.secid"
	tagReceive = "receive.secid"
)

func init() {
	// Register compound tags with sentinel
	sentinel.Tag(tagSend)
	sentinel.Tag(tagReceive)
}

// Processor applies namespaces to tagged struct fields at API boundaries.
// Use Send for egress (values become ids) and Receive for ingress (ids
// become values).
//
// Tagged fields must be string, []string or map[K]string. Number namespaces
// read and write the decimal form. Empty strings are left untouched.
//
// Processors are safe for concurrent use. Tag type names are resolved against
// the factory on the first operation; register every namespace before then.
type Processor[T Cloner[T]] struct {
	factory *Factory
	codec   Codec

	// Validation state (runs once on first operation)
	validateOnce sync.Once
	validateErr  error
	bound        map[string]*Namespace

	// Field plans (immutable after construction)
	sendFields    []fieldPlan
	receiveFields []fieldPlan

	typeName string
}

// fieldPlan describes how to transform a single field.
type fieldPlan struct {
	index      []int  // reflect.Value.FieldByIndex access path
	name       string // field name for error messages
	typeName   string // namespace type name from the tag
	ptrIndices []int  // positions in index where a pointer is dereferenced
	isSlice    bool   // true if field is []string
	isMap      bool   // true if field is map[K]string
}

// typeFieldPlans holds the plans built for one struct type.
type typeFieldPlans struct {
	typeName string
	send     []fieldPlan
	receive  []fieldPlan
}

// NewProcessor creates a Processor for type T backed by f and codec.
// It fails with ErrInvalidTag when a tag is empty or sits on an unsupported field.
func NewProcessor[T Cloner[T]](f *Factory, codec Codec) (*Processor[T], error) {
	plans, err := buildFieldPlans[T]()
	if err != nil {
		return nil, err
	}

	p := &Processor[T]{
		factory:       f,
		codec:         codec,
		sendFields:    plans.send,
		receiveFields: plans.receive,
		typeName:      plans.typeName,
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), plans.typeName)
	return p, nil
}

// Validate checks that every type name used in tags is registered on the factory.
//
// Validation also runs automatically on first operation. Calling Validate
// explicitly allows catching configuration errors at startup.
func (p *Processor[T]) Validate() error {
	return p.ensureValidated()
}

// ensureValidated runs validation once and caches the result.
func (p *Processor[T]) ensureValidated() error {
	p.validateOnce.Do(func() {
		p.bound, p.validateErr = p.bindNamespaces()
	})
	return p.validateErr
}

func (p *Processor[T]) bindNamespaces() (map[string]*Namespace, error) {
	bound := make(map[string]*Namespace)
	for _, plans := range [][]fieldPlan{p.sendFields, p.receiveFields} {
		for _, plan := range plans {
			if _, ok := bound[plan.typeName]; ok {
				continue
			}
			ns, ok := p.factory.LookupName(plan.typeName)
			if !ok {
				return nil, newConfigError(ErrUnknownType, plan.name, plan.typeName)
			}
			bound[plan.typeName] = ns
		}
	}
	return bound, nil
}

// buildFieldPlans creates field plans for type T by scanning struct tags.
func buildFieldPlans[T any]() (*typeFieldPlans, error) {
	meta := sentinel.Scan[T]()
	plans := &typeFieldPlans{
		typeName: meta.TypeName,
	}

	if err := buildFieldPlansRecursive(plans, meta, nil, nil, ""); err != nil {
		return nil, err
	}

	return plans, nil
}

// buildFieldPlansRecursive recursively processes fields and nested structs.
func buildFieldPlansRecursive(plans *typeFieldPlans, meta sentinel.Metadata, parentIndex, ptrIndices []int, namePrefix string) error {
	for _, field := range meta.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		// Handle nested structs
		if field.Kind == sentinel.KindStruct {
			if nested := scanNestedType(field.ReflectType); nested != nil {
				if err := buildFieldPlansRecursive(plans, *nested, fullIndex, ptrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		// Handle pointer to struct
		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			if nested := scanNestedType(field.ReflectType.Elem()); nested != nil {
				newPtrIndices := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
				if err := buildFieldPlansRecursive(plans, *nested, fullIndex, newPtrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		sendVal, hasSend := field.Tags[tagSend]
		receiveVal, hasReceive := field.Tags[tagReceive]
		if !hasSend && !hasReceive {
			continue
		}

		rt := field.ReflectType
		isString := rt.Kind() == reflect.String
		isStringSlice := rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.String
		isStringMap := rt.Kind() == reflect.Map && rt.Elem().Kind() == reflect.String
		if !isString && !isStringSlice && !isStringMap {
			return newConfigError(ErrInvalidTag, fullName, rt.String())
		}

		basePlan := fieldPlan{
			index:      fullIndex,
			name:       fullName,
			ptrIndices: ptrIndices,
			isSlice:    isStringSlice,
			isMap:      isStringMap,
		}

		if hasSend {
			if sendVal == "" {
				return newConfigError(ErrInvalidTag, fullName, tagSend)
			}
			plan := basePlan
			plan.typeName = sendVal
			plans.send = append(plans.send, plan)
		}

		if hasReceive {
			if receiveVal == "" {
				return newConfigError(ErrInvalidTag, fullName, tagReceive)
			}
			plan := basePlan
			plan.typeName = receiveVal
			plans.receive = append(plans.receive, plan)
		}
	}

	return nil
}

// scanNestedType scans a nested struct type and returns its metadata.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return &meta
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseSecIDTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		meta.Fields = append(meta.Fields, fm)
	}

	return &meta
}

// parseSecIDTags extracts send/receive tags from a struct tag.
func parseSecIDTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range []string{tagSend, tagReceive} {
		if val, ok := tag.Lookup(name); ok {
			tags[name] = val
		}
	}
	return tags
}

// Send serializes tagged fields of a clone of obj and marshals the result.
// Use for data going to external destinations (API responses, events).
func (p *Processor[T]) Send(ctx context.Context, obj *T) ([]byte, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	var retErr error
	var retData []byte
	defer func() {
		emitSendComplete(ctx, p.codec.ContentType(), p.typeName,
			len(retData), time.Since(start), len(p.sendFields), retErr)
	}()

	if obj == nil {
		retData, retErr = p.marshal(nil)
		return retData, retErr
	}

	// Clone to avoid mutating original
	clone := (*obj).Clone()

	if e, ok := any(&clone).(IDEncoder); ok {
		if err := e.EncodeIDs(p.factory); err != nil {
			retErr = newTransformError(ErrEncode, "encode", p.typeName, err)
			return nil, retErr
		}
	} else if err := p.apply(&clone, p.sendFields, "encode", ErrEncode, encodeField); err != nil {
		retErr = err
		return nil, retErr
	}

	retData, retErr = p.marshal(&clone)
	return retData, retErr
}

// Receive unmarshals data and parses tagged fields back into values.
// Use for data coming from external sources (API requests, events).
func (p *Processor[T]) Receive(ctx context.Context, data []byte) (*T, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	var retErr error
	defer func() {
		emitReceiveComplete(ctx, p.codec.ContentType(), p.typeName,
			time.Since(start), len(p.receiveFields), retErr)
	}()

	var obj T
	if err := p.codec.Unmarshal(data, &obj); err != nil {
		retErr = newCodecError(ErrUnmarshal, err)
		return nil, retErr
	}

	if d, ok := any(&obj).(IDDecoder); ok {
		if err := d.DecodeIDs(p.factory); err != nil {
			retErr = newTransformError(ErrDecode, "decode", p.typeName, err)
			return nil, retErr
		}
		return &obj, nil
	}

	if err := p.apply(&obj, p.receiveFields, "decode", ErrDecode, decodeField); err != nil {
		retErr = err
		return nil, retErr
	}

	return &obj, nil
}

func (p *Processor[T]) marshal(v any) ([]byte, error) {
	data, err := p.codec.Marshal(v)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// fieldFunc transforms one string through a namespace.
type fieldFunc func(ns *Namespace, value string) (string, error)

// encodeField turns an internal value into a serialized id.
func encodeField(ns *Namespace, value string) (string, error) {
	if ns.Kind() == KindString {
		return ns.Encode(value)
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return "", newMalformed(ns.Name(), ReasonKind, value)
	}
	return ns.Encode(n)
}

// decodeField turns a serialized id into its internal value.
func decodeField(ns *Namespace, value string) (string, error) {
	v, err := ns.Decode(value)
	if err != nil {
		return "", err
	}
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10), nil
	case string:
		return x, nil
	default:
		return "", fmt.Errorf("unexpected decoded type %T", v)
	}
}

// apply runs fn over every planned field of obj.
func (p *Processor[T]) apply(obj *T, plans []fieldPlan, operation string, sentinelErr error, fn fieldFunc) error {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range plans {
		ns := p.bound[plan.typeName]

		field, ok := getField(rv, plan)
		if !ok {
			continue
		}

		// Handle slice of strings
		if plan.isSlice {
			for i := 0; i < field.Len(); i++ {
				elem := field.Index(i)
				if !elem.CanSet() || elem.String() == "" {
					continue
				}
				out, err := fn(ns, elem.String())
				if err != nil {
					return newTransformError(sentinelErr, operation, fmt.Sprintf("%s[%d]", plan.name, i), err)
				}
				elem.SetString(out)
			}
			continue
		}

		// Handle map of strings
		if plan.isMap {
			iter := field.MapRange()
			for iter.Next() {
				k, v := iter.Key(), iter.Value()
				if v.String() == "" {
					continue
				}
				out, err := fn(ns, v.String())
				if err != nil {
					return newTransformError(sentinelErr, operation, fmt.Sprintf("%s[%v]", plan.name, k.Interface()), err)
				}
				field.SetMapIndex(k, reflect.ValueOf(out).Convert(field.Type().Elem()))
			}
			continue
		}

		// Handle scalar string
		if !field.CanSet() || field.String() == "" {
			continue
		}
		out, err := fn(ns, field.String())
		if err != nil {
			return newTransformError(sentinelErr, operation, plan.name, err)
		}
		field.SetString(out)
	}

	return nil
}

// getField navigates a field path, dereferencing pointers as needed.
func getField(rv reflect.Value, plan fieldPlan) (reflect.Value, bool) {
	if len(plan.ptrIndices) == 0 {
		return rv.FieldByIndex(plan.index), true
	}

	current := rv
	ptrSet := make(map[int]bool, len(plan.ptrIndices))
	for _, idx := range plan.ptrIndices {
		ptrSet[idx] = true
	}

	for i, idx := range plan.index {
		current = current.Field(idx)

		if ptrSet[i] {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}

	return current, true
}
