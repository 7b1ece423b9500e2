package mockgraph

import (
	"reflect"

	"mockgraph/internal/diagnostic"
	"mockgraph/internal/introspect"
	"mockgraph/internal/match"
	"mockgraph/schema"
	"mockgraph/stub"
)

// factory creates substitutes through the wrappers of a registry and plain
// values through reflection.
type factory struct {
	registry       *schema.Registry
	maxSuggestions int
}

func (f *factory) Create(t reflect.Type, extra []reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Interface:
		return f.substitute(t, extra)
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0), nil
	case reflect.Map:
		return reflect.MakeMap(t), nil
	case reflect.Pointer:
		return reflect.New(t.Elem()), nil
	default:
		return reflect.New(t).Elem(), nil
	}
}

func (f *factory) substitute(t reflect.Type, extra []reflect.Type) (reflect.Value, error) {
	s := stub.New(t, extra...)

	// nothing to forward, the bare substitute satisfies the interface
	if t.NumMethod() == 0 {
		return reflect.ValueOf(s).Convert(t), nil
	}

	v, ok := f.registry.Wrap(t, s)
	if !ok {
		return reflect.Value{}, diagnostic.
			Resolution("", "no substitute registered for %s", t).
			WithSuggestions(match.SuggestType(schema.QualifiedName(t), f.registry.Names(), f.maxSuggestions)...)
	}

	for _, capability := range extra {
		if !v.Elem().Type().Implements(capability) {
			return reflect.Value{}, diagnostic.Policy("", "substitute of %s does not implement %s", t, capability)
		}
	}

	return v, nil
}

func (f *factory) StubSequence(instance reflect.Value, accessor introspect.Accessor, values []reflect.Value) error {
	if accessor.IsField() {
		return setField(instance, accessor, values)
	}

	for instance.Kind() == reflect.Interface && !instance.IsNil() {
		instance = instance.Elem()
	}

	s, ok := stub.Of(instance.Interface())
	if !ok {
		return diagnostic.Policy("", "cannot stub %s of %s, it is not a substitute", accessor.Name, instance.Type())
	}

	returns := make([]any, len(values))
	for i, v := range values {
		if v.IsValid() {
			returns[i] = v.Interface()
		}
	}

	s.Returns(accessor.Name, returns...)

	return nil
}

func setField(instance reflect.Value, accessor introspect.Accessor, values []reflect.Value) error {
	target := instance
	for target.Kind() == reflect.Interface || target.Kind() == reflect.Pointer {
		if target.IsNil() {
			return diagnostic.Policy("", "cannot set %s of nil %s", accessor.Name, target.Type())
		}
		target = target.Elem()
	}

	field := target.FieldByIndex(accessor.Index)
	if !field.CanSet() {
		return diagnostic.Policy("", "field %s of %s is not settable", accessor.Name, target.Type())
	}

	if len(values) > 0 {
		field.Set(values[len(values)-1])
	}

	return nil
}
