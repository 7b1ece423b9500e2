// Package introspect finds the accessors and mutators a declaration path
// refers to.
//
// A property "cmapLong" is read through a method CmapLong or GetCmapLong
// taking no arguments and returning one value, or through a struct field
// matched by tag or name. It is written through a method SetCmapLong taking
// one argument and returning nothing. Method names that differ only in case,
// such as ID for "id", are found after the exact names.
package introspect

import (
	"fmt"
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"

	"mockgraph/internal/diagnostic"
	"mockgraph/internal/match"
)

// MaxSuggestions bounds the "did you mean" list of lookup failures.
const MaxSuggestions = 3

// Accessor reads one property of a type.
type Accessor struct {
	// Property is the name used in declarations.
	Property string
	// Name is the method or field name.
	Name string
	// Type is the result type of the method or the field type.
	Type reflect.Type
	// Owner is the type the accessor was found on.
	Owner reflect.Type
	// Index is the field index sequence, nil for methods.
	Index []int
}

// IsField reports whether the accessor is a struct field.
func (a Accessor) IsField() bool { return a.Index != nil }

// Read calls the accessor on v.
func (a Accessor) Read(v reflect.Value) (reflect.Value, error) {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("cannot read %s of nil", a.Property)
	}

	if a.IsField() {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, fmt.Errorf("cannot read %s of nil %s", a.Property, v.Type())
			}
			v = v.Elem()
		}

		return v.FieldByIndex(a.Index), nil
	}

	m := methodValue(v, a.Name)
	if !m.IsValid() {
		return reflect.Value{}, fmt.Errorf("%s has no method %s", v.Type(), a.Name)
	}

	return m.Call(nil)[0], nil
}

// Mutator writes one property of a type.
type Mutator struct {
	Property string
	Name     string
	// Type is the parameter type.
	Type  reflect.Type
	Owner reflect.Type
}

// Introspector looks up accessors and mutators. Lookups are cached, an
// Introspector is safe for concurrent use.
type Introspector struct {
	accessors sync.Map // lookupKey -> Accessor
	mutators  sync.Map // lookupKey -> Mutator
}

type lookupKey struct {
	t        reflect.Type
	property string
}

func New() *Introspector {
	return &Introspector{}
}

// AccessorFor finds the accessor of property on t. Methods are preferred
// over fields.
func (in *Introspector) AccessorFor(t reflect.Type, property string) (Accessor, error) {
	key := lookupKey{t, property}
	if a, ok := in.accessors.Load(key); ok {
		return a.(Accessor), nil
	}

	a, err := findAccessor(t, property)
	if err != nil {
		return Accessor{}, err
	}

	in.accessors.Store(key, a)

	return a, nil
}

// MutatorFor finds the Set method of property on t.
func (in *Introspector) MutatorFor(t reflect.Type, property string) (Mutator, error) {
	key := lookupKey{t, property}
	if m, ok := in.mutators.Load(key); ok {
		return m.(Mutator), nil
	}

	m, err := findMutator(t, property)
	if err != nil {
		return Mutator{}, err
	}

	in.mutators.Store(key, m)

	return m, nil
}

func findAccessor(t reflect.Type, property string) (Accessor, error) {
	if t == nil {
		return Accessor{}, diagnostic.Resolution("", "no type to look up %s on", property)
	}

	upper := exported(property)
	for _, name := range []string{upper, "Get" + upper} {
		method, ok := lookupMethod(t, name)
		if !ok {
			continue
		}

		if in, out := arity(t, method); in == 0 && out == 1 {
			return Accessor{
				Property: property,
				Name:     name,
				Type:     method.Type.Out(0),
				Owner:    t,
			}, nil
		}
	}

	if method, ok := matchMethod(t, property, 0, 1, "", "get"); ok {
		return Accessor{
			Property: property,
			Name:     method.Name,
			Type:     method.Type.Out(0),
			Owner:    t,
		}, nil
	}

	if st := structOf(t); st != nil {
		if fm := matchField(st, property); fm.Found {
			return Accessor{
				Property: property,
				Name:     fm.Field.Name,
				Type:     fm.Field.Type,
				Owner:    t,
				Index:    fm.Field.Index,
			}, nil
		}
	}

	return Accessor{}, diagnostic.
		Resolution("", "%s has no accessor for %q", t, property).
		WithSuggestions(match.Suggest(property, accessorNames(t), MaxSuggestions)...)
}

func findMutator(t reflect.Type, property string) (Mutator, error) {
	if t == nil {
		return Mutator{}, diagnostic.Resolution("", "no type to look up %s on", property)
	}

	name := "Set" + exported(property)
	if method, ok := lookupMethod(t, name); ok {
		if in, out := arity(t, method); in == 1 && out == 0 {
			return Mutator{
				Property: property,
				Name:     name,
				Type:     method.Type.In(method.Type.NumIn() - 1),
				Owner:    t,
			}, nil
		}
	}

	if method, ok := matchMethod(t, property, 1, 0, "set"); ok {
		return Mutator{
			Property: property,
			Name:     method.Name,
			Type:     method.Type.In(method.Type.NumIn() - 1),
			Owner:    t,
		}, nil
	}

	return Mutator{}, diagnostic.
		Resolution("", "%s has no mutator for %q", t, property).
		WithSuggestions(match.Suggest(name, mutatorNames(t), MaxSuggestions)...)
}

// matchMethod finds a method of the given arity whose name is one of
// prefixes followed by property, ignoring case and separators: "id" finds
// ID with prefix "" and SetID with prefix "set".
func matchMethod(t reflect.Type, property string, wantIn, wantOut int, prefixes ...string) (reflect.Method, bool) {
	norm := match.NormalizeIdent(property)
	if norm == "" {
		return reflect.Method{}, false
	}

	for _, m := range methods(t) {
		if in, out := arity(t, m); in != wantIn || out != wantOut {
			continue
		}

		name := match.NormalizeIdent(m.Name)
		for _, prefix := range prefixes {
			if name == prefix+norm {
				return m, true
			}
		}
	}

	return reflect.Method{}, false
}

// lookupMethod searches the method set of t, and of *t for non-pointer
// concrete types.
func lookupMethod(t reflect.Type, name string) (reflect.Method, bool) {
	if m, ok := t.MethodByName(name); ok {
		return m, true
	}

	if t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer {
		return reflect.PointerTo(t).MethodByName(name)
	}

	return reflect.Method{}, false
}

// arity counts parameters and results, the receiver of concrete methods
// excluded.
func arity(t reflect.Type, m reflect.Method) (in, out int) {
	in = m.Type.NumIn()
	if t.Kind() != reflect.Interface {
		in--
	}

	return in, m.Type.NumOut()
}

func methods(t reflect.Type) []reflect.Method {
	seen := make(map[string]bool)

	var out []reflect.Method
	for _, mt := range []reflect.Type{t, pointerOf(t)} {
		if mt == nil {
			continue
		}

		for i := range mt.NumMethod() {
			m := mt.Method(i)
			if !seen[m.Name] {
				seen[m.Name] = true
				out = append(out, m)
			}
		}
	}

	return out
}

func accessorNames(t reflect.Type) []string {
	var names []string
	for _, m := range methods(t) {
		if in, out := arity(t, m); in == 0 && out == 1 {
			names = append(names, m.Name)
		}
	}

	if st := structOf(t); st != nil {
		for _, f := range settableFields(st) {
			names = append(names, f.Name)
		}
	}

	return names
}

func mutatorNames(t reflect.Type) []string {
	var names []string
	for _, m := range methods(t) {
		if in, out := arity(t, m); in == 1 && out == 0 {
			names = append(names, m.Name)
		}
	}

	return names
}

func pointerOf(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Interface || t.Kind() == reflect.Pointer {
		return nil
	}

	return reflect.PointerTo(t)
}

// structOf returns t or its element when it is a struct, nil otherwise.
func structOf(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil
	}

	return t
}

// methodValue returns the method of v named name, taking the address of v
// (or of a copy) for pointer receivers.
func methodValue(v reflect.Value, name string) reflect.Value {
	if m := v.MethodByName(name); m.IsValid() {
		return m
	}

	if v.Kind() == reflect.Pointer {
		return reflect.Value{}
	}

	if v.CanAddr() {
		return v.Addr().MethodByName(name)
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)

	return ptr.MethodByName(name)
}

// exported raises the first letter of a property name: "byteO" -> "ByteO".
func exported(property string) string {
	r, size := utf8.DecodeRuneInString(property)
	if r == utf8.RuneError {
		return property
	}

	return string(unicode.ToUpper(r)) + property[size:]
}
