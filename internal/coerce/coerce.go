// Package coerce turns declaration literals into typed values.
//
// A target type is classified once and the rule of its category applies:
// registered converters first, then registered enums, then the categories of
// primitive.CategoryOf. Shapes (substitutes, structs, arrays, slices, maps)
// are not parsed, a literal on a shape asks for an empty instance of it.
package coerce

import (
	"encoding"
	"reflect"
	"strconv"

	"mockgraph/internal/decl"
	"mockgraph/internal/diagnostic"
	"mockgraph/internal/match"
	"mockgraph/node"
	"mockgraph/primitive"
	"mockgraph/schema"
)

// Creator creates the empty instance of a shape type.
type Creator interface {
	Create(t reflect.Type, extra []reflect.Type) (reflect.Value, error)
}

// Coercer is safe for concurrent use when its registry and creator are.
type Coercer struct {
	registry       *schema.Registry
	namespaces     []string
	creator        Creator
	maxSuggestions int
}

// New returns a coercer resolving hint names in namespaces, after the bare
// name and schema.DefaultNamespaces. creator may be nil, shapes are then
// produced by Empty.
func New(registry *schema.Registry, namespaces []string, creator Creator) *Coercer {
	return &Coercer{
		registry:       registry,
		namespaces:     namespaces,
		creator:        creator,
		maxSuggestions: 3,
	}
}

// WithMaxSuggestions sets the number of alternatives attached to unknown
// type names and enum cases.
func (c *Coercer) WithMaxSuggestions(n int) *Coercer {
	c.maxSuggestions = n
	return c
}

// Resolve finds the type named name.
func (c *Coercer) Resolve(name string) (reflect.Type, error) {
	if t, ok := c.registry.Resolve(name, c.namespaces); ok {
		return t, nil
	}

	return nil, diagnostic.
		Resolution("", "cannot find type %q", name).
		WithSuggestions(match.SuggestType(name, c.registry.Names(), c.maxSuggestions)...)
}

// Category classifies t, registry knowledge included.
func (c *Coercer) Category(t reflect.Type) primitive.CategoryEnum {
	if _, ok := c.registry.ConverterOf(t); ok {
		return primitive.CategoryConverter
	}

	if c.registry.IsEnum(t) {
		return primitive.CategoryEnumName
	}

	return primitive.CategoryOf(t)
}

// Coerce converts literal into a value of inferred, or of the type named by
// a trailing "<Type>" on the literal. A nil literal means no value was
// declared, "null" asks for the zero value. extra is passed to the creator
// of shapes.
func (c *Coercer) Coerce(literal *string, inferred reflect.Type, extra ...reflect.Type) (reflect.Value, error) {
	t := inferred

	var (
		text    string
		present = literal != nil
	)
	if present {
		text = *literal

		if body, hint, ok := decl.SplitHint(text); ok {
			hinted, err := c.Resolve(hint)
			if err != nil {
				return reflect.Value{}, err
			}

			t, text = hinted, body
		}
	}

	if t == nil {
		return reflect.Value{}, diagnostic.Coercion("", "no type to coerce %s into", describe(literal))
	}

	null := present && text == node.Null
	absent := !present || null

	switch c.Category(t) {
	case primitive.CategoryConverter:
		if absent {
			return reflect.Zero(t), nil
		}

		conv, _ := c.registry.ConverterOf(t)
		v, err := conv.Convert(text)
		if err != nil {
			return reflect.Value{}, diagnostic.Coercion("", "cannot convert %q to %s: %v", text, t, err)
		}

		return v, nil

	case primitive.CategoryEnumName:
		if absent {
			return reflect.Zero(t), nil
		}

		v, ok := c.registry.EnumValue(t, text)
		if !ok {
			return reflect.Value{}, diagnostic.
				Coercion("", "%q is not a case of %s", text, t).
				WithSuggestions(match.Suggest(text, c.registry.EnumNames(t), c.maxSuggestions)...)
		}

		return v, nil

	case primitive.CategoryString:
		if absent {
			return reflect.Zero(t), nil
		}

		return c.parse(t, text)

	case primitive.CategoryRune:
		if absent {
			text = ""
		}

		return c.parse(t, text)

	case primitive.CategoryNumber, primitive.CategoryBool, primitive.CategoryDuration:
		if absent || text == "" {
			return reflect.Value{}, diagnostic.Coercion("", "%s cannot be absent", t)
		}

		return c.parse(t, text)

	case primitive.CategoryInstant:
		if absent || text == "" {
			return reflect.Zero(t), nil
		}

		return c.parse(t, text)

	case primitive.CategoryOptional:
		if absent || text == "" {
			return reflect.Zero(t), nil
		}

		elem, err := c.Coerce(&text, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)

		return ptr, nil

	case primitive.CategoryText:
		if absent || (text == "" && t.Kind() == reflect.Pointer) {
			return reflect.Zero(t), nil
		}

		return unmarshalText(t, text)

	default:
		if absent {
			return reflect.Zero(t), nil
		}

		if c.creator == nil {
			return Empty(t), nil
		}

		return c.creator.Create(t, extra)
	}
}

// MapKey converts the raw index of a map element into a key of keyType.
// "666<int64>" is coerced to the hinted type; a raw index is only accepted
// by string and interface key types.
func (c *Coercer) MapKey(index string, keyType reflect.Type) (reflect.Value, error) {
	if body, hint, ok := decl.SplitHint(index); ok {
		t, err := c.Resolve(hint)
		if err != nil {
			return reflect.Value{}, err
		}

		key, err := c.Coerce(&body, t)
		if err != nil {
			return reflect.Value{}, err
		}

		if !key.Type().AssignableTo(keyType) {
			return reflect.Value{}, diagnostic.Coercion("", "key %q of type %s does not fit %s", body, t, keyType)
		}

		return key, nil
	}

	switch {
	case keyType.Kind() == reflect.String:
		return reflect.ValueOf(index).Convert(keyType), nil
	case keyType.Kind() == reflect.Interface && reflect.TypeFor[string]().Implements(keyType):
		return reflect.ValueOf(index), nil
	default:
		return reflect.Value{}, diagnostic.Coercion("", "raw key %q does not fit %s, add a key hint: [%s<%s>]",
			index, keyType, index, schema.QualifiedName(keyType))
	}
}

// Empty returns the empty instance of a shape without any registry: a
// zero array or struct, an empty slice or map, a fresh pointer.
func Empty(t reflect.Type) reflect.Value {
	switch t.Kind() {
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0)
	case reflect.Map:
		return reflect.MakeMap(t)
	case reflect.Pointer:
		return reflect.New(t.Elem())
	default:
		return reflect.New(t).Elem()
	}
}

func (c *Coercer) parse(t reflect.Type, text string) (reflect.Value, error) {
	v, err := primitive.Parse(t, text)
	if err != nil {
		return reflect.Value{}, diagnostic.Coercion("", "cannot read %q as %s: %v", text, t, err)
	}

	return v, nil
}

var textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

func unmarshalText(t reflect.Type, text string) (reflect.Value, error) {
	var ptr reflect.Value
	if t.Kind() == reflect.Pointer && t.Implements(textUnmarshaler) {
		ptr = reflect.New(t.Elem())
	} else {
		ptr = reflect.New(t)
	}

	if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
		return reflect.Value{}, diagnostic.Coercion("", "cannot read %q as %s: %v", text, t, err)
	}

	if ptr.Type() == t {
		return ptr, nil
	}

	return ptr.Elem(), nil
}

func describe(literal *string) string {
	if literal == nil {
		return "an absent value"
	}

	return strconv.Quote(*literal)
}
