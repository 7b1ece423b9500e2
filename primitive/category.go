package primitive

import (
	"encoding"
	"reflect"
	"time"
)

//go:generate go tool stringer -type=CategoryEnum -output=category_string.go

// CategoryEnum is the closed set of coercion rules a literal can go through.
// A target type is classified once, then the rule of its category applies.
type CategoryEnum int

const (
	_ CategoryEnum = iota

	CategoryString    // string: literal verbatim
	CategoryRune      // rune: single character, an absent literal reads as ' '
	CategoryNumber    // int, uint, float of any width
	CategoryBool      // bool: strconv.ParseBool spelling
	CategoryDuration  // time.Duration: time.ParseDuration spelling
	CategoryInstant   // time.Time: integer milliseconds since the Unix epoch
	CategoryEnumName  // registered enum: literal is a case name
	CategoryOptional  // pointer to any of the above, nil when absent
	CategoryConverter // registered func(string) (T, error) style converter
	CategoryText      // encoding.TextUnmarshaler
	CategoryShape     // substitutes, structs, arrays, slices, maps: built empty

	// CategoryTotal is a constant that represents the total number of categories defined
	CategoryTotal = int(iota)
)

var textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// IsPrimitive reports whether values of the category can never be absent.
func (c CategoryEnum) IsPrimitive() bool {
	switch c {
	default:
		return false
	case CategoryRune, CategoryNumber, CategoryBool, CategoryDuration:
		return true
	}
}

// CategoryOf classifies t without any registry knowledge. Enum and converter
// categories are decided by the caller, which owns those registrations.
func CategoryOf(t reflect.Type) CategoryEnum {
	if t == nil {
		return 0
	}

	if t.PkgPath() != "" && t != reflect.TypeOf(time.Time{}) && IsTextUnmarshaler(t) {
		return CategoryText
	}

	switch kind := FromReflectType(t); {
	case kind == KindString:
		return CategoryString
	case kind == KindRune:
		return CategoryRune
	case kind == KindBool:
		return CategoryBool
	case kind == KindDuration:
		return CategoryDuration
	case kind == KindTime:
		return CategoryInstant
	case kind.IsNumber():
		return CategoryNumber
	}

	if t.Kind() == reflect.Pointer {
		switch CategoryOf(t.Elem()) {
		case CategoryString, CategoryRune, CategoryNumber, CategoryBool, CategoryDuration, CategoryInstant:
			return CategoryOptional
		case CategoryText:
			return CategoryText
		}
	}

	if IsTextUnmarshaler(t) {
		return CategoryText
	}

	return CategoryShape
}

// IsTextUnmarshaler reports whether t or *t implements encoding.TextUnmarshaler.
func IsTextUnmarshaler(t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return false
	}

	return t.Implements(textUnmarshaler) || reflect.PointerTo(t).Implements(textUnmarshaler)
}
