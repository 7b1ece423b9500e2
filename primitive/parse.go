package primitive

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"
)

var ErrNotPrimitive = errors.New("type is not a primitive")

// Parse reads literal as a value of the primitive type t using Go's standard
// textual rules. Named types are produced through reflect conversion, so the
// returned value always has type t.
func Parse(t reflect.Type, literal string) (reflect.Value, error) {
	kind := FromReflectType(t)
	out := reflect.New(t).Elem()

	switch {
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotPrimitive, t)

	case kind == KindString:
		out.SetString(literal)

	case kind == KindRune:
		r, err := parseRune(literal)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(int64(r))

	case kind == KindDuration:
		d, err := time.ParseDuration(literal)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(int64(d))

	case kind == KindTime:
		ms, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Set(reflect.ValueOf(time.UnixMilli(ms)))

	case kind == KindBool:
		b, err := strconv.ParseBool(literal)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(b)

	case kind.IsSigned():
		n, err := strconv.ParseInt(literal, 10, kind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(n)

	case kind.IsUnsigned():
		n, err := strconv.ParseUint(literal, 10, kind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetUint(n)

	case kind.IsFloat():
		f, err := strconv.ParseFloat(literal, kind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetFloat(f)
	}

	return out, nil
}

// parseRune takes a single character verbatim and falls back to a numeric
// code point for longer literals. The empty literal is a space.
func parseRune(literal string) (rune, error) {
	switch utf8.RuneCountInString(literal) {
	case 0:
		return ' ', nil
	case 1:
		r, _ := utf8.DecodeRuneInString(literal)
		return r, nil
	}

	n, err := strconv.ParseInt(literal, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is neither a single character nor a code point: %w", literal, err)
	}

	return rune(n), nil
}
