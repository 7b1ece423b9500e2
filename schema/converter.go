package schema

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"mockgraph/utils"
)

var (
	ErrIsNotAConverter         = errors.New("provided function is not a recognizable converter")
	ErrConverterIsNotAFunction = errors.New("provided converter is not a function")
	ErrDoublePointer           = errors.New("converter function does not support double pointers")
)

var (
	errorType  = reflect.TypeFor[error]()
	stringType = reflect.TypeFor[string]()
)

// Converter is a literal constructor of one type.
type Converter struct {
	Dst          reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseConverter inspects the provided function and returns a Converter if it
// reads a literal into a value.
//
// Supports signatures:
//   - func(literal string) (dst Type)
//   - func(literal string) (dst Type, bool)
//   - func(literal string) (dst Type, error)
//   - func(literal string) (dst Type, bool, error)
func ParseConverter(fn any) (Converter, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() {
		return Converter{}, ErrConverterIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return Converter{}, ErrConverterIsNotAFunction
	}

	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Converter{}, ErrIsNotAConverter
	}

	if fnType.In(0).Kind() != reflect.String {
		return Converter{}, ErrIsNotAConverter
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Ptr && dst.Elem().Kind() == reflect.Ptr {
		return Converter{}, ErrDoublePointer
	}

	fnPC := runtime.FuncForPC(fnVal.Pointer())
	// "github.com/google/uuid.Parse": the alias follows the last slash
	alias, name := utils.Unpack2(strings.SplitN(utils.Second(path.Split(fnPC.Name())), ".", 2))

	conv := Converter{
		Dst:          dst,
		Name:         name,
		PackageAlias: alias,
		fn:           fnVal,
	}

	switch fnType.NumOut() {
	default:
		return Converter{}, ErrIsNotAConverter

	case 1:
		return conv, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Converter{}, ErrIsNotAConverter
		case last.Kind() == reflect.Bool:
			conv.HasBool = true
		case isError(last):
			conv.HasErr = true
		}
		return conv, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Converter{}, ErrIsNotAConverter
		}

		conv.HasBool = true
		conv.HasErr = true
		return conv, nil
	}
}

// Convert calls the converter. A false bool result and a non-nil error are
// both reported as errors.
func (c Converter) Convert(literal string) (reflect.Value, error) {
	in := reflect.ValueOf(literal)
	if t := c.fn.Type().In(0); t != stringType {
		in = in.Convert(t)
	}

	out := c.fn.Call([]reflect.Value{in})

	if c.HasErr {
		if err, _ := out[len(out)-1].Interface().(error); err != nil {
			return reflect.Value{}, err
		}
	}

	if c.HasBool && !out[1].Bool() {
		return reflect.Value{}, fmt.Errorf("%s rejected %q", c, literal)
	}

	return out[0], nil
}

func (c Converter) String() string {
	if c.PackageAlias == "" {
		return c.Name
	}

	return c.PackageAlias + "." + c.Name
}

func isError(t reflect.Type) bool {
	return t.Implements(errorType)
}
