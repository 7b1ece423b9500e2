package node

import "reflect"

type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherPlain
	DispatcherArray
	DispatcherList
	DispatcherMap

	// DispatcherTotal is a constant that represents the total number of kinds defined
	DispatcherTotal = int(iota)
)

func (d DispatcherEnum) String() string {
	switch d {
	case DispatcherPlain:
		return "plain"
	case DispatcherArray:
		return "array"
	case DispatcherList:
		return "list"
	case DispatcherMap:
		return "map"
	default:
		return "unknown"
	}
}

// Dispatch selects the build shape of a node materialized as t:
// fixed size arrays, growable slices, maps, and plain values for everything
// else (substitutes, structs, primitives).
func Dispatch(t reflect.Type) DispatcherEnum {
	if t == nil {
		return DispatcherUnknown
	}

	switch t.Kind() {
	case reflect.Array:
		return DispatcherArray
	case reflect.Slice:
		return DispatcherList
	case reflect.Map:
		return DispatcherMap
	case reflect.Invalid:
		return DispatcherUnknown
	default:
		return DispatcherPlain
	}
}
