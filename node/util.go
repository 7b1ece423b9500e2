package node

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

func typeStr(t reflect.Type) string {
	// fully qualified named types, or builtin string for basics
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + typeStr(t.Elem())
	case reflect.Slice:
		return "[]" + typeStr(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + typeStr(t.Elem())
	case reflect.Map:
		return "map[" + typeStr(t.Key()) + "]" + typeStr(t.Elem())
	default:
		if t.PkgPath() == "" {
			return t.String()
		}
		return t.PkgPath() + "." + t.Name()
	}
}

// TypeName renders t the way nodes print it; nil renders as "<nil>".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return typeStr(t)
}

// Format renders the tree below n, one node per line, indented by depth.
func Format(n *Node) string {
	var sb strings.Builder

	n.Walk(func(depth int, n *Node) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(n.Name)
		if n.Type != nil {
			sb.WriteString(" (" + typeStr(n.Type) + ")")
		}
		if n.Value != nil {
			sb.WriteString(" = " + *n.Value)
		}
		sb.WriteString("\n")

		return true
	})

	return sb.String()
}

// view is the printable projection of a node, reflect types rendered as names.
type view struct {
	Name        string
	Key         string
	Type        string
	Index       string
	Hint        string
	IsContainer bool
	Value       *string
	Extra       []string
	Children    []view
}

func toView(n *Node) view {
	v := view{
		Name:        n.Name,
		Key:         n.Key,
		Index:       n.Index,
		Hint:        n.Hint,
		IsContainer: n.IsContainer,
		Value:       n.Value,
	}
	if n.Type != nil {
		v.Type = typeStr(n.Type)
	}
	for _, e := range n.Extra {
		v.Extra = append(v.Extra, typeStr(e))
	}
	for _, child := range n.Children {
		v.Children = append(v.Children, toView(child))
	}

	return v
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// Dump renders every field of the tree below n with go-spew.
func Dump(n *Node) string {
	return dumper.Sdump(toView(n))
}
