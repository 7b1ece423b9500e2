package node

import (
	"reflect"
	"strings"
)

const (
	// Null is the literal that stubs an explicit nil.
	Null = "null"
	// Reset is the literal that forces a fresh instance for the declarations that follow.
	Reset = "*"
)

// Node is one position of a compiled declaration tree.
//
// Nodes are created by the compiler in declaration order. The builder only
// reads them, except for Type which it assigns from context (accessor return
// type, array element type or hint).
type Node struct {
	// Name is the raw segment, index and hint included: "cl[0]<C>".
	Name string
	// Key joins the raw segments from the root: "A.b.cl[0]<C>".
	Key string
	// Children are kept in declaration order, which is call order for
	// repeated accessors.
	Children []*Node
	// Type is the type the node materializes into.
	Type reflect.Type
	// Index is the element position or the raw map key, possibly with a
	// "<KeyType>" suffix. Empty for non-element nodes.
	Index string
	// Hint is an explicit type name overriding the contextual type.
	Hint string
	// IsContainer marks the node holding indexed elements.
	IsContainer bool
	// Value is the leaf literal; nil means no stub configured.
	Value *string
	// Extra lists additional capabilities, set on the root only.
	Extra []reflect.Type
}

// New creates a node for the raw segment name below the parent key.
func New(name, upstreamKey string) *Node {
	return &Node{
		Name: name,
		Key:  JoinKey(upstreamKey, name),
	}
}

// JoinKey appends a segment to a canonical key.
func JoinKey(upstream, name string) string {
	if upstream == "" {
		return name
	}

	return upstream + "." + name
}

// Literal returns a pointer to s, for use as Node.Value.
func Literal(s string) *string { return &s }

// Equal compares nodes by bare name only, two nodes sharing a name are
// interchangeable.
func (n *Node) Equal(other *Node) bool {
	if n == other {
		return true
	}

	if n == nil || other == nil {
		return false
	}

	return n.Name == other.Name
}

// Property is the accessor name of the node, with index and hint removed.
func (n *Node) Property() string {
	if i := strings.IndexAny(n.Name, "[<"); i >= 0 {
		return n.Name[:i]
	}

	return n.Name
}

func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// IsReset reports whether the node was declared with the reset marker.
func (n *Node) IsReset() bool { return n.Value != nil && *n.Value == Reset }

// IsNull reports whether the node stubs an explicit nil.
func (n *Node) IsNull() bool { return n.Value != nil && *n.Value == Null }

// IsElement reports whether the node is an indexed element of a container.
func (n *Node) IsElement() bool { return n.Index != "" }

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) { n.Children = append(n.Children, child) }

// Walk visits n and its descendants depth first, in declaration order.
// Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(depth int, n *Node) bool) {
	n.walk(0, fn)
}

func (n *Node) walk(depth int, fn func(int, *Node) bool) {
	if !fn(depth, n) {
		return
	}

	for _, child := range n.Children {
		child.walk(depth+1, fn)
	}
}

func (n *Node) String() string {
	var sb strings.Builder

	sb.WriteString("N[name=" + n.Name + ", key=" + n.Key)
	if n.Type != nil {
		sb.WriteString(", type=" + typeStr(n.Type))
	}
	if n.Index != "" {
		sb.WriteString(", index=" + n.Index)
	}
	if n.Hint != "" {
		sb.WriteString(", hint=" + n.Hint)
	}
	if n.IsContainer {
		sb.WriteString(", container")
	}
	if n.Value != nil {
		sb.WriteString(", value=" + *n.Value)
	}
	sb.WriteString("]")

	return sb.String()
}
