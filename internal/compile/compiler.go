package compile

import (
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"mockgraph/internal/decl"
	"mockgraph/node"
)

// Compiler turns declarations into a tree of nodes, one tree per root type.
//
// Every node that can be reused by a later declaration is registered under its
// canonical key. The registry keeps the history of a key as a stack: the last
// entry is the live node, a nil entry is a tombstone left by a reset. Leaves
// carrying values are never registered, so repeating a declaration appends a
// new leaf instead of overwriting the previous one.
type Compiler struct {
	log      *slog.Logger
	registry map[string][]*node.Node
}

// New returns an empty compiler. A nil logger discards all output.
func New(log *slog.Logger) *Compiler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Compiler{
		log:      log,
		registry: make(map[string][]*node.Node),
	}
}

// Compile compiles lines for rootType in order and returns the root.
func Compile(rootType reflect.Type, lines []string, extra ...reflect.Type) (*node.Node, error) {
	c := New(nil)
	if err := c.DeclareAll(rootType, lines, extra...); err != nil {
		return nil, err
	}

	return c.RootOf(rootType), nil
}

// RootName is the name of the root node of t: the type name without package
// and without type arguments. Pointers are named after their element.
func RootName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}

	if i := strings.IndexByte(name, '['); i > 0 {
		name = name[:i]
	}

	return name
}

// DeclareAll declares every line in order, stopping at the first error.
// The root of rootType exists afterwards even when lines is empty.
func (c *Compiler) DeclareAll(rootType reflect.Type, lines []string, extra ...reflect.Type) error {
	c.ensureRoot(rootType, extra)

	for _, line := range lines {
		if err := c.Declare(rootType, line, extra...); err != nil {
			return err
		}
	}

	return nil
}

// Declare adds one declaration to the tree of rootType.
func (c *Compiler) Declare(rootType reflect.Type, line string, extra ...reflect.Type) error {
	d, err := decl.Parse(line)
	if err != nil {
		return err
	}

	current := c.ensureRoot(rootType, extra)
	last := len(d.Segments) - 1

	for i, seg := range d.Segments {
		key := node.JoinKey(current.Key, seg.Raw)

		switch {
		case i < last:
			current = c.reuseOrCreate(current, seg)
		case d.Value != nil && *d.Value == node.Reset:
			if c.find(key) != nil {
				c.invalidate(key)
			}

			current = c.create(current, seg)
			current.Value = d.Value
		default:
			leaf := c.newNode(current, seg)
			leaf.Value = d.Value
			c.parentOf(current, seg).Append(leaf)
			c.log.Debug("new leaf", "key", key)
		}
	}

	return nil
}

// Root returns the node with the shortest registered key, nil before the
// first declaration.
func (c *Compiler) Root() *node.Node {
	keys := make([]string, 0, len(c.registry))
	for key := range c.registry {
		keys = append(keys, key)
	}

	slices.SortFunc(keys, func(a, b string) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}

		return strings.Compare(a, b)
	})

	for _, key := range keys {
		if n := c.find(key); n != nil {
			return n
		}
	}

	return nil
}

// RootOf returns the root of the tree of t, nil if nothing was declared for it.
func (c *Compiler) RootOf(t reflect.Type) *node.Node {
	n := c.find(RootName(t))
	if n == nil || n.Type != t {
		return nil
	}

	return n
}

func (c *Compiler) ensureRoot(rootType reflect.Type, extra []reflect.Type) *node.Node {
	name := RootName(rootType)

	root := c.find(name)
	if root == nil {
		root = node.New(name, "")
		root.Type = rootType
		c.put(name, root)
		c.log.Debug("new root", "key", name, "type", node.TypeName(rootType))
	}

	for _, e := range extra {
		if !slices.Contains(root.Extra, e) {
			root.Extra = append(root.Extra, e)
		}
	}

	return root
}

// reuseOrCreate returns the live node for seg below current, creating it when
// there is none.
func (c *Compiler) reuseOrCreate(current *node.Node, seg decl.Segment) *node.Node {
	key := node.JoinKey(current.Key, seg.Raw)

	c.log.Debug("looking for", "key", key)
	if n := c.find(key); n != nil {
		c.log.Debug("reusing", "key", key, "node", n.String())
		return n
	}

	return c.create(current, seg)
}

// create registers a fresh node for seg below current. Indexed segments are
// placed in their container, which is created on first use.
func (c *Compiler) create(current *node.Node, seg decl.Segment) *node.Node {
	n := c.newNode(current, seg)
	c.parentOf(current, seg).Append(n)
	c.put(n.Key, n)
	c.log.Debug("new node", "key", n.Key)

	return n
}

func (c *Compiler) newNode(current *node.Node, seg decl.Segment) *node.Node {
	n := node.New(seg.Raw, current.Key)
	n.Index = seg.Index
	n.Hint = seg.Hint

	return n
}

// parentOf returns the node a new node for seg is appended to: current
// itself, or the container of an indexed segment.
func (c *Compiler) parentOf(current *node.Node, seg decl.Segment) *node.Node {
	if !seg.HasIndex() {
		return current
	}

	key := node.JoinKey(current.Key, seg.Name)
	container := c.find(key)
	if container == nil {
		container = node.New(seg.Name, current.Key)
		container.IsContainer = true
		current.Append(container)
		c.put(key, container)
		c.log.Debug("new container", "key", key)
	}

	// a reset container holds elements again from here on
	container.IsContainer = true

	return container
}

func (c *Compiler) find(key string) *node.Node {
	stack := c.registry[key]
	if len(stack) == 0 {
		return nil
	}

	return stack[len(stack)-1]
}

// put makes n the live node of key, replacing a tombstone on top.
func (c *Compiler) put(key string, n *node.Node) {
	stack := c.registry[key]
	if len(stack) > 0 && stack[len(stack)-1] == nil {
		stack[len(stack)-1] = n
		return
	}

	c.registry[key] = append(stack, n)
}

// invalidate pushes a tombstone on key and every key below it. A key is below
// another when it continues it with a segment, an index or a hint, so
// "A.ats[2]" does not invalidate "A.ats[20]".
func (c *Compiler) invalidate(key string) {
	for k, stack := range c.registry {
		if !within(k, key) {
			continue
		}

		c.log.Debug("invalidating", "key", k)
		c.registry[k] = append(stack, nil)
	}
}

func within(k, prefix string) bool {
	if !strings.HasPrefix(k, prefix) {
		return false
	}

	if len(k) == len(prefix) {
		return true
	}

	switch k[len(prefix)] {
	case '.', '[', '<':
		return true
	default:
		return false
	}
}
