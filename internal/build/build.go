// Package build materializes a compiled declaration tree into an object
// graph.
//
// Each node is built by one of four strategies, selected by node.Dispatch
// from the type the node materializes into:
//
//   - plain: children are grouped by name in first-occurrence order, every
//     group becomes the ordered stub sequence of one accessor;
//   - array: children are written at their index, the last write wins;
//   - list: like array, the slice grows on demand;
//   - map: children are stored under their coerced key.
//
// List and map elements must carry a type hint.
package build

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"

	"mockgraph/internal/coerce"
	"mockgraph/internal/common"
	"mockgraph/internal/diagnostic"
	"mockgraph/internal/introspect"
	"mockgraph/node"
	"mockgraph/utils"
)

// Factory creates instances and registers accessor stub sequences on them.
type Factory interface {
	coerce.Creator
	// StubSequence makes accessor of instance return values in order, the
	// last one forever after.
	StubSequence(instance reflect.Value, accessor introspect.Accessor, values []reflect.Value) error
}

// Introspector finds accessors.
type Introspector interface {
	AccessorFor(t reflect.Type, property string) (introspect.Accessor, error)
}

// Builder holds no per-build state and may be shared.
type Builder struct {
	log          *slog.Logger
	factory      Factory
	introspector Introspector
	coercer      *coerce.Coercer
}

func New(factory Factory, introspector Introspector, coercer *coerce.Coercer, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Builder{
		log:          log,
		factory:      factory,
		introspector: introspector,
		coercer:      coercer,
	}
}

// Build materializes root, whose Type must be set.
func (b *Builder) Build(root *node.Node) (reflect.Value, error) {
	if root == nil || root.Type == nil {
		return reflect.Value{}, diagnostic.Resolution("", "nothing to build: the root has no type")
	}

	// an undeclared root is still an instance
	if root.IsLeaf() && root.Value == nil {
		v, err := b.factory.Create(root.Type, root.Extra)
		if err != nil {
			return reflect.Value{}, at(err, root)
		}

		return v, nil
	}

	return b.build(root)
}

func (b *Builder) build(n *node.Node) (reflect.Value, error) {
	strategy := node.Dispatch(n.Type)
	b.log.Debug("building", "key", n.Key, "type", node.TypeName(n.Type), "strategy", strategy)

	base, err := b.base(n)
	if err != nil {
		return reflect.Value{}, err
	}

	if n.IsLeaf() {
		return base, nil
	}

	switch strategy {
	case node.DispatcherArray:
		return b.buildArray(n, base)
	case node.DispatcherList:
		return b.buildList(n, base)
	case node.DispatcherMap:
		return b.buildMap(n, base)
	default:
		return b.buildPlain(n, base)
	}
}

// base is the coerced literal of a leaf, or the empty instance that the
// children of a node are built into.
func (b *Builder) base(n *node.Node) (reflect.Value, error) {
	if n.IsLeaf() {
		v, err := b.coercer.Coerce(n.Value, n.Type, n.Extra...)
		if err != nil {
			return reflect.Value{}, at(err, n)
		}

		return v, nil
	}

	v, err := b.factory.Create(n.Type, n.Extra)
	if err != nil {
		return reflect.Value{}, at(err, n)
	}

	return settable(v), nil
}

func (b *Builder) buildPlain(n *node.Node, base reflect.Value) (reflect.Value, error) {
	for _, group := range groupByName(n.Children) {
		first, _ := common.First(group)

		accessor, err := b.accessor(n, first.Property())
		if err != nil {
			return reflect.Value{}, at(err, first)
		}

		if accessor.IsField() && common.IsMultiple(group) {
			return reflect.Value{}, diagnostic.Policy(first.Key,
				"field %s of %s cannot return a sequence of %d values", accessor.Name, n.Type, len(group))
		}

		values := make([]reflect.Value, 0, len(group))
		for _, child := range group {
			if err := b.typeChild(child, accessor.Type); err != nil {
				return reflect.Value{}, err
			}

			v, err := b.buildSlot(child, accessor.Type)
			if err != nil {
				return reflect.Value{}, err
			}

			values = append(values, v)
		}

		b.log.Debug("stubbing", "key", first.Key, "accessor", accessor.Name, "values", len(values))

		if err := b.factory.StubSequence(base, accessor, values); err != nil {
			return reflect.Value{}, at(err, first)
		}
	}

	return base, nil
}

func (b *Builder) buildArray(n *node.Node, base reflect.Value) (reflect.Value, error) {
	for _, child := range n.Children {
		idx, err := b.position(child)
		if err != nil {
			return reflect.Value{}, err
		}

		if !utils.IsInRange(0, idx, n.Type.Len()-1) {
			return reflect.Value{}, diagnostic.Grammar(child.Key, "index %d out of range for %s", idx, n.Type)
		}

		if err := b.typeChild(child, n.Type.Elem()); err != nil {
			return reflect.Value{}, err
		}

		v, err := b.buildSlot(child, n.Type.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		base.Index(idx).Set(v)
	}

	return base, nil
}

func (b *Builder) buildList(n *node.Node, base reflect.Value) (reflect.Value, error) {
	for _, child := range n.Children {
		if child.Hint == "" {
			return reflect.Value{}, diagnostic.Policy(child.Key, "list elements should have hint: %s<Type>", child.Property()+"["+child.Index+"]")
		}

		idx, err := b.position(child)
		if err != nil {
			return reflect.Value{}, err
		}

		if err := b.typeChild(child, nil); err != nil {
			return reflect.Value{}, err
		}

		v, err := b.buildSlot(child, n.Type.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		if grow := idx + 1 - base.Len(); grow > 0 {
			base = reflect.AppendSlice(base, reflect.MakeSlice(n.Type, grow, grow))
		}

		base.Index(idx).Set(v)
	}

	return base, nil
}

func (b *Builder) buildMap(n *node.Node, base reflect.Value) (reflect.Value, error) {
	for _, child := range n.Children {
		if child.Hint == "" {
			return reflect.Value{}, diagnostic.Policy(child.Key, "map elements should have hint: %s<Type>", child.Property()+"["+child.Index+"]")
		}

		if err := b.typeChild(child, nil); err != nil {
			return reflect.Value{}, err
		}

		v, err := b.buildSlot(child, n.Type.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		key, err := b.coercer.MapKey(child.Index, n.Type.Key())
		if err != nil {
			return reflect.Value{}, at(err, child)
		}

		base.SetMapIndex(key, v)
	}

	return base, nil
}

// accessor finds property on the type of n, falling back to the extra
// capabilities of the root.
func (b *Builder) accessor(n *node.Node, property string) (introspect.Accessor, error) {
	accessor, err := b.introspector.AccessorFor(n.Type, property)
	if err == nil {
		return accessor, nil
	}

	for _, extra := range n.Extra {
		if a, extraErr := b.introspector.AccessorFor(extra, property); extraErr == nil {
			return a, nil
		}
	}

	return introspect.Accessor{}, err
}

// typeChild sets the type of child from its hint, or to inferred.
func (b *Builder) typeChild(child *node.Node, inferred reflect.Type) error {
	if child.Hint == "" {
		child.Type = inferred
		return nil
	}

	t, err := b.coercer.Resolve(child.Hint)
	if err != nil {
		return at(err, child)
	}

	child.Type = t

	return nil
}

// buildSlot builds child and checks the result fits a slot of type slot.
func (b *Builder) buildSlot(child *node.Node, slot reflect.Type) (reflect.Value, error) {
	v, err := b.build(child)
	if err != nil {
		return reflect.Value{}, err
	}

	if !v.IsValid() {
		return reflect.Zero(slot), nil
	}

	if !v.Type().AssignableTo(slot) {
		return reflect.Value{}, diagnostic.Coercion(child.Key, "%s is not assignable to %s", v.Type(), slot)
	}

	return v, nil
}

func (b *Builder) position(child *node.Node) (int, error) {
	idx, err := strconv.Atoi(child.Index)
	if err != nil || idx < 0 {
		return 0, diagnostic.Grammar(child.Key, "index %q is not a position", child.Index)
	}

	return idx, nil
}

// groupByName groups nodes sharing a name, in order of first occurrence.
func groupByName(children []*node.Node) [][]*node.Node {
	var (
		groups [][]*node.Node
		pos    = make(map[string]int)
	)

	for _, child := range children {
		i, ok := pos[child.Name]
		if !ok {
			i = len(groups)
			pos[child.Name] = i
			groups = append(groups, nil)
		}

		groups[i] = append(groups[i], child)
	}

	return groups
}

// settable returns v, or an addressable copy of it.
func settable(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanSet() {
		return v
	}

	switch v.Kind() {
	case reflect.Array, reflect.Struct:
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		return cp
	default:
		return v
	}
}

func at(err error, n *node.Node) error {
	if e, ok := diagnostic.As(err); ok {
		e.At(n.Key)
		return err
	}

	return fmt.Errorf("%s: %w", n.Key, err)
}
