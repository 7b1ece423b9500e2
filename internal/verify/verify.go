// Package verify checks a real object graph against a compiled declaration
// tree, reading values back through the same paths the builder writes.
package verify

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/stretchr/testify/assert"

	"mockgraph/internal/coerce"
	"mockgraph/internal/diagnostic"
	"mockgraph/internal/introspect"
	"mockgraph/node"
	"mockgraph/stub"
)

//go:generate go tool stringer -type=Mode -output=mode_string.go

// Mode selects what the leaves of the tree are compared with.
type Mode int

const (
	_ Mode = iota

	// Getters compares each leaf with the value its accessor returns.
	Getters
	// Setters expects the mutator of each leaf to have been called with the
	// leaf value.
	Setters
)

// Introspector finds accessors and mutators.
type Introspector interface {
	AccessorFor(t reflect.Type, property string) (introspect.Accessor, error)
	MutatorFor(t reflect.Type, property string) (introspect.Mutator, error)
}

type Verifier struct {
	log          *slog.Logger
	introspector Introspector
	coercer      *coerce.Coercer
}

func New(introspector Introspector, coercer *coerce.Coercer, log *slog.Logger) *Verifier {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Verifier{
		log:          log,
		introspector: introspector,
		coercer:      coercer,
	}
}

// Verify walks tree over root. The first mismatch is returned as a
// verification error, usage mistakes keep their own codes.
func (v *Verifier) Verify(mode Mode, root reflect.Value, tree *node.Node) error {
	if mode != Getters && mode != Setters {
		return fmt.Errorf("unknown verification mode %s", mode)
	}

	if tree == nil {
		return nil
	}

	return v.verify(mode, root, tree)
}

func (v *Verifier) verify(mode Mode, parent reflect.Value, parentNode *node.Node) error {
	for _, child := range parentNode.Children {
		// a reset declares a fresh instance, not a value
		if child.IsLeaf() && child.IsReset() {
			continue
		}

		if mode == Setters && child.IsLeaf() {
			if err := v.verifySetter(parent, child); err != nil {
				return err
			}

			continue
		}

		value, err := v.resolve(parent, child)
		if err != nil {
			return err
		}

		if !child.IsLeaf() {
			if err := v.verify(mode, value, child); err != nil {
				return err
			}

			continue
		}

		if err := v.verifyGetter(value, child); err != nil {
			return err
		}
	}

	return nil
}

func (v *Verifier) verifyGetter(actual reflect.Value, child *node.Node) error {
	t := actual.Type()
	if actual.Kind() == reflect.Interface && !actual.IsNil() {
		t = actual.Elem().Type()
	}

	expected, err := v.coercer.Coerce(child.Value, t)
	if err != nil {
		return at(err, child)
	}

	v.log.Debug("comparing", "key", child.Key, "type", node.TypeName(t))

	if !assert.ObjectsAreEqual(expected.Interface(), actual.Interface()) {
		return diagnostic.Verification(child.Key, "expected %#v, got %#v", expected.Interface(), actual.Interface())
	}

	return nil
}

func (v *Verifier) verifySetter(parent reflect.Value, child *node.Node) error {
	parent, err := dynamic(parent, child)
	if err != nil {
		return err
	}

	mutator, err := v.introspector.MutatorFor(parent.Type(), child.Property())
	if err != nil {
		return at(err, child)
	}

	recorder, ok := parent.Interface().(stub.Recorder)
	if !ok {
		return diagnostic.Policy(child.Key, "%s does not record calls of %s", parent.Type(), mutator.Name)
	}

	expected, err := v.coercer.Coerce(child.Value, mutator.Type)
	if err != nil {
		return at(err, child)
	}

	calls := recorder.Invocations(mutator.Name)
	for _, args := range calls {
		if len(args) == 1 && assert.ObjectsAreEqual(expected.Interface(), args[0]) {
			return nil
		}
	}

	return diagnostic.Verification(child.Key, "%s(%#v) was not called, recorded calls: %s",
		mutator.Name, expected.Interface(), formatCalls(calls))
}

// resolve reads the value child denotes below parent.
func (v *Verifier) resolve(parent reflect.Value, child *node.Node) (reflect.Value, error) {
	parent, err := dynamic(parent, child)
	if err != nil {
		return reflect.Value{}, err
	}

	switch node.Dispatch(parent.Type()) {
	case node.DispatcherArray, node.DispatcherList:
		idx, err := strconv.Atoi(child.Index)
		if err != nil || idx < 0 {
			return reflect.Value{}, diagnostic.Grammar(child.Key, "index %q is not a position", child.Index)
		}

		if idx >= parent.Len() {
			return reflect.Value{}, diagnostic.Verification(child.Key, "index %d out of range, %s has %d elements", idx, parent.Type(), parent.Len())
		}

		return parent.Index(idx), nil

	case node.DispatcherMap:
		key, err := v.coercer.MapKey(child.Index, parent.Type().Key())
		if err != nil {
			return reflect.Value{}, at(err, child)
		}

		value := parent.MapIndex(key)
		if !value.IsValid() {
			return reflect.Value{}, diagnostic.Verification(child.Key, "no entry for key %v", key.Interface())
		}

		return value, nil

	default:
		accessor, err := v.introspector.AccessorFor(parent.Type(), child.Property())
		if err != nil {
			return reflect.Value{}, at(err, child)
		}

		value, err := accessor.Read(parent)
		if err != nil {
			return reflect.Value{}, diagnostic.Verification(child.Key, "%v", err)
		}

		return value, nil
	}
}

// dynamic unwraps interfaces, a nil parent cannot have children.
func dynamic(v reflect.Value, child *node.Node) (reflect.Value, error) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return reflect.Value{}, diagnostic.Verification(child.Key, "parent of %s is nil", child.Name)
	}

	return v, nil
}

func formatCalls(calls [][]any) string {
	if len(calls) == 0 {
		return "none"
	}

	parts := make([]string, 0, len(calls))
	for _, args := range calls {
		parts = append(parts, fmt.Sprintf("%v", args))
	}

	return strings.Join(parts, ", ")
}

func at(err error, n *node.Node) error {
	if e, ok := diagnostic.As(err); ok {
		e.At(n.Key)
		return err
	}

	return fmt.Errorf("%s: %w", n.Key, err)
}
