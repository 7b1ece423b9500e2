// Package stub provides Substitute, the runtime behind every generated test
// double. A substitute answers accessor calls with stubbed value sequences and
// records mutator calls, on top of github.com/stretchr/testify/mock.
//
// Go cannot synthesize an implementation of an interface at runtime, so each
// substitutable interface gets a small hand-written wrapper that embeds
// *Substitute and forwards its methods:
//
//	type cSub struct{ *stub.Substitute }
//
//	func (c cSub) Int() int     { return stub.Return[int](c.Substitute, "Int") }
//	func (c cSub) SetInt(v int) { c.Record("SetInt", v) }
//
// Wrappers are registered with schema.Substitute.
package stub

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/stretchr/testify/mock"
)

// Stubber is implemented by every value backed by a Substitute, including
// wrappers embedding one.
type Stubber interface {
	Stubs() *Substitute
}

// Recorder exposes the recorded invocations of a mutator.
type Recorder interface {
	Invocations(method string) [][]any
}

// Substitute is a test double for one type. The zero value is not usable,
// create substitutes with New.
type Substitute struct {
	mock.Mock

	typ   reflect.Type
	extra []reflect.Type

	mu       sync.Mutex
	stubbed  map[string]*mock.Call
	recorded map[string]map[int]bool
	calls    map[string][][]any
}

// New returns a substitute standing in for t and the extra capabilities.
func New(t reflect.Type, extra ...reflect.Type) *Substitute {
	return &Substitute{
		typ:      t,
		extra:    extra,
		stubbed:  make(map[string]*mock.Call),
		recorded: make(map[string]map[int]bool),
		calls:    make(map[string][][]any),
	}
}

// Type is the type the substitute stands in for.
func (s *Substitute) Type() reflect.Type { return s.typ }

// Capabilities are the extra types the substitute was created with.
func (s *Substitute) Capabilities() []reflect.Type { return s.extra }

// Stubs returns s, it lets wrappers be handled as a Stubber.
func (s *Substitute) Stubs() *Substitute { return s }

// Returns stubs method with a sequence of values: the n-th call returns the
// n-th value, and the last value is returned for every call after that.
// Calling Returns without values stubs the method with a nil result.
// Calling it again replaces the previous sequence.
func (s *Substitute) Returns(method string, values ...any) {
	if len(values) == 0 {
		values = []any{nil}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev := s.stubbed[method]; prev != nil {
		prev.Unset()
	}

	var call *mock.Call
	for i, v := range values {
		call = s.On(method).Return(v)
		if i < len(values)-1 {
			call.Once()
		}
	}

	s.stubbed[method] = call
}

// Stubbed reports whether Returns was called for method.
func (s *Substitute) Stubbed(method string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stubbed[method] != nil
}

// Get answers a call of method. Methods without stubs return nil.
func (s *Substitute) Get(method string) any {
	if !s.Stubbed(method) {
		return nil
	}

	return s.MethodCalled(method).Get(0)
}

// Return answers a call of method typed as T, the zero value when the method
// is not stubbed or stubbed with nil.
func Return[T any](s *Substitute, method string) T {
	v, _ := s.Get(method).(T)
	return v
}

// Record registers a call of a mutator. Recorded calls are visible through
// Invocations and through the testify assertions of the embedded mock.
func (s *Substitute) Record(method string, args ...any) {
	s.mu.Lock()
	arities := s.recorded[method]
	if arities == nil {
		arities = make(map[int]bool)
		s.recorded[method] = arities
	}

	if !arities[len(args)] {
		matchers := make([]any, len(args))
		for i := range matchers {
			matchers[i] = mock.Anything
		}

		s.On(method, matchers...).Return()
		arities[len(args)] = true
	}

	s.calls[method] = append(s.calls[method], args)
	s.mu.Unlock()

	s.MethodCalled(method, args...)
}

// Invocations returns the argument lists of every recorded call of method,
// in call order.
func (s *Substitute) Invocations(method string) [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([][]any, len(s.calls[method]))
	copy(out, s.calls[method])

	return out
}

func (s *Substitute) String() string {
	if s.typ == nil {
		return "Substitute"
	}

	return fmt.Sprintf("Substitute(%s)", s.typ)
}

// Of returns the substitute behind v, when there is one.
func Of(v any) (*Substitute, bool) {
	st, ok := v.(Stubber)
	if !ok || st == nil {
		return nil, false
	}

	s := st.Stubs()

	return s, s != nil
}
