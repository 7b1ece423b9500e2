package stub_test

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mockgraph/stub"
)

type Counter interface {
	Count() int
	Label() *string
	SetCount(n int)
	Next() Counter
}

type counterSub struct{ *stub.Substitute }

func (c counterSub) Count() int     { return stub.Return[int](c.Substitute, "Count") }
func (c counterSub) Label() *string { return stub.Return[*string](c.Substitute, "Label") }
func (c counterSub) SetCount(n int) { c.Record("SetCount", n) }
func (c counterSub) Next() Counter  { return stub.Return[Counter](c.Substitute, "Next") }
func (c counterSub) String() string { return c.Substitute.String() }

var counterType = reflect.TypeFor[Counter]()

func newCounter() counterSub {
	return counterSub{stub.New(counterType)}
}

func ExampleSubstitute_Returns() {
	c := newCounter()
	c.Returns("Count", 1, 2, 3)

	fmt.Println(c.Count(), c.Count(), c.Count(), c.Count())
	// Output:
	// 1 2 3 3
}

func TestUnstubbedReturnsZero(t *testing.T) {
	t.Parallel()

	c := newCounter()
	assert.Equal(t, 0, c.Count())
	assert.Nil(t, c.Label())
	assert.Nil(t, c.Next())
	assert.False(t, c.Stubbed("Count"))
}

func TestNilValues(t *testing.T) {
	t.Parallel()

	c := newCounter()
	c.Returns("Next", nil)
	c.Returns("Label")

	assert.True(t, c.Stubbed("Next"))
	assert.Nil(t, c.Next())
	assert.Nil(t, c.Label())
}

func TestReturnsReplacesSequence(t *testing.T) {
	t.Parallel()

	c := newCounter()
	c.Returns("Count", 1, 2)
	assert.Equal(t, 1, c.Count())

	c.Returns("Count", 8, 9)
	assert.Equal(t, 8, c.Count())
	assert.Equal(t, 9, c.Count())
	assert.Equal(t, 9, c.Count())

	c.Returns("Count")
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.Stubbed("Count"))
}

func TestNestedSubstitutes(t *testing.T) {
	t.Parallel()

	inner := newCounter()
	inner.Returns("Count", 7)

	outer := newCounter()
	outer.Returns("Next", inner, nil)

	first := outer.Next()
	require.NotNil(t, first)
	assert.Equal(t, 7, first.Count())
	assert.Nil(t, outer.Next())
	assert.Nil(t, outer.Next())
}

func TestRecord(t *testing.T) {
	t.Parallel()

	c := newCounter()
	c.SetCount(4)
	c.SetCount(5)

	assert.Equal(t, [][]any{{4}, {5}}, c.Invocations("SetCount"))
	assert.Empty(t, c.Invocations("Count"))

	c.AssertCalled(t, "SetCount", 5)
	c.AssertNumberOfCalls(t, "SetCount", 2)
	c.AssertNotCalled(t, "SetCount", 6)
}

func TestRecordConcurrent(t *testing.T) {
	t.Parallel()

	c := newCounter()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.SetCount(i)
		}()
	}
	wg.Wait()

	assert.Len(t, c.Invocations("SetCount"), 20)
	c.AssertNumberOfCalls(t, "SetCount", 20)
}

func TestOf(t *testing.T) {
	t.Parallel()

	c := newCounter()

	s, ok := stub.Of(c)
	require.True(t, ok)
	assert.Same(t, c.Substitute, s)
	assert.Equal(t, counterType, s.Type())

	_, ok = stub.Of(42)
	assert.False(t, ok)

	_, ok = stub.Of(counterSub{})
	assert.False(t, ok)

	var rec stub.Recorder = c
	assert.Empty(t, rec.Invocations("SetCount"))
}

func TestCapabilities(t *testing.T) {
	t.Parallel()

	extra := reflect.TypeFor[fmt.Stringer]()
	s := stub.New(counterType, extra)
	assert.Equal(t, []reflect.Type{extra}, s.Capabilities())
	assert.Equal(t, "Substitute(stub_test.Counter)", s.String())
}

func TestMockAssertionsStillWork(t *testing.T) {
	t.Parallel()

	c := newCounter()
	c.Returns("Count", 1)
	_ = c.Count()

	c.AssertCalled(t, "Count")
	c.AssertExpectations(t)
	assert.True(t, mock.AssertExpectationsForObjects(t, &c.Mock))
}
