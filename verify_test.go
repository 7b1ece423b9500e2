package mockgraph_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockgraph"
	"mockgraph/internal/fixture"
	"mockgraph/stub"
)

// handmade returns an A whose B().C() is c, built without declarations.
func handmade(c *stub.Substitute) fixture.A {
	b := stub.New(reflect.TypeFor[fixture.B]())
	b.Returns("C", fixture.NewC(c))

	a := stub.New(typeA)
	a.Returns("B", fixture.NewB(b))

	return fixture.NewA(a)
}

func stubbedC() *stub.Substitute {
	c := stub.New(reflect.TypeFor[fixture.C]())
	c.Returns("Int", 6)
	c.Returns("Long", int64(666))
	c.Returns("Char", 'Z')
	c.Returns("String", "string")

	return c
}

func TestVerifyGetters(t *testing.T) {
	t.Parallel()

	a := handmade(stubbedC())

	err := newBuilder(t).Verify(mockgraph.Getters, a,
		"b.c.int = 6",
		"b.c.long = 666",
		"b.c.char = Z",
		"b.c.string = string",
	)
	require.NoError(t, err)
}

func TestVerifyGettersFailing(t *testing.T) {
	t.Parallel()

	a := handmade(stubbedC())

	err := newBuilder(t).Verify(mockgraph.Getters, a, "b.c.long = 777")
	require.ErrorIs(t, err, mockgraph.ErrVerification)
	assert.Contains(t, err.Error(), "b.c.long")
}

func TestVerifySetters(t *testing.T) {
	t.Parallel()

	a := handmade(stub.New(reflect.TypeFor[fixture.C]()))

	c := a.B().C()
	c.SetInt(666)
	c.SetLong(666)
	c.SetChar('6')
	c.SetString("")

	err := newBuilder(t).Verify(mockgraph.Setters, a,
		"b.c.int = 666",
		"b.c.long = 666",
		"b.c.char = 6",
		"b.c.string = null",
	)
	require.NoError(t, err)
}

func TestVerifySettersFailing(t *testing.T) {
	t.Parallel()

	a := handmade(stub.New(reflect.TypeFor[fixture.C]()))

	c := a.B().C()
	c.SetInt(666)
	c.SetString("")

	err := newBuilder(t).Verify(mockgraph.Setters, a, "b.c.string = 777")
	require.ErrorIs(t, err, mockgraph.ErrVerification)
	assert.Contains(t, err.Error(), "SetString")

	err = newBuilder(t).Verify(mockgraph.Setters, a, "b.c.long = 1")
	require.ErrorIs(t, err, mockgraph.ErrVerification)
	assert.Contains(t, err.Error(), "none")
}

var settings = []string{
	"b.c.byte = 11",
	"b.c.byteO = 12",
	"b.c.short = 111",
	"b.c.shortO = 112",
	"b.c.int = 1111",
	"b.c.intO = 1112",
	"b.c.long = 11111",
	"b.c.longO = 11112",
	"b.c.float = 2.2",
	"b.c.floatO = 2.3",
	"b.c.double = 22.22",
	"b.c.doubleO = 22.33",
	"b.c.char = X",
	"b.c.charO = Y",
	"b.c.string = yo",
	"b.ca[0].int = 100",
	"b.ca[1].int = 101",
	"b.cl[0]<fixture.C>.byte = 6",
	"b.cl[1]<fixture.C>.byte = 7",
	"b.cmapLong[5<int64>]<fixture.C>.int = 5",
	"b.e = INT",
	"b.origin.x = 1",
}

func TestVerifyGettersWithBuilder(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)

	a, err := mockgraph.Build[fixture.A](b, settings)
	require.NoError(t, err)

	require.NoError(t, b.Verify(mockgraph.Getters, a, settings...))
}

func TestVerifyGettersWithBuilderNegative(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)

	a, err := mockgraph.Build[fixture.A](b, settings)
	require.NoError(t, err)

	changed := append([]string(nil), settings...)
	changed[14] += "x"

	err = b.Verify(mockgraph.Getters, a, changed...)
	require.ErrorIs(t, err, mockgraph.ErrVerification)
	assert.Contains(t, err.Error(), `"yox"`)
}

func TestVerifyNullGetter(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)

	a, err := mockgraph.Build[fixture.A](b, []string{"b.c.intO = null", "b.c.o = null"})
	require.NoError(t, err)

	require.NoError(t, b.Verify(mockgraph.Getters, a, "b.c.intO = null", "b.c.o = null"))
}

func TestVerifyMissingElement(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)

	a, err := mockgraph.Build[fixture.A](b, []string{"b.cl[0]<C>.int = 1", "b.cmap[k]<C>.int = 1"})
	require.NoError(t, err)

	err = b.Verify(mockgraph.Getters, a, "b.cl[3]<C>.int = 1")
	require.ErrorIs(t, err, mockgraph.ErrVerification)

	err = b.Verify(mockgraph.Getters, a, "b.cmap[x]<C>.int = 1")
	require.ErrorIs(t, err, mockgraph.ErrVerification)
}

func TestVerifyStruct(t *testing.T) {
	t.Parallel()

	p := fixture.Point{X: 1, Y: 2, Label: "p"}
	b := newBuilder(t)

	require.NoError(t, b.Verify(mockgraph.Getters, p, "x = 1", "why = 2", "label = p"))
	require.ErrorIs(t, b.Verify(mockgraph.Getters, p, "x = 2"), mockgraph.ErrVerification)

	// Point has no mutators
	require.ErrorIs(t, b.Verify(mockgraph.Setters, &p, "x = 1"), mockgraph.ErrResolution)
}

func TestVerifyNilRoot(t *testing.T) {
	t.Parallel()

	err := newBuilder(t).Verify(mockgraph.Getters, nil, "x = 1")
	require.ErrorIs(t, err, mockgraph.ErrVerification)
}
