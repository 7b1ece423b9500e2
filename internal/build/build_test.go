package build

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockgraph/internal/coerce"
	"mockgraph/internal/compile"
	"mockgraph/internal/diagnostic"
	"mockgraph/internal/fixture"
	"mockgraph/internal/introspect"
	"mockgraph/schema"
	"mockgraph/stub"
)

// testFactory wraps substitutes through the fixture registry and records
// every stubbed accessor.
type testFactory struct {
	registry *schema.Registry
	stubbed  []string
}

func (f *testFactory) Create(t reflect.Type, extra []reflect.Type) (reflect.Value, error) {
	if t.Kind() != reflect.Interface {
		return coerce.Empty(t), nil
	}

	v, ok := f.registry.Wrap(t, stub.New(t, extra...))
	if !ok {
		return reflect.Value{}, diagnostic.Resolution("", "no substitute for %s", t)
	}

	return v, nil
}

func (f *testFactory) StubSequence(instance reflect.Value, accessor introspect.Accessor, values []reflect.Value) error {
	f.stubbed = append(f.stubbed, accessor.Name)

	if accessor.IsField() {
		instance.FieldByIndex(accessor.Index).Set(values[len(values)-1])
		return nil
	}

	s, ok := stub.Of(instance.Interface())
	if !ok {
		return diagnostic.Policy("", "%s is not a substitute", instance.Type())
	}

	returns := make([]any, len(values))
	for i, v := range values {
		if v.IsValid() {
			returns[i] = v.Interface()
		}
	}
	s.Returns(accessor.Name, returns...)

	return nil
}

func newTestBuilder() (*Builder, *testFactory) {
	reg := fixture.Registry()
	f := &testFactory{registry: reg}

	return New(f, introspect.New(), coerce.New(reg, []string{"fixture"}, f), nil), f
}

func buildA(t *testing.T, lines ...string) (fixture.A, *testFactory, error) {
	t.Helper()

	root, err := compile.Compile(reflect.TypeFor[fixture.A](), lines)
	require.NoError(t, err)

	b, f := newTestBuilder()

	v, err := b.Build(root)
	if err != nil {
		return nil, f, err
	}

	return v.Interface().(fixture.A), f, nil
}

func TestBuildNoRootType(t *testing.T) {
	t.Parallel()

	b, _ := newTestBuilder()

	_, err := b.Build(nil)
	require.ErrorIs(t, err, diagnostic.ErrResolution)
}

func TestBuildUndeclaredRoot(t *testing.T) {
	t.Parallel()

	a, f, err := buildA(t)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Empty(t, f.stubbed)
}

func TestBuildPlainGroupsInFirstOccurrenceOrder(t *testing.T) {
	t.Parallel()

	a, f, err := buildA(t,
		"b.c.int = 1",
		"b.e = LONG",
		"b.c.long = 2",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"Int", "Long", "C", "E", "B"}, f.stubbed)
	assert.Equal(t, 1, a.B().C().Int())
	assert.Equal(t, int64(2), a.B().C().Long())
	assert.Equal(t, fixture.KindLong, a.B().E())
}

func TestBuildSequence(t *testing.T) {
	t.Parallel()

	a, _, err := buildA(t,
		"b.c.int = 1",
		"b.c.int = 2",
	)
	require.NoError(t, err)

	// the compiler keeps both values under one accessor
	c := a.B().C()
	assert.Equal(t, 1, c.Int())
	assert.Equal(t, 2, c.Int())
	assert.Equal(t, 2, c.Int())
}

func TestBuildLaterGroupRestubs(t *testing.T) {
	t.Parallel()

	a, f, err := buildA(t,
		"b.c.int = 1",
		"b.c<fixture.C>.int = 2",
	)
	require.NoError(t, err)

	// both groups stub C, the hinted one comes last and wins
	assert.Equal(t, []string{"Int", "C", "Int", "C", "B"}, f.stubbed)
	assert.Equal(t, 2, a.B().C().Int())
	assert.Equal(t, 2, a.B().C().Int())
}

func TestBuildArray(t *testing.T) {
	t.Parallel()

	a, _, err := buildA(t,
		"b.ca[2].int = 5",
		"b.ca[0].int = 3",
	)
	require.NoError(t, err)

	ca := a.B().Ca()
	assert.Equal(t, 3, ca[0].Int())
	assert.Nil(t, ca[1])
	assert.Equal(t, 5, ca[2].Int())
	assert.Nil(t, ca[3])
}

func TestBuildArrayOutOfRange(t *testing.T) {
	t.Parallel()

	_, _, err := buildA(t, "b.ca[4].int = 5")
	require.ErrorIs(t, err, diagnostic.ErrGrammar)

	e, ok := diagnostic.As(err)
	require.True(t, ok)
	assert.Equal(t, "A.b.ca[4]", e.Path)
}

func TestBuildListGrows(t *testing.T) {
	t.Parallel()

	a, _, err := buildA(t, "b.cl[2]<C>.int = 7")
	require.NoError(t, err)

	cl := a.B().Cl()
	require.Len(t, cl, 3)
	assert.Nil(t, cl[0])
	assert.Nil(t, cl[1])
	assert.Equal(t, 7, cl[2].Int())
}

func TestBuildListNeedsHint(t *testing.T) {
	t.Parallel()

	_, _, err := buildA(t, "b.cl[0].int = 7")
	require.ErrorIs(t, err, diagnostic.ErrPolicy)
	assert.Contains(t, err.Error(), "cl[0]<Type>")
}

func TestBuildListBadIndex(t *testing.T) {
	t.Parallel()

	_, _, err := buildA(t, "b.cl[x]<C>.int = 7")
	require.ErrorIs(t, err, diagnostic.ErrGrammar)
}

func TestBuildMap(t *testing.T) {
	t.Parallel()

	a, _, err := buildA(t,
		"b.cmap[one]<C>.int = 1",
		"b.cmapLong[9<int64>]<C>.int = 9",
	)
	require.NoError(t, err)

	assert.Equal(t, 1, a.B().Cmap()["one"].Int())
	assert.Equal(t, 9, a.B().CmapLong()[9].Int())
}

func TestBuildMapNeedsHint(t *testing.T) {
	t.Parallel()

	_, _, err := buildA(t, "b.cmap[one].int = 1")
	require.ErrorIs(t, err, diagnostic.ErrPolicy)
}

func TestBuildStructField(t *testing.T) {
	t.Parallel()

	a, _, err := buildA(t,
		"b.origin.x = 3",
		"b.origin.label = here",
	)
	require.NoError(t, err)

	assert.Equal(t, fixture.Point{X: 3, Label: "here"}, a.B().Origin())
}

func TestBuildStructFieldSequence(t *testing.T) {
	t.Parallel()

	_, _, err := buildA(t,
		"b.origin.x = 3",
		"b.origin.x = 4",
	)
	require.ErrorIs(t, err, diagnostic.ErrPolicy)
}

func TestBuildUnknownAccessor(t *testing.T) {
	t.Parallel()

	_, _, err := buildA(t, "b.c.intt = 1")
	require.ErrorIs(t, err, diagnostic.ErrResolution)

	e, ok := diagnostic.As(err)
	require.True(t, ok)
	assert.Equal(t, "A.b.c.intt", e.Path)
	assert.Contains(t, e.Suggestions, "Int")
}

func TestBuildUnknownHint(t *testing.T) {
	t.Parallel()

	_, _, err := buildA(t, "b.cl[0]<Nope>.int = 1")
	require.ErrorIs(t, err, diagnostic.ErrResolution)
}

func TestGroupByName(t *testing.T) {
	t.Parallel()

	root, err := compile.Compile(reflect.TypeFor[fixture.A](), []string{
		"b.c.int = 1",
		"b.c.long = 2",
		"b.c.int = 3",
	})
	require.NoError(t, err)

	c := root.Children[0].Children[0]
	groups := groupByName(c.Children)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
	assert.Equal(t, "int", groups[0][0].Name)
	assert.Len(t, groups[1], 1)
}
