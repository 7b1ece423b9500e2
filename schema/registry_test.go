package schema_test

import (
	"math/big"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockgraph/schema"
	"mockgraph/stub"
)

type Shape interface{ Area() float64 }

type shapeSub struct{ *stub.Substitute }

func (s shapeSub) Area() float64 { return stub.Return[float64](s.Substitute, "Area") }

type Point struct{ X, Y int }

type Color int

const (
	Red Color = iota + 1
	Green
)

func (c Color) String() string {
	switch c {
	case Red:
		return "RED"
	case Green:
		return "GREEN"
	default:
		return "UNKNOWN"
	}
}

type Celsius float64

func parseCelsius(s string) (Celsius, error) {
	d, err := time.ParseDuration(s)
	return Celsius(d.Seconds()), err
}

func newRegistry(t *testing.T) *schema.Registry {
	t.Helper()

	r := schema.New()
	require.NoError(t, schema.Substitute(r, func(s *stub.Substitute) Shape { return shapeSub{s} }))
	require.NoError(t, r.Register(reflect.TypeFor[Point](), "Pt"))
	require.NoError(t, schema.Enum(r, Red, Green))
	require.NoError(t, r.RegisterConverter(parseCelsius))

	return r
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r := newRegistry(t)
	ns := []string{"schema_test"}

	tests := []struct {
		name string
		want reflect.Type
	}{
		{"int", reflect.TypeFor[int]()},
		{"int64", reflect.TypeFor[int64]()},
		{"string", reflect.TypeFor[string]()},
		{"any", reflect.TypeFor[any]()},
		{"Time", reflect.TypeFor[time.Time]()},
		{"time.Duration", reflect.TypeFor[time.Duration]()},
		{"Int", reflect.TypeFor[*big.Int]()},
		{"big.Int", reflect.TypeFor[*big.Int]()},
		{"url.URL", reflect.TypeFor[*url.URL]()},
		{"UUID", reflect.TypeFor[uuid.UUID]()},
		{"Shape", reflect.TypeFor[Shape]()},
		{"schema_test.Shape", reflect.TypeFor[Shape]()},
		{"Pt", reflect.TypeFor[Point]()},
		{"*Point", reflect.TypeFor[*Point]()},
		{"[]Shape", reflect.TypeFor[[]Shape]()},
		{"[3]Shape", reflect.TypeFor[[3]Shape]()},
		{"map[string]Shape", reflect.TypeFor[map[string]Shape]()},
		{"map[int64][]Point", reflect.TypeFor[map[int64][]Point]()},
		{"map[[2]int]bool", reflect.TypeFor[map[[2]int]bool]()},
		{"Color", reflect.TypeFor[Color]()},
		{"Celsius", reflect.TypeFor[Celsius]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.name, ns)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFailures(t *testing.T) {
	t.Parallel()

	r := newRegistry(t)

	for _, name := range []string{"Shape", "Nope", "map[]int", "map[string]", "[x]int", "[3", "map[[]int]bool"} {
		_, ok := r.Resolve(name, nil)
		assert.False(t, ok, name)
	}
}

func TestRegisterConflicts(t *testing.T) {
	t.Parallel()

	r := newRegistry(t)

	require.NoError(t, r.Register(reflect.TypeFor[Point]()))
	err := r.Register(reflect.TypeFor[Celsius](), "Pt")
	require.ErrorIs(t, err, schema.ErrTypeAlreadyExists)

	err = schema.Substitute(r, func(s *stub.Substitute) Point { return Point{} })
	require.ErrorIs(t, err, schema.ErrNotAnInterface)

	err = schema.Enum(r, 1, 2)
	require.ErrorIs(t, err, schema.ErrNotAnEnum)
}

func TestWrap(t *testing.T) {
	t.Parallel()

	r := newRegistry(t)
	shape := reflect.TypeFor[Shape]()

	s := stub.New(shape)
	s.Returns("Area", 2.5)

	v, ok := r.Wrap(shape, s)
	require.True(t, ok)
	assert.InDelta(t, 2.5, v.Interface().(Shape).Area(), 1e-9)

	_, ok = r.Wrap(reflect.TypeFor[Point](), s)
	assert.False(t, ok)
}

func TestEnums(t *testing.T) {
	t.Parallel()

	r := newRegistry(t)
	color := reflect.TypeFor[Color]()

	assert.True(t, r.IsEnum(color))
	assert.False(t, r.IsEnum(reflect.TypeFor[int]()))

	v, ok := r.EnumValue(color, "GREEN")
	require.True(t, ok)
	assert.Equal(t, Green, v.Interface())

	_, ok = r.EnumValue(color, "BLUE")
	assert.False(t, ok)

	assert.Equal(t, []string{"GREEN", "RED"}, r.EnumNames(color))
}

func TestConverters(t *testing.T) {
	t.Parallel()

	r := newRegistry(t)

	conv, ok := r.ConverterOf(reflect.TypeFor[Celsius]())
	require.True(t, ok)

	v, err := conv.Convert("1m")
	require.NoError(t, err)
	assert.Equal(t, Celsius(60), v.Interface())

	conv, ok = r.ConverterOf(reflect.TypeFor[*url.URL]())
	require.True(t, ok)

	v, err = conv.Convert("https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "/a", v.Interface().(*url.URL).Path)

	conv, ok = r.ConverterOf(reflect.TypeFor[uuid.UUID]())
	require.True(t, ok)
	assert.Equal(t, "uuid", conv.PackageAlias)

	v, err = conv.Convert("0b6c7a4e-2f1d-4c3b-9a8e-5d4c3b2a1f0e")
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("0b6c7a4e-2f1d-4c3b-9a8e-5d4c3b2a1f0e"), v.Interface())

	_, err = conv.Convert("not-a-uuid")
	require.Error(t, err)
}

func TestQualifiedName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "schema_test.Point", schema.QualifiedName(reflect.TypeFor[Point]()))
	assert.Equal(t, "schema_test.Point", schema.QualifiedName(reflect.TypeFor[*Point]()))
	assert.Equal(t, "big.Int", schema.QualifiedName(reflect.TypeFor[*big.Int]()))
	assert.Equal(t, "int", schema.QualifiedName(reflect.TypeFor[int]()))
}

func TestNames(t *testing.T) {
	t.Parallel()

	names := newRegistry(t).Names()
	assert.Contains(t, names, "schema_test.Shape")
	assert.Contains(t, names, "Pt")
	assert.IsIncreasing(t, names)
}
