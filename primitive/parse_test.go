package primitive_test

import (
	"mockgraph/primitive"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Weight float64

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		typ     reflect.Type
		literal string
		want    any
	}{
		{"int", reflect.TypeFor[int](), "1111", 1111},
		{"negative int8", reflect.TypeFor[int8](), "-12", int8(-12)},
		{"int16", reflect.TypeFor[int16](), "111", int16(111)},
		{"int64", reflect.TypeFor[int64](), "11111", int64(11111)},
		{"byte", reflect.TypeFor[byte](), "11", byte(11)},
		{"uint32", reflect.TypeFor[uint32](), "7", uint32(7)},
		{"float32", reflect.TypeFor[float32](), "2.2", float32(2.2)},
		{"float64", reflect.TypeFor[float64](), "22.22", 22.22},
		{"named float", reflect.TypeFor[Weight](), "1.5", Weight(1.5)},
		{"bool", reflect.TypeFor[bool](), "true", true},
		{"string", reflect.TypeFor[string](), "yo", "yo"},
		{"rune", reflect.TypeFor[rune](), "X", 'X'},
		{"empty rune is space", reflect.TypeFor[rune](), "", ' '},
		{"rune code point", reflect.TypeFor[rune](), "0x41", 'A'},
		{"duration", reflect.TypeFor[time.Duration](), "2h45m", 2*time.Hour + 45*time.Minute},
		{"instant", reflect.TypeFor[time.Time](), "1000", time.UnixMilli(1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := primitive.Parse(tt.typ, tt.literal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Interface())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := primitive.Parse(reflect.TypeFor[int](), "abc")
	assert.Error(t, err)

	_, err = primitive.Parse(reflect.TypeFor[int8](), "300")
	assert.Error(t, err, "out of range for int8")

	_, err = primitive.Parse(reflect.TypeFor[rune](), "AB")
	assert.Error(t, err)

	_, err = primitive.Parse(reflect.TypeFor[struct{}](), "x")
	assert.ErrorIs(t, err, primitive.ErrNotPrimitive)
}
