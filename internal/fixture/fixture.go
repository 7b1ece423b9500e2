// Package fixture holds a small graph of interfaces with their substitute
// wrappers, shared by the tests of the builder, the verifier and the CLI.
package fixture

import (
	"math/big"
	"net/netip"
	"reflect"
	"time"

	"mockgraph/schema"
	"mockgraph/stub"
)

type Kind int

const (
	KindInt Kind = iota + 1
	KindLong
	KindByte
	KindDouble
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "INT"
	case KindLong:
		return "LONG"
	case KindByte:
		return "BYTE"
	case KindDouble:
		return "DOUBLE"
	default:
		return "UNKNOWN"
	}
}

// Point is a plain struct, built by setting fields.
type Point struct {
	X     int `json:"x"`
	Y     int `mock:"why"`
	Label string
}

type Named interface {
	Name() string
}

type Shape interface {
	ComponentType() Shape
	Kind() Kind
}

type A interface {
	B() B
	Ats() [3]Shape
}

type B interface {
	C() C
	Ca() [4]C
	Cl() []C
	Cs() []C
	Cmap() map[string]C
	CmapLong() map[int64]C
	CmapAny() map[any]C
	E() Kind
	Names() []string
	Origin() Point
	Where() *Point
}

type C interface {
	Byte() byte
	ByteO() *byte
	Short() int16
	ShortO() *int16
	Int() int
	IntO() *int
	SetInt(int)
	Long() int64
	LongO() *int64
	SetLong(int64)
	Float() float32
	FloatO() *float32
	Double() float64
	DoubleO() *float64
	Char() rune
	CharO() *rune
	SetChar(rune)
	String() string
	SetString(string)
	O() any
	Bool() bool
	When() time.Time
	Wait() time.Duration
	Amount() *big.Int
	Addr() netip.Addr
}

// aSub also implements Named, which is only stubbable when Named is passed
// as an extra capability.
type aSub struct{ *stub.Substitute }

func (a aSub) B() B           { return stub.Return[B](a.Substitute, "B") }
func (a aSub) Ats() [3]Shape  { return stub.Return[[3]Shape](a.Substitute, "Ats") }
func (a aSub) Name() string   { return stub.Return[string](a.Substitute, "Name") }
func (a aSub) String() string { return a.Substitute.String() }

type bSub struct{ *stub.Substitute }

func (b bSub) C() C                  { return stub.Return[C](b.Substitute, "C") }
func (b bSub) Ca() [4]C              { return stub.Return[[4]C](b.Substitute, "Ca") }
func (b bSub) Cl() []C               { return stub.Return[[]C](b.Substitute, "Cl") }
func (b bSub) Cs() []C               { return stub.Return[[]C](b.Substitute, "Cs") }
func (b bSub) Cmap() map[string]C    { return stub.Return[map[string]C](b.Substitute, "Cmap") }
func (b bSub) CmapLong() map[int64]C { return stub.Return[map[int64]C](b.Substitute, "CmapLong") }
func (b bSub) CmapAny() map[any]C    { return stub.Return[map[any]C](b.Substitute, "CmapAny") }
func (b bSub) E() Kind               { return stub.Return[Kind](b.Substitute, "E") }
func (b bSub) Names() []string       { return stub.Return[[]string](b.Substitute, "Names") }
func (b bSub) Origin() Point         { return stub.Return[Point](b.Substitute, "Origin") }
func (b bSub) Where() *Point         { return stub.Return[*Point](b.Substitute, "Where") }

type cSub struct{ *stub.Substitute }

func (c cSub) Byte() byte          { return stub.Return[byte](c.Substitute, "Byte") }
func (c cSub) ByteO() *byte        { return stub.Return[*byte](c.Substitute, "ByteO") }
func (c cSub) Short() int16        { return stub.Return[int16](c.Substitute, "Short") }
func (c cSub) ShortO() *int16      { return stub.Return[*int16](c.Substitute, "ShortO") }
func (c cSub) Int() int            { return stub.Return[int](c.Substitute, "Int") }
func (c cSub) IntO() *int          { return stub.Return[*int](c.Substitute, "IntO") }
func (c cSub) SetInt(v int)        { c.Record("SetInt", v) }
func (c cSub) Long() int64         { return stub.Return[int64](c.Substitute, "Long") }
func (c cSub) LongO() *int64       { return stub.Return[*int64](c.Substitute, "LongO") }
func (c cSub) SetLong(v int64)     { c.Record("SetLong", v) }
func (c cSub) Float() float32      { return stub.Return[float32](c.Substitute, "Float") }
func (c cSub) FloatO() *float32    { return stub.Return[*float32](c.Substitute, "FloatO") }
func (c cSub) Double() float64     { return stub.Return[float64](c.Substitute, "Double") }
func (c cSub) DoubleO() *float64   { return stub.Return[*float64](c.Substitute, "DoubleO") }
func (c cSub) Char() rune          { return stub.Return[rune](c.Substitute, "Char") }
func (c cSub) CharO() *rune        { return stub.Return[*rune](c.Substitute, "CharO") }
func (c cSub) SetChar(v rune)      { c.Record("SetChar", v) }
func (c cSub) String() string      { return stub.Return[string](c.Substitute, "String") }
func (c cSub) SetString(v string)  { c.Record("SetString", v) }
func (c cSub) O() any              { return c.Get("O") }
func (c cSub) Bool() bool          { return stub.Return[bool](c.Substitute, "Bool") }
func (c cSub) When() time.Time     { return stub.Return[time.Time](c.Substitute, "When") }
func (c cSub) Wait() time.Duration { return stub.Return[time.Duration](c.Substitute, "Wait") }
func (c cSub) Amount() *big.Int    { return stub.Return[*big.Int](c.Substitute, "Amount") }
func (c cSub) Addr() netip.Addr    { return stub.Return[netip.Addr](c.Substitute, "Addr") }

type shapeSub struct{ *stub.Substitute }

func (s shapeSub) ComponentType() Shape { return stub.Return[Shape](s.Substitute, "ComponentType") }
func (s shapeSub) Kind() Kind           { return stub.Return[Kind](s.Substitute, "Kind") }

type namedSub struct{ *stub.Substitute }

func (n namedSub) Name() string { return stub.Return[string](n.Substitute, "Name") }

// NewA, NewB, NewC and NewShape wrap substitutes created by hand.
func NewA(s *stub.Substitute) A         { return aSub{s} }
func NewB(s *stub.Substitute) B         { return bSub{s} }
func NewC(s *stub.Substitute) C         { return cSub{s} }
func NewShape(s *stub.Substitute) Shape { return shapeSub{s} }

// Register adds every fixture type to r.
func Register(r *schema.Registry) error {
	if err := schema.Substitute(r, NewA); err != nil {
		return err
	}
	if err := schema.Substitute(r, NewB); err != nil {
		return err
	}
	if err := schema.Substitute(r, NewC); err != nil {
		return err
	}
	if err := schema.Substitute(r, NewShape, "ArrayType"); err != nil {
		return err
	}
	if err := schema.Substitute(r, func(s *stub.Substitute) Named { return namedSub{s} }); err != nil {
		return err
	}
	if err := schema.Enum(r, KindInt, KindLong, KindByte, KindDouble); err != nil {
		return err
	}

	return r.Register(reflect.TypeFor[Point]())
}

// Registry returns a registry with the fixture types, it panics on failure.
func Registry() *schema.Registry {
	r := schema.New()
	if err := Register(r); err != nil {
		panic(err)
	}

	return r
}
