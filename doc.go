// Package mockgraph builds deep graphs of test doubles from flat lists of
// path declarations.
//
// A declaration names a path below the root type and, optionally, the value
// its last accessor returns:
//
//	b.c.int = 456              A.B().C().Int() returns 456
//	b.c.char = A               repeating a path stubs the next call:
//	b.c.char = B               Char() returns 'A', then 'B' forever
//	b.c = *                    later calls of C() return a fresh substitute
//	b.cl[0]<C>.byte = 6        slice and map elements need a type hint
//	b.cmapLong[7<int64>]<C>    a map key may carry its own type hint
//	b.c.o = <fixture.A>        a hint on the value builds an empty A
//
// Interfaces are stood in for by stub.Substitute through wrappers registered
// in a schema.Registry; structs are built by setting their fields.
//
//	reg := schema.New()
//	_ = schema.Substitute(reg, newASub)
//
//	b := mockgraph.New(reg, options.WithNamespaces("fixture"))
//	a, err := mockgraph.Build[A](b, []string{"b.c.int = 456"})
//
// Verify walks the same declarations over an existing graph, comparing
// accessor results (Getters) or looking for recorded mutator calls (Setters).
package mockgraph
