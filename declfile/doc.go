// Package declfile reads and writes YAML declaration files.
//
// A declaration file keeps the declarations of one root type outside of Go
// code: a list of defaults shared by every case, and named sets that extend
// or override them.
//
// # Schema Overview
//
//	version: "1"
//	root: fixture.A
//	defaults:
//	  - b.c.int = 456
//	  - b.c.string = hello
//	sets:
//	  reset:
//	    - b.c = *
//	  sequence:
//	    - b.c.int = 1
//	    - b.c.int = 2
//
// # Declaration Lists
//
// Lists returns the defaults followed by one set. Compiling the lists in
// that order lets a set reset or extend anything the defaults declared:
//
//	f, _ := declfile.Load("a.yaml")
//	lists, _ := f.Lists("reset")
//	root, _ := builder.Compile(t, lists)
package declfile
