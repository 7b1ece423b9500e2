package introspect

import (
	"reflect"
	"strings"

	"mockgraph/internal/match"
)

type FieldMatch struct {
	Field reflect.StructField
	Found bool
}

// matchField tries: `mock:"prop"` tag, json tag, exact name, then the name
// ignoring case and separators, so "unit_price" finds UnitPrice.
func matchField(t reflect.Type, property string) FieldMatch {
	fields := settableFields(t)

	// 1) mock tag
	for _, f := range fields {
		if tag := f.Tag.Get("mock"); tag != "" && tag == property {
			return FieldMatch{Field: f, Found: true}
		}
	}

	// 2) json tag
	for _, f := range fields {
		if jsonTagName(f) == property {
			return FieldMatch{Field: f, Found: true}
		}
	}

	// 3) exact name, first letter raised
	upper := exported(property)
	for _, f := range fields {
		if f.Name == upper {
			return FieldMatch{Field: f, Found: true}
		}
	}

	// 4) normalized
	norm := match.NormalizeIdent(property)
	for _, f := range fields {
		if match.NormalizeIdent(f.Name) == norm {
			return FieldMatch{Field: f, Found: true}
		}
	}

	return FieldMatch{}
}

// settableFields lists the exported fields of the struct t, promoted fields
// of embedded structs included.
func settableFields(t reflect.Type) []reflect.StructField {
	var out []reflect.StructField

	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}

		out = append(out, f)
	}

	return out
}

func jsonTagName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	// trim options
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}
