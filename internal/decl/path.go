package decl

import (
	"strings"

	"mockgraph/internal/diagnostic"
	"mockgraph/utils"
)

// Declaration is one parsed "path [= value]" line.
type Declaration struct {
	// Raw is the line as written.
	Raw string
	// Segments of the path, root first.
	Segments []Segment
	// Value is the trimmed text after the first '=', nil without '='.
	Value *string
}

// Segment is one "name[index]<hint>" element of a path.
type Segment struct {
	// Raw is the segment as written, it is what canonical keys are made of.
	Raw   string
	Name  string
	Index string
	Hint  string
}

// HasIndex reports whether the segment addresses an element of a container.
func (s Segment) HasIndex() bool { return s.Index != "" }

// Parse parses a declaration line.
// Supports: "b.c.int = 5", "b.c = *", "b.cl[0]<C>.byte = 6", "b.cmap[6<int64>]<C>", "b.c.doubleO".
func Parse(line string) (Declaration, error) {
	parts := strings.SplitN(line, "=", 2)
	path, value := utils.Unpack2(parts)
	path = strings.TrimSpace(path)

	d := Declaration{Raw: line}
	if len(parts) == 2 {
		value = strings.TrimSpace(value)
		d.Value = &value
	}

	if path == "" {
		return Declaration{}, diagnostic.Grammar(line, "empty path")
	}

	raws, err := SplitPath(path)
	if err != nil {
		return Declaration{}, atLine(err, line)
	}

	for _, raw := range raws {
		seg, err := ParseSegment(raw)
		if err != nil {
			return Declaration{}, atLine(err, line)
		}

		d.Segments = append(d.Segments, seg)
	}

	return d, nil
}

func atLine(err error, line string) error {
	if e, ok := diagnostic.As(err); ok {
		return e.At(line)
	}

	return diagnostic.Grammar(line, "%v", err)
}

// ParseAll parses the lines in order and stops at the first malformed one.
func ParseAll(lines []string) ([]Declaration, error) {
	result := make([]Declaration, 0, len(lines))

	for _, line := range lines {
		d, err := Parse(line)
		if err != nil {
			return nil, err
		}

		result = append(result, d)
	}

	return result, nil
}

// SplitPath splits a path on '.' separators. Dots inside a "<hint>" or an
// "[index]" belong to that span and do not separate segments.
func SplitPath(path string) ([]string, error) {
	var (
		segments []string
		angle    int
		square   int
		start    int
	)

	for i, r := range path {
		switch r {
		case '<':
			angle++
		case '>':
			angle--
		case '[':
			square++
		case ']':
			square--
		case '.':
			if angle == 0 && square == 0 {
				segments = append(segments, path[start:i])
				start = i + 1
			}
		}

		if angle < 0 || square < 0 {
			return nil, diagnostic.Grammar(path, "unbalanced %q at offset %d", r, i)
		}
	}

	if angle != 0 || square != 0 {
		return nil, diagnostic.Grammar(path, "unterminated hint or index")
	}

	segments = append(segments, path[start:])

	for _, seg := range segments {
		if seg == "" {
			return nil, diagnostic.Grammar(path, "empty segment")
		}
	}

	return segments, nil
}

// ParseSegment parses "name", "name[index]", "name<hint>" or "name[index]<hint>".
func ParseSegment(raw string) (Segment, error) {
	seg := Segment{Raw: raw, Name: raw}

	rest := ""
	if i := strings.IndexAny(raw, "[<"); i >= 0 {
		seg.Name, rest = raw[:i], raw[i:]
	}

	if !isValidIdent(seg.Name) {
		return Segment{}, diagnostic.Grammar(raw, "invalid identifier %q", seg.Name)
	}

	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Segment{}, diagnostic.Grammar(raw, "unterminated index")
		}

		seg.Index = strings.TrimSpace(rest[1:end])
		if seg.Index == "" {
			return Segment{}, diagnostic.Grammar(raw, "empty index")
		}

		rest = rest[end+1:]
	}

	if strings.HasPrefix(rest, "<") {
		if !strings.HasSuffix(rest, ">") {
			return Segment{}, diagnostic.Grammar(raw, "unterminated hint")
		}

		seg.Hint = strings.TrimSpace(rest[1 : len(rest)-1])
		if seg.Hint == "" {
			return Segment{}, diagnostic.Grammar(raw, "empty hint")
		}

		rest = ""
	}

	if rest != "" {
		return Segment{}, diagnostic.Grammar(raw, "unexpected %q after segment", rest)
	}

	return seg, nil
}

// SplitHint separates a trailing "<Type>" from a literal or a map key:
// "1234<big.Int>" gives "1234", "big.Int". Literals without a hint are
// returned unchanged with ok false.
func SplitHint(literal string) (body, hint string, ok bool) {
	if !strings.HasSuffix(literal, ">") {
		return literal, "", false
	}

	open := strings.LastIndexByte(literal, '<')
	if open < 0 {
		return literal, "", false
	}

	hint = strings.TrimSpace(literal[open+1 : len(literal)-1])
	if hint == "" {
		return literal, "", false
	}

	return literal[:open], hint, true
}

// isValidIdent checks if a string is a valid Go identifier.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			// First character must be letter or underscore
			if !isLetter(r) && r != '_' {
				return false
			}
		} else {
			// Subsequent characters can be letter, digit, or underscore
			if !isLetter(r) && !isDigit(r) && r != '_' {
				return false
			}
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
