package pathdoc

import (
	"strconv"
	"strings"
)

//go-sumtype:decl Segment

// Segment is one step of a Path: either a Field or an Index.
type Segment interface {
	isSegment()
	String() string
}

// Field selects a key of an object.
type Field string

// Index selects an element of an array. It is written as "[N]".
type Index int

func (Field) isSegment() {}
func (Index) isSegment() {}

func (f Field) String() string {
	return string(f)
}

func (i Index) String() string {
	return "[" + strconv.Itoa(int(i)) + "]"
}

// Path is a parsed path expression such as "entities.media.[0].media_url_https".
type Path []Segment

// ParsePath splits a path on "." and recognizes "[N]" segments as array
// indices. There is no escaping, so field names can't contain ".", "[" or
// "]". Malformed paths are rejected before any traversal happens.
func ParsePath(path string) (Path, error) {
	if path == "" {
		return nil, &PathError{Op: "parse", Path: path, Pos: -1, Err: ErrMalformedPath}
	}

	parts := strings.Split(path, ".")
	result := make(Path, 0, len(parts))
	for pos, part := range parts {
		seg, ok := parseSegment(part)
		if !ok {
			return nil, &PathError{Op: "parse", Path: path, Pos: pos, Segment: part, Err: ErrMalformedPath}
		}
		result = append(result, seg)
	}

	return result, nil
}

// MustParsePath is like ParsePath but panics on malformed input.
func MustParsePath(path string) Path {
	p, err := ParsePath(path)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSegment(part string) (Segment, bool) {
	if part == "" {
		return nil, false
	}

	if !strings.ContainsAny(part, "[]") {
		return Field(part), true
	}

	if len(part) < 3 || part[0] != '[' || part[len(part)-1] != ']' {
		return nil, false
	}

	digits := part[1 : len(part)-1]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, false
		}
	}

	idx, err := strconv.Atoi(digits)
	if err != nil {
		return nil, false
	}

	return Index(idx), true
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.String()
	}
	return strings.Join(parts, ".")
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Last returns the terminal segment, or nil for an empty path.
func (p Path) Last() Segment {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Append returns a new path; p itself is never modified.
func (p Path) Append(segs ...Segment) Path {
	result := make(Path, 0, len(p)+len(segs))
	result = append(result, p...)
	return append(result, segs...)
}
