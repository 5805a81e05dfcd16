package pathdoc

import "fmt"

// EnsurePath makes sure that every container along path exists, creating
// the missing ones. The kind of each intermediate container follows from
// the segment after it: an Index needs an array, a Field needs an object.
// leaf is the kind of the container at the end of the path and must be
// KindObject or KindArray.
//
// A missing array element can only be created by appending, so its index
// must equal the current length. Existing nodes of the wrong kind are an
// ErrTypeMismatch. The path is checked completely before anything is
// created, so a failure leaves the tree untouched.
func (doc *Document) EnsurePath(path string, leaf Kind) error {
	err := doc.ensurePath(path, leaf)
	if err != nil {
		doc.report(err)
	}
	return err
}

func (doc *Document) ensurePath(path string, leaf Kind) error {
	p, err := doc.parse("ensure", path)
	if err != nil {
		return err
	}

	if leaf != KindObject && leaf != KindArray {
		return &PathError{Op: "ensure", Path: path, Pos: -1, Err: fmt.Errorf("%w: leaf kind %v", ErrUnsupportedValue, leaf)}
	}

	kinds := containerKinds(p, leaf)

	// Walk the part that exists, remembering how to replace the current node
	// in case an append has to grow it.
	node := doc.root
	replace := func(value interface{}) { doc.root = value }
	pos := 0
	for ; pos < len(p); pos++ {
		child, err := step(node, p[pos])
		if err == ErrSegmentNotFound || err == ErrIndexOutOfRange {
			break
		}
		if err != nil {
			return doc.fail("ensure", path, p, pos, err)
		}
		if KindOf(child) != kinds[pos] {
			return doc.fail("ensure", path, p, pos, ErrTypeMismatch)
		}
		replace = slot(node, p[pos])
		node = child
	}

	if pos == len(p) {
		return nil
	}

	// Everything from pos on is new. The first new node must be appendable
	// into an existing array, and every later index lands in a fresh array.
	if idx, ok := p[pos].(Index); ok && int(idx) != len(node.([]interface{})) {
		return doc.fail("ensure", path, p, pos, ErrIndexOutOfRange)
	}
	for i := pos + 1; i < len(p); i++ {
		if idx, ok := p[i].(Index); ok && idx != 0 {
			return doc.fail("ensure", path, p, i, ErrIndexOutOfRange)
		}
	}

	var sub interface{} = newContainer(kinds[len(p)-1])
	for i := len(p) - 1; i > pos; i-- {
		sub = attach(newContainer(kinds[i-1]), p[i], sub)
	}

	switch seg := p[pos].(type) {
	case Field:
		node.(*Object).Set(string(seg), sub)
	case Index:
		replace(append(node.([]interface{}), sub))
	}

	return nil
}

// containerKinds returns the kind of container every segment must address.
func containerKinds(p Path, leaf Kind) []Kind {
	kinds := make([]Kind, len(p))
	for i := range p {
		if i == len(p)-1 {
			kinds[i] = leaf
			continue
		}
		if _, ok := p[i+1].(Index); ok {
			kinds[i] = KindArray
		} else {
			kinds[i] = KindObject
		}
	}
	return kinds
}

func newContainer(kind Kind) interface{} {
	if kind == KindArray {
		return []interface{}{}
	}
	return NewObject()
}

// attach puts value into a freshly created container and returns the
// container, which for arrays is a new slice header.
func attach(container interface{}, seg Segment, value interface{}) interface{} {
	switch seg := seg.(type) {
	case Field:
		obj := container.(*Object)
		obj.Set(string(seg), value)
		return obj
	case Index:
		return append(container.([]interface{}), value)
	}
	panic(fmt.Errorf("unknown segment: %#v", seg))
}

// slot returns a function that overwrites the child seg of container.
func slot(container interface{}, seg Segment) func(interface{}) {
	switch seg := seg.(type) {
	case Field:
		obj := container.(*Object)
		return func(value interface{}) { obj.Set(string(seg), value) }
	case Index:
		arr := container.([]interface{})
		return func(value interface{}) { arr[seg] = value }
	}
	panic(fmt.Errorf("unknown segment: %#v", seg))
}
