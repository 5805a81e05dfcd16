package pathdoc

import "fmt"

// Document owns a single JSON tree and addresses it with path strings.
//
// A Document is not safe for concurrent use. Callers that populate fields
// from other goroutines must hand the write back to the owning goroutine or
// guard the document with their own mutex.
type Document struct {
	root    interface{}
	options *Options
}

// New creates a document with the default options.
func New(root interface{}) (*Document, error) {
	return DefaultOptions.New(root)
}

// Parse creates a document from JSON text with the default options.
func Parse(data []byte) (*Document, error) {
	return DefaultOptions.Parse(data)
}

func (options Options) New(root interface{}) (*Document, error) {
	doc := &Document{options: &options}
	err := doc.Reset(root)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (options Options) Parse(data []byte) (*Document, error) {
	root, err := ParseValue(data)
	if err != nil {
		return nil, err
	}
	return &Document{root: root, options: &options}, nil
}

func (doc *Document) opts() *Options {
	if doc.options == nil {
		doc.options = &Options{}
	}
	return doc.options
}

// Root returns the live root value. Changes to it are changes to the document.
func (doc *Document) Root() interface{} {
	return doc.root
}

// Reset replaces the whole tree.
func (doc *Document) Reset(root interface{}) error {
	value, err := doc.opts().normalize(root)
	if err != nil {
		return err
	}
	doc.root = value
	return nil
}

// Load replaces the tree with parsed JSON text. If the text does not parse
// the current tree is kept.
func (doc *Document) Load(data []byte) error {
	root, err := ParseValue(data)
	if err != nil {
		return err
	}
	doc.root = root
	return nil
}

// Clone returns an independent deep copy sharing the same options.
func (doc *Document) Clone() *Document {
	return &Document{root: Clone(doc.root), options: doc.opts()}
}

// step descends one segment from node.
func step(node interface{}, seg Segment) (interface{}, error) {
	switch seg := seg.(type) {
	case Field:
		obj, ok := node.(*Object)
		if !ok || obj == nil {
			return nil, ErrTypeMismatch
		}
		value, ok := obj.Get(string(seg))
		if !ok {
			return nil, ErrSegmentNotFound
		}
		return value, nil
	case Index:
		arr, ok := node.([]interface{})
		if !ok {
			return nil, ErrTypeMismatch
		}
		if int(seg) >= len(arr) {
			return nil, ErrIndexOutOfRange
		}
		return arr[seg], nil
	}

	panic(fmt.Errorf("unknown segment: %#v", seg))
}

// resolve walks p from node and returns the value it ends on. On failure it
// returns the position of the segment that could not be resolved.
func resolve(node interface{}, p Path) (interface{}, int, error) {
	for pos, seg := range p {
		child, err := step(node, seg)
		if err != nil {
			return nil, pos, err
		}
		node = child
	}
	return node, -1, nil
}

func (doc *Document) fail(op, path string, p Path, pos int, err error) error {
	pathErr := &PathError{Op: op, Path: path, Pos: pos, Err: err}
	if pos >= 0 && pos < len(p) {
		pathErr.Segment = p[pos].String()
	}
	return pathErr
}

func (doc *Document) report(err error) {
	if pathErr, ok := err.(*PathError); ok {
		doc.opts().log().Warn("document "+pathErr.Op+" failed",
			"op", pathErr.Op,
			"path", pathErr.Path,
			"segment", pathErr.Segment,
			"error", pathErr.Err,
		)
		return
	}
	doc.opts().log().Warn("document operation failed", "error", err)
}

func (doc *Document) parse(op, path string) (Path, error) {
	p, err := ParsePath(path)
	if err != nil {
		pathErr := err.(*PathError)
		pathErr.Op = op
		return nil, pathErr
	}
	return p, nil
}

// Lookup returns the value at path, or a *PathError explaining why there is
// none.
func (doc *Document) Lookup(path string) (interface{}, error) {
	p, err := doc.parse("get", path)
	if err != nil {
		return nil, err
	}
	value, pos, err := resolve(doc.root, p)
	if err != nil {
		return nil, doc.fail("get", path, p, pos, err)
	}
	return value, nil
}

// Get returns the value at path. A path that does not resolve yields nil,
// the same as a present null; the failure is logged and never returned.
// Use Lookup to tell the two apart.
func (doc *Document) Get(path string) interface{} {
	value, err := doc.Lookup(path)
	if err != nil {
		doc.report(err)
		return nil
	}
	return value
}

// Has reports whether every segment of path exists. A field holding null
// counts as present. Failures before the last segment are logged.
func (doc *Document) Has(path string) bool {
	p, err := doc.parse("has", path)
	if err != nil {
		doc.report(err)
		return false
	}
	_, pos, err := resolve(doc.root, p)
	if err != nil {
		if pos < len(p)-1 {
			doc.report(doc.fail("has", path, p, pos, err))
		}
		return false
	}
	return true
}

// Set assigns value at path. The parent of the last segment must already
// exist: a new key may be added to an object, but an array never grows, and
// missing intermediate containers are never created (see EnsurePath). A
// value that contains the container it would be stored in is rejected with
// ErrUnsupportedValue. When Set fails the tree is left untouched and the
// error is logged and returned.
func (doc *Document) Set(path string, value interface{}) error {
	err := doc.set(path, value)
	if err != nil {
		doc.report(err)
	}
	return err
}

func (doc *Document) set(path string, value interface{}) error {
	p, err := doc.parse("set", path)
	if err != nil {
		return err
	}

	value, err = doc.opts().normalize(value)
	if err != nil {
		return &PathError{Op: "set", Path: path, Pos: -1, Err: err}
	}

	parent, pos, err := resolve(doc.root, p.Parent())
	if err != nil {
		return doc.fail("set", path, p, pos, err)
	}
	if encloses(value, ancestors(doc.root, p.Parent())) {
		return &PathError{Op: "set", Path: path, Pos: -1,
			Err: fmt.Errorf("%w: value contains the container it would be stored in", ErrUnsupportedValue)}
	}

	last := len(p) - 1
	switch seg := p.Last().(type) {
	case Field:
		obj, ok := parent.(*Object)
		if !ok || obj == nil {
			return doc.fail("set", path, p, last, ErrTypeMismatch)
		}
		obj.Set(string(seg), value)
	case Index:
		arr, ok := parent.([]interface{})
		if !ok {
			return doc.fail("set", path, p, last, ErrTypeMismatch)
		}
		if int(seg) >= len(arr) {
			return doc.fail("set", path, p, last, ErrIndexOutOfRange)
		}
		arr[seg] = value
	}

	return nil
}

// ancestors lists the containers from the root down to the end of p, which
// must resolve.
func ancestors(root interface{}, p Path) []interface{} {
	nodes := []interface{}{root}
	node := root
	for _, seg := range p {
		node, _ = step(node, seg)
		nodes = append(nodes, node)
	}
	return nodes
}

func sameContainer(a, b interface{}) bool {
	switch x := a.(type) {
	case *Object:
		y, ok := b.(*Object)
		return ok && x != nil && x == y
	case []interface{}:
		y, ok := b.([]interface{})
		return ok && len(x) > 0 && len(y) > 0 && &x[0] == &y[0]
	}
	return false
}

// encloses reports whether value is, or holds, one of the containers.
func encloses(value interface{}, containers []interface{}) bool {
	for _, c := range containers {
		if sameContainer(value, c) {
			return true
		}
	}
	switch v := value.(type) {
	case *Object:
		found := false
		v.Range(func(_ string, child interface{}) bool {
			found = encloses(child, containers)
			return !found
		})
		return found
	case []interface{}:
		for _, child := range v {
			if encloses(child, containers) {
				return true
			}
		}
	}
	return false
}

// Delete removes an object field. Array elements can't be removed by path.
func (doc *Document) Delete(path string) error {
	err := doc.delete(path)
	if err != nil {
		doc.report(err)
	}
	return err
}

func (doc *Document) delete(path string) error {
	p, err := doc.parse("delete", path)
	if err != nil {
		return err
	}

	parent, pos, err := resolve(doc.root, p.Parent())
	if err != nil {
		return doc.fail("delete", path, p, pos, err)
	}

	last := len(p) - 1
	field, ok := p.Last().(Field)
	if !ok {
		return doc.fail("delete", path, p, last, ErrTypeMismatch)
	}
	obj, ok := parent.(*Object)
	if !ok || obj == nil {
		return doc.fail("delete", path, p, last, ErrTypeMismatch)
	}
	if !obj.Delete(string(field)) {
		return doc.fail("delete", path, p, last, ErrSegmentNotFound)
	}

	return nil
}
