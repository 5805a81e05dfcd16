package pathdoc

// Visitor receives the structure of a document in depth-first order.
type Visitor interface {
	EnterField(key string)
	LeaveField(key string)

	EnterElement(idx int)
	LeaveElement(idx int)

	// Leaf is called for scalars and for empty arrays and objects.
	Leaf(value interface{}) error
}

// Visit walks value and reports it to v. Object fields are visited in
// insertion order.
func Visit(value interface{}, v Visitor) error {
	switch value := value.(type) {
	case []interface{}:
		if len(value) == 0 {
			return v.Leaf(value)
		}
		for idx, elem := range value {
			v.EnterElement(idx)
			err := Visit(elem, v)
			v.LeaveElement(idx)
			if err != nil {
				return err
			}
		}
		return nil
	case *Object:
		if value.Len() == 0 {
			return v.Leaf(value)
		}
		var err error
		value.Range(func(key string, elem interface{}) bool {
			v.EnterField(key)
			err = Visit(elem, v)
			v.LeaveField(key)
			return err == nil
		})
		return err
	}

	return v.Leaf(value)
}

type pathVisitor struct {
	current Path
	fn      func(p Path, value interface{}) error
}

func (w *pathVisitor) EnterField(key string) {
	w.current = append(w.current, Field(key))
}

func (w *pathVisitor) LeaveField(key string) {
	w.current = w.current[:len(w.current)-1]
}

func (w *pathVisitor) EnterElement(idx int) {
	w.current = append(w.current, Index(idx))
}

func (w *pathVisitor) LeaveElement(_ int) {
	w.current = w.current[:len(w.current)-1]
}

func (w *pathVisitor) Leaf(value interface{}) error {
	return w.fn(w.current.Append(), value)
}

// Walk calls fn with the path of every leaf in the document. The root
// itself is reported with an empty path when it is a scalar or empty.
// Walking stops at the first error fn returns.
func (doc *Document) Walk(fn func(p Path, value interface{}) error) error {
	return Visit(doc.root, &pathVisitor{fn: fn})
}
