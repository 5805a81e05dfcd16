// Package diff reports the differences between two document values as a
// list of path-addressed changes.
package diff

import (
	"fmt"

	"github.com/sanity-io/pathdoc"
)

type Op uint8

const (
	OpAdded Op = iota + 1
	OpRemoved
	OpChanged
)

func (op Op) String() string {
	switch op {
	case OpAdded:
		return "added"
	case OpRemoved:
		return "removed"
	case OpChanged:
		return "changed"
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Reporter receives the differences found by Compare. The Enter and Leave
// calls describe where the next Report happens.
type Reporter interface {
	EnterField(key string)
	LeaveField(key string)

	EnterElement(idx int)
	LeaveElement(idx int)

	// Report is called with a nil oldValue for OpAdded and a nil newValue
	// for OpRemoved.
	Report(op Op, oldValue, newValue interface{})
}

// Compare walks left and right together and reports the smallest subtrees
// that differ. Objects are compared by key and arrays by position; values of
// different kinds are reported as a single change.
func Compare(left, right interface{}, r Reporter) {
	if pathdoc.Equal(left, right) {
		return
	}

	switch left := left.(type) {
	case *pathdoc.Object:
		if right, ok := right.(*pathdoc.Object); ok {
			compareObjects(left, right, r)
			return
		}
	case []interface{}:
		if right, ok := right.([]interface{}); ok {
			compareArrays(left, right, r)
			return
		}
	}

	r.Report(OpChanged, left, right)
}

func compareObjects(left, right *pathdoc.Object, r Reporter) {
	left.Range(func(key string, leftValue interface{}) bool {
		r.EnterField(key)
		if rightValue, ok := right.Get(key); ok {
			Compare(leftValue, rightValue, r)
		} else {
			r.Report(OpRemoved, leftValue, nil)
		}
		r.LeaveField(key)
		return true
	})

	right.Range(func(key string, rightValue interface{}) bool {
		if !left.Has(key) {
			r.EnterField(key)
			r.Report(OpAdded, nil, rightValue)
			r.LeaveField(key)
		}
		return true
	})
}

func compareArrays(left, right []interface{}, r Reporter) {
	for idx := 0; idx < len(left) || idx < len(right); idx++ {
		r.EnterElement(idx)
		switch {
		case idx >= len(right):
			r.Report(OpRemoved, left[idx], nil)
		case idx >= len(left):
			r.Report(OpAdded, nil, right[idx])
		default:
			Compare(left[idx], right[idx], r)
		}
		r.LeaveElement(idx)
	}
}

// Change is one difference between two values.
type Change struct {
	Op   Op
	Path pathdoc.Path
	Old  interface{}
	New  interface{}
}

type changeReporter struct {
	changes     []Change
	currentPath pathdoc.Path
}

func (r *changeReporter) EnterField(key string) {
	r.currentPath = append(r.currentPath, pathdoc.Field(key))
}

func (r *changeReporter) LeaveField(key string) {
	r.currentPath = r.currentPath[:len(r.currentPath)-1]
}

func (r *changeReporter) EnterElement(idx int) {
	r.currentPath = append(r.currentPath, pathdoc.Index(idx))
}

func (r *changeReporter) LeaveElement(_ int) {
	r.currentPath = r.currentPath[:len(r.currentPath)-1]
}

func (r *changeReporter) Report(op Op, oldValue, newValue interface{}) {
	r.changes = append(r.changes, Change{
		Op:   op,
		Path: r.currentPath.Append(),
		Old:  oldValue,
		New:  newValue,
	})
}

// Changes lists the differences between left and right in document order.
func Changes(left, right interface{}) []Change {
	r := changeReporter{}
	Compare(left, right, &r)
	return r.changes
}

// Documents lists the differences between two documents.
func Documents(left, right *pathdoc.Document) []Change {
	return Changes(left.Root(), right.Root())
}
