// Package pathdocyaml renders documents as YAML, keeping object key order.
package pathdocyaml

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/sanity-io/pathdoc"
	"gopkg.in/yaml.v3"
)

type nodeWriter struct {
	root  *yaml.Node
	stack []*yaml.Node
}

func (w *nodeWriter) add(node *yaml.Node) {
	if len(w.stack) == 0 {
		w.root = node
		return
	}
	top := w.stack[len(w.stack)-1]
	top.Content = append(top.Content, node)
}

func (w *nodeWriter) scalar(tag, value string) error {
	w.add(&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value})
	return nil
}

func (w *nodeWriter) WriteNull() error {
	return w.scalar("!!null", "null")
}

func (w *nodeWriter) WriteBool(v bool) error {
	return w.scalar("!!bool", strconv.FormatBool(v))
}

func (w *nodeWriter) WriteNumber(v pathdoc.Number) error {
	if strings.ContainsAny(string(v), ".eE") {
		return w.scalar("!!float", string(v))
	}
	return w.scalar("!!int", string(v))
}

func (w *nodeWriter) WriteString(v string) error {
	return w.scalar("!!str", v)
}

func (w *nodeWriter) push(kind yaml.Kind, tag string) error {
	node := &yaml.Node{Kind: kind, Tag: tag}
	w.add(node)
	w.stack = append(w.stack, node)
	return nil
}

func (w *nodeWriter) pop() error {
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}

func (w *nodeWriter) BeginArray(n int) error {
	return w.push(yaml.SequenceNode, "!!seq")
}

func (w *nodeWriter) EndArray() error {
	return w.pop()
}

func (w *nodeWriter) BeginObject(n int) error {
	return w.push(yaml.MappingNode, "!!map")
}

func (w *nodeWriter) WriteKey(key string) error {
	return w.scalar("!!str", key)
}

func (w *nodeWriter) EndObject() error {
	return w.pop()
}

// Node converts a document value into a YAML node tree.
func Node(value interface{}) (*yaml.Node, error) {
	w := nodeWriter{}
	err := pathdoc.WriteValue(&w, value)
	if err != nil {
		return nil, err
	}
	return w.root, nil
}

// MarshalValue encodes a single document value as YAML.
func MarshalValue(value interface{}) ([]byte, error) {
	node, err := Node(value)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Marshal encodes a document as YAML.
func Marshal(doc *pathdoc.Document) ([]byte, error) {
	return MarshalValue(doc.Root())
}
