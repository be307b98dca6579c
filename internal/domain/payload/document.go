package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
)

var ErrNotObject = errors.New("payload must be a JSON object")

// Document is a nested JSON-compatible request body. Numbers are held as
// json.Number so raw edits survive round trips without float mangling.
type Document map[string]any

// FromJSON parses a raw payload. Anything but a single JSON object is an
// error.
func FromJSON(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotObject
	}
	if dec.More() {
		return nil, errors.New("trailing data after payload object")
	}
	return Document(m), nil
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Clone deep-copies the document so callers can hand copies out without
// aliasing internal state.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(cloneValue(map[string]any(d)).(map[string]any))
}

func splitPath(path string) []string {
	return strings.Split(path, ".")
}

// Lookup resolves a dotted path ("payment.card.card_number").
func (d Document) Lookup(path string) (any, bool) {
	var cur any = map[string]any(d)
	for _, seg := range splitPath(path) {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = node[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Put sets a dotted path, creating intermediate objects as needed. An
// intermediate that is not an object is replaced by one.
func (d Document) Put(path string, value any) {
	segs := splitPath(path)
	node := map[string]any(d)
	for _, seg := range segs[:len(segs)-1] {
		next, ok := node[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			node[seg] = next
		}
		node = next
	}
	node[segs[len(segs)-1]] = value
}

// Delete removes a dotted path. It reports whether the path existed.
// Emptied intermediate objects are left in place; see Prune.
func (d Document) Delete(path string) bool {
	segs := splitPath(path)
	node := map[string]any(d)
	for _, seg := range segs[:len(segs)-1] {
		next, ok := node[seg].(map[string]any)
		if !ok {
			return false
		}
		node = next
	}
	leaf := segs[len(segs)-1]
	if _, ok := node[leaf]; !ok {
		return false
	}
	delete(node, leaf)
	return true
}

func pruneEmpty(node map[string]any) {
	for k, v := range node {
		child, ok := v.(map[string]any)
		if !ok {
			continue
		}
		pruneEmpty(child)
		if len(child) == 0 {
			delete(node, k)
		}
	}
}

// Prune drops empty nested objects left behind by Delete.
func (d Document) Prune() {
	pruneEmpty(map[string]any(d))
}

func (d Document) Equal(o Document) bool {
	return reflect.DeepEqual(map[string]any(d), map[string]any(o))
}
