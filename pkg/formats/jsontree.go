package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// jsonKind identifies the type of a jsonNode.
type jsonKind int

const (
	jsonNull jsonKind = iota
	jsonBool
	jsonNumber
	jsonString
	jsonArray
	jsonObject
)

// jsonNode is an order-preserving JSON value. Object members keep their
// document order so lookups behave like a left-to-right scan of the file.
type jsonNode struct {
	kind    jsonKind
	num     json.Number
	str     string
	boolean bool
	items   []*jsonNode
	members []jsonMember
}

type jsonMember struct {
	key   string
	value *jsonNode
}

// parseJSONTree tokenizes data into a jsonNode tree. On malformed input it
// returns the part of the tree built before the error together with
// ErrMalformedJSON, so callers can salvage what was read.
func parseJSONTree(data []byte) (*jsonNode, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyData
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := readJSONValue(dec)
	if err != nil {
		return root, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return root, nil
}

func readJSONValue(dec *json.Decoder) (*jsonNode, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return readJSONObject(dec)
		case '[':
			return readJSONArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v)
	case json.Number:
		return &jsonNode{kind: jsonNumber, num: v}, nil
	case string:
		return &jsonNode{kind: jsonString, str: v}, nil
	case bool:
		return &jsonNode{kind: jsonBool, boolean: v}, nil
	default:
		return &jsonNode{kind: jsonNull}, nil
	}
}

func readJSONObject(dec *json.Decoder) (*jsonNode, error) {
	node := &jsonNode{kind: jsonObject}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return node, err
		}
		key, ok := tok.(string)
		if !ok {
			return node, fmt.Errorf("object key is %T, not string", tok)
		}
		value, err := readJSONValue(dec)
		if value != nil {
			node.members = append(node.members, jsonMember{key: key, value: value})
		}
		if err != nil {
			return node, err
		}
	}
	if err := readJSONClose(dec, '}'); err != nil {
		return node, err
	}
	return node, nil
}

func readJSONArray(dec *json.Decoder) (*jsonNode, error) {
	node := &jsonNode{kind: jsonArray}
	for dec.More() {
		value, err := readJSONValue(dec)
		if value != nil {
			node.items = append(node.items, value)
		}
		if err != nil {
			return node, err
		}
	}
	if err := readJSONClose(dec, ']'); err != nil {
		return node, err
	}
	return node, nil
}

func readJSONClose(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// member returns the first direct member named key, or nil.
func (n *jsonNode) member(key string) *jsonNode {
	if n == nil || n.kind != jsonObject {
		return nil
	}
	for _, m := range n.members {
		if m.key == key {
			return m.value
		}
	}
	return nil
}

// find searches the tree in document order for the first member named key
// whose value has the wanted kind. It returns the value and the object
// holding it.
func (n *jsonNode) find(key string, kind jsonKind) (value, parent *jsonNode) {
	if n == nil {
		return nil, nil
	}
	switch n.kind {
	case jsonObject:
		for _, m := range n.members {
			if m.key == key && m.value.kind == kind {
				return m.value, n
			}
			if v, p := m.value.find(key, kind); v != nil {
				return v, p
			}
		}
	case jsonArray:
		for _, item := range n.items {
			if v, p := item.find(key, kind); v != nil {
				return v, p
			}
		}
	}
	return nil, nil
}

// float returns the numeric value, or 0 for anything that is not a number.
func (n *jsonNode) float() float32 {
	if n == nil {
		return 0
	}
	switch n.kind {
	case jsonNumber:
		f, err := n.num.Float64()
		if err != nil {
			return 0
		}
		return float32(f)
	case jsonString:
		return parseLeadingFloat(n.str)
	}
	return 0
}

// text returns the string value, or "" for non-strings.
func (n *jsonNode) text() string {
	if n == nil || n.kind != jsonString {
		return ""
	}
	return n.str
}

// vec3 reads up to three numbers from an array; missing entries are 0.
func (n *jsonNode) vec3() [3]float32 {
	var out [3]float32
	if n == nil || n.kind != jsonArray {
		return out
	}
	for i := 0; i < 3 && i < len(n.items); i++ {
		out[i] = n.items[i].float()
	}
	return out
}

// vec2 reads up to two numbers from an array; missing entries are 0.
func (n *jsonNode) vec2() [2]float32 {
	var out [2]float32
	if n == nil || n.kind != jsonArray {
		return out
	}
	for i := 0; i < 2 && i < len(n.items); i++ {
		out[i] = n.items[i].float()
	}
	return out
}

// parseLeadingFloat parses the longest numeric prefix of s, returning 0 if
// there is none. Keyframe times are written as strings such as "0.5".
func parseLeadingFloat(s string) float32 {
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
			end++
			continue
		}
		break
	}
	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 32); err == nil {
			return float32(f)
		}
		end--
	}
	return 0
}
