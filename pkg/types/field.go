// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldKind tags the shape of a value taken from an authority record.
type FieldKind int

const (
	// FieldAbsent is a missing key or a JSON null.
	FieldAbsent FieldKind = iota
	// FieldScalar is a string, number, or boolean.
	FieldScalar
	// FieldLabeled is an object carrying a "label" key.
	FieldLabeled
	// FieldObject is an object without a "label" key.
	FieldObject
	// FieldList is an array of fields.
	FieldList
)

func (k FieldKind) String() string {
	switch k {
	case FieldScalar:
		return "scalar"
	case FieldLabeled:
		return "labeled"
	case FieldObject:
		return "object"
	case FieldList:
		return "list"
	default:
		return "absent"
	}
}

// Field holds one value of a lobid GND payload. The authority API returns
// the same key as a scalar, a {"label": ...} object, a list of either, or
// not at all; Field keeps the decoded value so it can be written back
// verbatim and flattened on demand.
//
// The zero Field is absent.
type Field struct {
	kind  FieldKind
	value any
	label string
	items []Field
}

// NewField builds a Field from a decoded JSON value (string, json.Number,
// float64, bool, []any, map[string]any or nil).
func NewField(v any) Field {
	switch t := v.(type) {
	case nil:
		return Field{}
	case []any:
		items := make([]Field, len(t))
		for i, elem := range t {
			items[i] = NewField(elem)
		}
		return Field{kind: FieldList, value: t, items: items}
	case []string:
		raw := make([]any, len(t))
		for i, s := range t {
			raw[i] = s
		}
		return NewField(raw)
	case map[string]any:
		if l, ok := t["label"]; ok {
			return Field{kind: FieldLabeled, value: t, label: NewField(l).String()}
		}
		return Field{kind: FieldObject, value: t}
	default:
		return Field{kind: FieldScalar, value: t}
	}
}

// Kind reports the shape of the field.
func (f Field) Kind() FieldKind { return f.kind }

// IsAbsent reports whether the key was missing or null.
func (f Field) IsAbsent() bool { return f.kind == FieldAbsent }

// Items returns the elements of a list field, or nil for any other kind.
func (f Field) Items() []Field { return f.items }

// Truthy reports whether the field holds a non-empty value. Absent fields,
// empty strings, zero numbers, false, and empty objects or lists are not
// truthy.
func (f Field) Truthy() bool {
	switch f.kind {
	case FieldScalar:
		switch v := f.value.(type) {
		case string:
			return v != ""
		case bool:
			return v
		case json.Number:
			n, err := v.Float64()
			return err != nil || n != 0
		case float64:
			return v != 0
		case int:
			return v != 0
		default:
			return true
		}
	case FieldLabeled:
		return true
	case FieldObject:
		m, _ := f.value.(map[string]any)
		return len(m) > 0
	case FieldList:
		return len(f.items) > 0
	default:
		return false
	}
}

// String returns the textual form of the field: strings as-is, numbers
// and booleans as their JSON literals, compound values as compact JSON.
// An absent field is the empty string.
func (f Field) String() string {
	switch f.kind {
	case FieldAbsent:
		return ""
	case FieldScalar:
		switch v := f.value.(type) {
		case string:
			return v
		case json.Number:
			return v.String()
		case bool:
			return strconv.FormatBool(v)
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return fmt.Sprint(v)
		}
	default:
		b, err := encodeLiteral(f.value)
		if err != nil {
			return fmt.Sprint(f.value)
		}
		return string(b)
	}
}

// Labels flattens the field into a list of strings:
//   - a list yields each element's label when the element is a labeled
//     object, the element's string form otherwise;
//   - a labeled object yields its label;
//   - any other truthy value yields its string form;
//   - absent or empty values yield an empty list.
//
// The result is never nil.
func (f Field) Labels() []string {
	switch f.kind {
	case FieldList:
		out := make([]string, 0, len(f.items))
		for _, item := range f.items {
			if item.kind == FieldLabeled {
				out = append(out, item.label)
				continue
			}
			out = append(out, item.String())
		}
		return out
	case FieldLabeled:
		return []string{f.label}
	default:
		if f.Truthy() {
			return []string{f.String()}
		}
		return []string{}
	}
}

// MarshalJSON writes the decoded value back unchanged; absent is null.
func (f Field) MarshalJSON() ([]byte, error) {
	if f.kind == FieldAbsent {
		return []byte("null"), nil
	}
	return encodeLiteral(f.value)
}

// UnmarshalJSON decodes any JSON value into the field, keeping number
// literals exact.
func (f *Field) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*f = NewField(v)
	return nil
}

// encodeLiteral marshals v without HTML escaping and without the trailing
// newline json.Encoder appends.
func encodeLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
