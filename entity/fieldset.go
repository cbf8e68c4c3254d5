package entity

import (
	"bytes"
	"encoding/json"
)

// Field is a single wire parameter.
type Field struct {
	Name  string
	Value string
}

// FieldSet is the flat wire parameter set for one bank transaction.
// Fields keep insertion order, and MarshalJSON emits them in that order:
// the bank's signature verification is order-sensitive, so serialization
// must be deterministic for identical input.
type FieldSet struct {
	fields []Field
}

// Set appends a field. Setting an existing name replaces its value in place
// without changing its position.
func (fs *FieldSet) Set(name, value string) {
	for i := range fs.fields {
		if fs.fields[i].Name == name {
			fs.fields[i].Value = value
			return
		}
	}
	fs.fields = append(fs.fields, Field{Name: name, Value: value})
}

// Get returns the value for a field name.
func (fs *FieldSet) Get(name string) (string, bool) {
	for _, f := range fs.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Names returns field names in insertion order.
func (fs *FieldSet) Names() []string {
	names := make([]string, len(fs.fields))
	for i, f := range fs.fields {
		names[i] = f.Name
	}
	return names
}

func (fs *FieldSet) Len() int {
	return len(fs.fields)
}

// MarshalJSON emits a JSON object with fields in insertion order.
func (fs *FieldSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fs.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
