// Package luacats models the documentation records exported by
// lua-language-server's --doc mode and decodes them from JSON.
package luacats

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Definition is one documented name together with every source location
// that established it.
type Definition struct {
	Desc    string   `json:"desc,omitempty"`
	RawDesc string   `json:"rawdesc,omitempty"`
	Name    string   `json:"name"`
	Kind    Kind     `json:"type"`
	Defines []Define `json:"defines"`
	Fields  []Field  `json:"fields,omitempty"`
}

// Define is a single source location contributing to a Definition.
type Define struct {
	Start   uint64     `json:"start"`
	Finish  uint64     `json:"finish"`
	Kind    Kind       `json:"type"`
	File    string     `json:"file"`
	Extends ExtendList `json:"extends,omitempty"`
}

// Field is a table or class member entry owned by a Definition.
type Field struct {
	Name    string     `json:"name,omitempty"`
	Desc    string     `json:"desc,omitempty"`
	RawDesc string     `json:"rawdesc,omitempty"`
	Kind    Kind       `json:"type"`
	Start   uint64     `json:"start"`
	Finish  uint64     `json:"finish"`
	File    string     `json:"file,omitempty"`
	Extends ExtendList `json:"extends,omitempty"`
}

// Extend is refined type information attached to a Define or Field,
// e.g. the concrete signature of a function.
type Extend struct {
	Start   uint64       `json:"start"`
	Finish  uint64       `json:"finish"`
	Kind    Kind         `json:"type"`
	View    string       `json:"view"`
	Desc    string       `json:"desc,omitempty"`
	RawDesc string       `json:"rawdesc,omitempty"`
	Args    []FuncArg    `json:"args,omitempty"`
	Returns []FuncReturn `json:"returns,omitempty"`
}

// FuncArg is one function argument. Name is empty for varargs ("...").
type FuncArg struct {
	Name   string `json:"name,omitempty"`
	Kind   Kind   `json:"type"`
	View   string `json:"view"`
	Start  uint64 `json:"start"`
	Finish uint64 `json:"finish"`
}

// FuncReturn is one function return value.
type FuncReturn struct {
	Name string `json:"name,omitempty"`
	Kind Kind   `json:"type"`
	View string `json:"view"`
}

// ExtendList normalizes the "extends" field, which the exporter emits as
// null, a single object, or an array of objects, into an ordered list.
type ExtendList []Extend

// UnmarshalJSON accepts null, a single extend object, or an array of them.
// Any other shape, and any malformed entry, is a decode error.
func (e *ExtendList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*e = nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []Extend
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("decoding extends array: %w", err)
		}
		*e = list
		return nil
	case '{':
		var single Extend
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return fmt.Errorf("decoding extends object: %w", err)
		}
		*e = ExtendList{single}
		return nil
	default:
		return fmt.Errorf("extends must be null, an object, or an array, got %q", previewJSON(trimmed))
	}
}

// Location returns the file URI and start offset of the primary (first)
// define, or false when the definition has no defines.
func (d *Definition) Location() (file string, start uint64, ok bool) {
	if len(d.Defines) == 0 {
		return "", 0, false
	}
	return d.Defines[0].File, d.Defines[0].Start, true
}

func previewJSON(data []byte) string {
	const max = 24
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
