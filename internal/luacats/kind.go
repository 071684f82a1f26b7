package luacats

import (
	"encoding/json"
	"fmt"
)

// Kind is the closed set of definition kinds emitted by lua-language-server.
// The zero value is not a valid kind; decoding an unrecognized tag is an error
// so that new upstream kinds surface immediately instead of being dropped.
type Kind string

const (
	KindBinary         Kind = "binary"
	KindDocAlias       Kind = "doc.alias"
	KindDocClass       Kind = "doc.class"
	KindDocEnum        Kind = "doc.enum"
	KindDocExtendsName Kind = "doc.extends.name"
	KindDocType        Kind = "doc.type"
	KindFunction       Kind = "function"
	KindFunctionReturn Kind = "function.return"
	KindInteger        Kind = "integer"
	KindLocal          Kind = "local"
	KindNil            Kind = "nil"
	KindNumber         Kind = "number"
	KindSelf           Kind = "self"
	KindSetField       Kind = "setfield"
	KindSetGlobal      Kind = "setglobal"
	KindSetMethod      Kind = "setmethod"
	KindString         Kind = "string"
	KindTable          Kind = "table"
	KindTableField     Kind = "tablefield"
	KindType           Kind = "type"
	KindVariable       Kind = "variable"
	KindVarArg         Kind = "..."
)

var validKinds = map[Kind]bool{
	KindBinary:         true,
	KindDocAlias:       true,
	KindDocClass:       true,
	KindDocEnum:        true,
	KindDocExtendsName: true,
	KindDocType:        true,
	KindFunction:       true,
	KindFunctionReturn: true,
	KindInteger:        true,
	KindLocal:          true,
	KindNil:            true,
	KindNumber:         true,
	KindSelf:           true,
	KindSetField:       true,
	KindSetGlobal:      true,
	KindSetMethod:      true,
	KindString:         true,
	KindTable:          true,
	KindTableField:     true,
	KindType:           true,
	KindVariable:       true,
	KindVarArg:         true,
}

// Valid reports whether k is a member of the known kind set.
func (k Kind) Valid() bool {
	return validKinds[k]
}

// String returns the wire spelling of the kind.
func (k Kind) String() string {
	return string(k)
}

// UnmarshalJSON decodes a kind tag, rejecting values outside the known set.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("kind must be a string: %w", err)
	}
	kind := Kind(s)
	if !kind.Valid() {
		return fmt.Errorf("unrecognized definition kind %q", s)
	}
	*k = kind
	return nil
}
