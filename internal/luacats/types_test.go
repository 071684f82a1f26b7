package luacats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendList_Shapes(t *testing.T) {
	object := `{
		"start": 30000,
		"finish": 30020,
		"type": "function",
		"view": "function hello()",
		"desc": "Say hello"
	}`

	var fromObject Define
	require.NoError(t, json.Unmarshal([]byte(`{
		"start": 30009, "finish": 30014, "type": "setglobal",
		"file": "file:///defs/hello.lua",
		"extends": `+object+`
	}`), &fromObject))

	var fromArray Define
	require.NoError(t, json.Unmarshal([]byte(`{
		"start": 30009, "finish": 30014, "type": "setglobal",
		"file": "file:///defs/hello.lua",
		"extends": [`+object+`]
	}`), &fromArray))

	var fromNull Define
	require.NoError(t, json.Unmarshal([]byte(`{
		"start": 30009, "finish": 30014, "type": "setglobal",
		"file": "file:///defs/hello.lua",
		"extends": null
	}`), &fromNull))

	var absent Define
	require.NoError(t, json.Unmarshal([]byte(`{
		"start": 30009, "finish": 30014, "type": "setglobal",
		"file": "file:///defs/hello.lua"
	}`), &absent))

	t.Run("object and array decode identically", func(t *testing.T) {
		require.Len(t, fromObject.Extends, 1)
		assert.Equal(t, fromArray.Extends, fromObject.Extends)
		assert.Equal(t, "function hello()", fromObject.Extends[0].View)
		assert.Equal(t, KindFunction, fromObject.Extends[0].Kind)
	})

	t.Run("null and absent decode to empty", func(t *testing.T) {
		assert.Empty(t, fromNull.Extends)
		assert.Equal(t, fromNull.Extends, absent.Extends)
	})
}

func TestExtendList_RejectsScalars(t *testing.T) {
	var list ExtendList
	err := json.Unmarshal([]byte(`"function hello()"`), &list)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extends must be")
}

func TestKind_RejectsUnknown(t *testing.T) {
	var def Definition
	err := json.Unmarshal([]byte(`{
		"name": "x", "type": "doc.operator", "defines": []
	}`), &def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized definition kind")
}

func TestKind_RoundTripSpelling(t *testing.T) {
	for _, spelling := range []string{
		"binary", "doc.alias", "doc.class", "doc.enum", "doc.extends.name",
		"doc.type", "function", "function.return", "integer", "local", "nil",
		"number", "self", "setfield", "setglobal", "setmethod", "string",
		"table", "tablefield", "type", "variable", "...",
	} {
		var k Kind
		require.NoError(t, json.Unmarshal([]byte(`"`+spelling+`"`), &k), spelling)

		out, err := json.Marshal(k)
		require.NoError(t, err)
		assert.Equal(t, `"`+spelling+`"`, string(out))
	}
}

func TestDefinition_Location(t *testing.T) {
	def := Definition{
		Name: "renoise.song",
		Kind: KindSetField,
		Defines: []Define{
			{Start: 120, Finish: 140, Kind: KindSetField, File: "file:///defs/renoise.lua"},
			{Start: 10, Finish: 20, Kind: KindSetField, File: "file:///defs/other.lua"},
		},
	}

	file, start, ok := def.Location()
	require.True(t, ok)
	assert.Equal(t, "file:///defs/renoise.lua", file)
	assert.Equal(t, uint64(120), start)

	empty := Definition{Name: "orphan", Kind: KindVariable}
	_, _, ok = empty.Location()
	assert.False(t, ok)
}
