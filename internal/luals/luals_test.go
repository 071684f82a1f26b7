package luals

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catsdoc/internal/luacats"
)

func testDefinition(name, file string, start uint64) luacats.Definition {
	return luacats.Definition{
		Name: name,
		Kind: luacats.KindVariable,
		Defines: []luacats.Define{
			{Start: start, Finish: start + 10, Kind: luacats.KindSetGlobal, File: file},
		},
	}
}

func TestCleanDocs_FiltersAndSorts(t *testing.T) {
	defs := []luacats.Definition{
		testDefinition("zeta", "file:///defs/b.lua", 100),
		testDefinition("builtin", "file:///usr/share/lls/meta/builtin.lua", 0),
		testDefinition("alpha", "file:///defs/a.lua", 50),
		testDefinition("beta", "file:///defs/b.lua", 10),
	}

	cleaned := CleanDocs("/defs", defs)
	require.Len(t, cleaned, 3)

	var names []string
	for _, def := range cleaned {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"alpha", "beta", "zeta"}, names)
}

func TestCleanDocs_KeepsPartiallyLocal(t *testing.T) {
	def := luacats.Definition{
		Name: "mixed",
		Kind: luacats.KindVariable,
		Defines: []luacats.Define{
			{Start: 0, Finish: 10, Kind: luacats.KindSetGlobal, File: "file:///elsewhere/sys.lua"},
			{Start: 20, Finish: 30, Kind: luacats.KindSetGlobal, File: "file:///defs/local.lua"},
		},
	}

	cleaned := CleanDocs("/defs", []luacats.Definition{def})
	require.Len(t, cleaned, 1)
	assert.Equal(t, "mixed", cleaned[0].Name)
}

// fakeAnalyzer writes a shell script that mimics the exporter by copying a
// canned doc.json into --doc_out_path.
func fakeAnalyzer(t *testing.T, docJSON string, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake analyzer script requires a POSIX shell")
	}

	dir := t.TempDir()
	doc := filepath.Join(dir, "canned.json")
	require.NoError(t, os.WriteFile(doc, []byte(docJSON), 0644))

	script := filepath.Join(dir, "fake-luals")
	body := "#!/bin/sh\n" +
		"out=\"\"\n" +
		"while [ $# -gt 0 ]; do\n" +
		"  if [ \"$1\" = \"--doc_out_path\" ]; then out=\"$2\"; shift; fi\n" +
		"  shift\n" +
		"done\n" +
		"cp '" + doc + "' \"$out/doc.json\"\n" +
		"exit " + strconv.Itoa(exitCode) + "\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0755))
	return script
}

func TestGenerateDocs(t *testing.T) {
	script := fakeAnalyzer(t, `[
		{
			"defines": [
				{
					"file": "file:///defs/hello.lua",
					"finish": 14,
					"start": 9,
					"type": "setglobal"
				}
			],
			"name": "hello",
			"type": "variable"
		}
	]`, 0)

	runner := &Runner{Command: script}
	defs, err := runner.GenerateDocs(context.Background(), "/defs")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "hello", defs[0].Name)
}

func TestGenerateDocs_ExitFailure(t *testing.T) {
	script := fakeAnalyzer(t, `[]`, 1)

	runner := &Runner{Command: script}
	_, err := runner.GenerateDocs(context.Background(), "/defs")
	require.Error(t, err)

	execErr, ok := err.(*ExecError)
	require.True(t, ok, "want *ExecError, got %T", err)
	assert.Equal(t, 1, execErr.ExitCode)
}

func TestGenerateDocs_MissingBinary(t *testing.T) {
	runner := &Runner{Command: filepath.Join(t.TempDir(), "does-not-exist")}
	_, err := runner.GenerateDocs(context.Background(), "/defs")
	require.Error(t, err)
}
