// Package luals drives the lua-language-server --doc export and filters
// its output against a workspace root.
package luals

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"catsdoc/internal/luacats"
)

// DefaultCommand is the analyzer binary looked up on PATH.
const DefaultCommand = "lua-language-server"

// ExecError reports a failed analyzer invocation.
type ExecError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

// Runner invokes the documentation exporter.
type Runner struct {
	// Command overrides the analyzer binary; empty means DefaultCommand.
	Command string
}

func (r *Runner) command() string {
	if r.Command == "" {
		return DefaultCommand
	}
	return r.Command
}

// GenerateDocs runs the analyzer over definitionsPath and decodes the
// doc.json it produces. The export is written to a temp directory that is
// removed before returning.
func (r *Runner) GenerateDocs(ctx context.Context, definitionsPath string) ([]luacats.Definition, error) {
	tmpDir, err := os.MkdirTemp("", "luals-docs-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	cmd := exec.CommandContext(ctx, r.command(),
		"--doc", definitionsPath,
		"--doc_out_path", tmpDir,
		"--logpath", tmpDir,
	)
	if _, err := cmd.Output(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExecError{
				Command:  r.command(),
				ExitCode: exitErr.ExitCode(),
				Stderr:   string(exitErr.Stderr),
			}
		}
		return nil, fmt.Errorf("running %s: %w", r.command(), err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "doc.json"))
	if err != nil {
		return nil, fmt.Errorf("reading doc export: %w", err)
	}

	return luacats.DecodeDefinitions(data)
}

// CleanDocs keeps definitions with at least one define under root and sorts
// them by the file and start offset of their primary define. Definitions
// sourced entirely from outside root (bundled or system definitions) are
// dropped.
func CleanDocs(root string, defs []luacats.Definition) []luacats.Definition {
	kept := make([]luacats.Definition, 0, len(defs))
	for _, def := range defs {
		for _, define := range def.Defines {
			if underRoot(root, define.File) {
				kept = append(kept, def)
				break
			}
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		fileI, startI, _ := kept[i].Location()
		fileJ, startJ, _ := kept[j].Location()
		if fileI != fileJ {
			return fileI < fileJ
		}
		return startI < startJ
	})

	return kept
}

func underRoot(root, fileURI string) bool {
	path := strings.TrimPrefix(fileURI, "file://")
	rel, err := filepath.Rel(root, filepath.FromSlash(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
