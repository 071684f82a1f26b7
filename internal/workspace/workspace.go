// Package workspace reconstructs the on-disk file hierarchy of a set of
// definition files from their flat, per-definition source locations.
package workspace

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"catsdoc/internal/luacats"
)

// ErrInvalidLocation marks a define whose file URI cannot be resolved to a
// file-system path. The hierarchy cannot be built without every location.
var ErrInvalidLocation = errors.New("invalid definition location")

// Workspace is the root forest of definition files under a single directory.
type Workspace struct {
	// Root is the absolute path to the workspace root directory.
	Root string
	// Files are the top-level meta files, alphabetical by file name.
	Files []MetaFile
}

// MetaFile is one definition file in the workspace.
type MetaFile struct {
	// Path is relative to the workspace root.
	Path string
	// Definitions from this file, ascending by the start offset of the
	// define that placed them here.
	Definitions []luacats.Definition
	// Depth in the directory tree; top-level files have depth 0.
	Depth int
	// SubFiles are files one level deeper whose directory name matches
	// this file's stem, e.g. renoise/midi.lua under renoise.lua.
	SubFiles []MetaFile
}

// FileName returns the last path component.
func (m *MetaFile) FileName() string {
	return filepath.Base(m.Path)
}

// FileStem returns the file name without its extension.
func (m *MetaFile) FileStem() string {
	name := m.FileName()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// DirectoryName returns the name of the file's immediate directory, or ""
// for top-level files.
func (m *MetaFile) DirectoryName() string {
	if m.Depth == 0 {
		return ""
	}
	return filepath.Base(filepath.Dir(m.Path))
}

// Build groups definitions by the resolved path of each of their defines and
// assembles the per-file groups into a directory-shaped forest rooted at
// root. A definition with defines in multiple files appears once per file;
// groups outside root are dropped. The only failure mode is an unresolvable
// file URI.
func Build(root string, defs []luacats.Definition) (*Workspace, error) {
	type located struct {
		start uint64
		def   luacats.Definition
	}

	byPath := make(map[string][]located)
	for _, def := range defs {
		for _, define := range def.Defines {
			path, err := uriToPath(define.File)
			if err != nil {
				return nil, err
			}
			byPath[path] = append(byPath[path], located{start: define.Start, def: def})
		}
	}

	files := make([]MetaFile, 0, len(byPath))
	for path, group := range byPath {
		rel, ok := relativeTo(root, path)
		if !ok {
			// Defines outside the root are bundled or system
			// definitions, not part of this workspace.
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].start < group[j].start
		})
		definitions := make([]luacats.Definition, len(group))
		for i, entry := range group {
			definitions[i] = entry.def
		}

		files = append(files, MetaFile{
			Path:        rel,
			Definitions: definitions,
			Depth:       strings.Count(rel, string(filepath.Separator)),
		})
	}

	// Depth first so parents exist before their children, then
	// alphabetical among siblings.
	sort.Slice(files, func(i, j int) bool {
		if files[i].Depth != files[j].Depth {
			return files[i].Depth < files[j].Depth
		}
		if files[i].FileName() != files[j].FileName() {
			return files[i].FileName() < files[j].FileName()
		}
		return files[i].Path < files[j].Path
	})

	ws := &Workspace{Root: root}
	for _, file := range files {
		ws.addFile(file)
	}
	return ws, nil
}

// addFile links one meta file into the forest. Files whose parent cannot be
// found are promoted to the top level rather than dropped, since orphaned
// files still need a place in the rendered book.
func (w *Workspace) addFile(file MetaFile) {
	if file.Depth == 0 {
		w.Files = append(w.Files, file)
		return
	}

	if parent := findParent(w.Files, file.Depth-1, file.DirectoryName()); parent != nil {
		parent.SubFiles = append(parent.SubFiles, file)
		return
	}

	log.Printf("workspace: no parent found for %s, promoting to top level", file.FileName())
	w.Files = append(w.Files, file)
}

// findParent returns the first node at the wanted depth whose file stem
// matches, in insertion order. Same-named files at equal depth resolve to
// whichever was inserted first.
func findParent(files []MetaFile, depth int, stem string) *MetaFile {
	for i := range files {
		candidate := &files[i]
		if candidate.Depth == depth && candidate.FileStem() == stem {
			return candidate
		}
		if candidate.Depth < depth {
			if found := findParent(candidate.SubFiles, depth, stem); found != nil {
				return found
			}
		}
	}
	return nil
}

// uriToPath converts a file:// URI into an absolute file-system path.
func uriToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %q: %v", ErrInvalidLocation, uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %q is not a file:// URI", ErrInvalidLocation, uri)
	}
	if u.Path == "" {
		return "", fmt.Errorf("%w: %q has no path", ErrInvalidLocation, uri)
	}
	return filepath.FromSlash(u.Path), nil
}

// relativeTo returns path relative to root, or false when path does not lie
// under root.
func relativeTo(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
