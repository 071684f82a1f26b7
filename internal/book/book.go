// Package book composes a rendered workspace into a chapter tree. The tree
// is the hand-off boundary to the book assembler, which owns chapter
// numbering and linking.
package book

import (
	"path/filepath"
	"strings"

	"catsdoc/internal/render"
	"catsdoc/internal/workspace"
)

// DefaultPartTitle names the part enclosing the generated chapters.
const DefaultPartTitle = "API Reference"

// Options controls chapter composition.
type Options struct {
	// PartTitle is the enclosing part name; empty means DefaultPartTitle.
	PartTitle string
	// NavDepth limits how many chapter levels are emitted. Zero means
	// unlimited.
	NavDepth int
}

// Chapter is one rendered definition file, with its sub-files as nested
// chapters.
type Chapter struct {
	// Name is the chapter title, the file stem of the source file.
	Name string
	// Content is the rendered Markdown for this file's definitions.
	Content string
	// Path is the chapter's output path relative to the book source,
	// the definition file's relative path with a .md extension.
	Path string
	// SubChapters mirror the file's sub-files.
	SubChapters []Chapter
}

// Part is a titled group of top-level chapters.
type Part struct {
	Title    string
	Chapters []Chapter
}

// Build renders every file of the workspace into a chapter tree.
func Build(ws *workspace.Workspace, printer *render.Printer, opts Options) Part {
	title := opts.PartTitle
	if title == "" {
		title = DefaultPartTitle
	}

	chapters := make([]Chapter, 0, len(ws.Files))
	for i := range ws.Files {
		chapters = append(chapters, buildChapter(&ws.Files[i], printer, opts.NavDepth, 1))
	}

	return Part{Title: title, Chapters: chapters}
}

func buildChapter(file *workspace.MetaFile, printer *render.Printer, navDepth, level int) Chapter {
	ch := Chapter{
		Name:    file.FileStem(),
		Content: printer.PrintFile(file),
		Path:    markdownPath(file.Path),
	}

	if navDepth > 0 && level >= navDepth {
		return ch
	}
	for i := range file.SubFiles {
		ch.SubChapters = append(ch.SubChapters, buildChapter(&file.SubFiles[i], printer, navDepth, level+1))
	}
	return ch
}

func markdownPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".md"
}
