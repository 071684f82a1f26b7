// Package render projects decoded definitions into Markdown text.
package render

import (
	"strings"

	"catsdoc/internal/luacats"
	"catsdoc/internal/workspace"
)

// DefaultHeadingLevel is used when Options leaves HeadingLevel unset.
const DefaultHeadingLevel = 2

// Options controls Markdown output.
type Options struct {
	// HeadingLevel is the number of '#' characters on definition
	// headings; zero means DefaultHeadingLevel.
	HeadingLevel int
}

// Printer renders definitions and meta files as Markdown.
type Printer struct {
	opts Options
}

// NewPrinter returns a printer with the given options.
func NewPrinter(opts Options) *Printer {
	return &Printer{opts: opts}
}

func (p *Printer) headingLevel() int {
	if p.opts.HeadingLevel <= 0 {
		return DefaultHeadingLevel
	}
	return p.opts.HeadingLevel
}

// PrintDefinition renders one definition: a heading with the name, the
// description when present, then one lua code fence per extend of every
// define, each block followed by a blank line. Only the extend's view is
// rendered; it is already the complete textual signature.
func (p *Printer) PrintDefinition(def *luacats.Definition) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("#", p.headingLevel()))
	b.WriteString(" ")
	b.WriteString(def.Name)
	b.WriteString("\n\n")

	if def.Desc != "" {
		b.WriteString(def.Desc)
		b.WriteString("\n\n")
	}

	for _, define := range def.Defines {
		for _, extend := range define.Extends {
			b.WriteString("```lua\n")
			b.WriteString(extend.View)
			b.WriteString("\n```\n\n")
		}
	}

	return b.String()
}

// Print renders a sequence of definitions, joining the per-definition
// chunks with a newline.
func (p *Printer) Print(defs []luacats.Definition) string {
	chunks := make([]string, len(defs))
	for i := range defs {
		chunks[i] = p.PrintDefinition(&defs[i])
	}
	return strings.Join(chunks, "\n")
}

// PrintFile renders every definition of a meta file in document order.
// Sub-files are composed into chapters separately, not inlined here.
func (p *Printer) PrintFile(file *workspace.MetaFile) string {
	return p.Print(file.Definitions)
}
