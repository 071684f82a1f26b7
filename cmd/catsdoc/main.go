package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"catsdoc/internal/book"
	"catsdoc/internal/config"
	"catsdoc/internal/luacats"
	"catsdoc/internal/luals"
	"catsdoc/internal/render"
	"catsdoc/internal/workspace"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "catsdoc",
		Short: "Generate Markdown API docs from LuaCATS type definitions",
	}
	configPath   string
	outputDir    string
	headingLevel int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the config file")

	generateCmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory for chapter files (overrides config)")
	convertCmd.Flags().IntVar(&headingLevel, "heading-level", render.DefaultHeadingLevel, "Heading level for definition titles")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(convertCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Run the analyzer over a definitions directory and write chapter Markdown files",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		path := cfg.Definitions.Path
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			path = "."
		}
		root, err := filepath.Abs(path)
		if err != nil {
			log.Fatalf("Failed to resolve definitions path: %v", err)
		}

		out := cfg.Book.OutputDir
		if outputDir != "" {
			out = outputDir
		}

		ctx := context.Background()

		fmt.Printf("📂 Exporting docs from: %s\n", root)
		runner := &luals.Runner{}
		defs, err := runner.GenerateDocs(ctx, root)
		if err != nil {
			log.Fatalf("Doc export failed: %v", err)
		}
		defs = luals.CleanDocs(root, defs)
		fmt.Printf("✅ Decoded %d definitions.\n", len(defs))

		ws, err := workspace.Build(root, defs)
		if err != nil {
			log.Fatalf("Failed to build workspace: %v", err)
		}

		printer := render.NewPrinter(render.Options{HeadingLevel: cfg.Book.HeadingLevel})
		part := book.Build(ws, printer, book.Options{
			PartTitle: cfg.Book.PartTitle,
			NavDepth:  cfg.Book.NavDepth,
		})

		written, err := writeChapters(out, part.Chapters)
		if err != nil {
			log.Fatalf("Failed to write chapters: %v", err)
		}

		fmt.Printf("🎉 Wrote %d chapters to %s (%s)\n", written, out, part.Title)
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <doc.json>",
	Short: "Render an existing doc.json export as Markdown on stdout",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read export: %v", err)
		}

		defs, err := luacats.DecodeDefinitions(data)
		if err != nil {
			log.Fatalf("Failed to decode export: %v", err)
		}

		printer := render.NewPrinter(render.Options{HeadingLevel: headingLevel})
		if _, err := os.Stdout.WriteString(printer.Print(defs)); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
	},
}

// writeChapters writes each chapter's Markdown under dir, mirroring the
// workspace layout, and recurses into sub-chapters.
func writeChapters(dir string, chapters []book.Chapter) (int, error) {
	written := 0
	for _, ch := range chapters {
		target := filepath.Join(dir, ch.Path)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return written, err
		}
		if err := os.WriteFile(target, []byte(ch.Content), 0644); err != nil {
			return written, err
		}
		written++

		n, err := writeChapters(dir, ch.SubChapters)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
