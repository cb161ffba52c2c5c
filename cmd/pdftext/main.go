// Command pdftext extracts the text of up to ten PDF files and writes it as
// plain text, HTML or JSON. With -mcp it serves the same extraction as an
// MCP tool over stdin and stdout instead.
//
// Usage:
//
//	pdftext [flags] file.pdf [file.pdf ...]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/tsawler/pdftext"
	"github.com/tsawler/pdftext/export"
	"github.com/tsawler/pdftext/format"
	"github.com/tsawler/pdftext/internal/config"
	"github.com/tsawler/pdftext/internal/mcpserver"
	"github.com/tsawler/pdftext/model"
	"github.com/tsawler/pdftext/reader"
	"github.com/tsawler/pdftext/validate"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit: 0 on success, 1 when any file
// failed and 2 for usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pdftext", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML configuration file")
	outFormat := fs.String("format", "", "output format: text, html or json")
	outDir := fs.String("out", "", "write one output file per input into this directory")
	password := fs.String("password", "", "password for encrypted documents")
	noMetadata := fs.Bool("no-metadata", false, "do not read document metadata")
	quiet := fs.Bool("quiet", false, "do not print progress and statistics")
	serveMCP := fs.Bool("mcp", false, "serve the "+mcpserver.ToolName+" tool over stdio")
	showVersion := fs.Bool("version", false, "print the version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pdftext [flags] file.pdf [file.pdf ...]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, "pdftext", version)
		return 0
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(stderr, "pdftext:", err)
			return 2
		}
		cfg = loaded
	}

	if *outFormat != "" {
		cfg.Output.Format = *outFormat
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *password != "" {
		cfg.Extraction.Password = *password
	}
	if *noMetadata {
		cfg.Extraction.IncludeMetadata = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "pdftext:", err)
		return 2
	}

	logger := cfg.Log.NewLogger(stderr)
	ext := pdftext.New(
		pdftext.ReaderSource(reader.Options{Password: cfg.Extraction.Password}),
		pdftext.WithLogger(logger),
		pdftext.WithExtractOptions(cfg.Extraction.ExtractOptions),
	)

	if *serveMCP {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger.Info("serving MCP over stdio", "tool", mcpserver.ToolName)
		if err := mcpserver.New("pdftext", version, ext, logger).ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(stderr, "pdftext:", err)
			return 1
		}
		return 0
	}

	paths := fs.Args()
	if len(paths) == 0 {
		fs.Usage()
		return 2
	}
	if err := validate.Batch(len(paths)); err != nil {
		fmt.Fprintln(stderr, "pdftext:", err)
		return 2
	}

	failures := 0
	files := make([]*pdftext.File, 0, len(paths))
	for _, p := range paths {
		f, err := pdftext.FileFromPath(p)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", p, err)
			failures++
			continue
		}
		files = append(files, f)
	}

	var onProgress pdftext.BatchProgressFunc
	if !*quiet {
		onProgress = func(index int, name string, percent float64, status string) {
			fmt.Fprintf(stderr, "\r[%d/%d] %3.0f%% %-50.50s", index+1, len(files), percent, name+": "+status)
		}
	}

	results, err := ext.ExtractBatch(files, onProgress)
	if onProgress != nil && len(files) > 0 {
		fmt.Fprintln(stderr)
	}
	if err != nil {
		fmt.Fprintln(stderr, "pdftext:", ext.SafeMessage(err))
		return 2
	}

	w := &writer{
		format: cfg.Output.OutputFormat(),
		dir:    cfg.Output.Dir,
		stdout: stdout,
		many:   len(results) > 1,
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stderr, "%s: %s\n", r.File, ext.SafeMessage(r.Err))
			failures++
			continue
		}

		if err := w.write(r.File, r.Document); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", r.File, err)
			failures++
			continue
		}

		if !*quiet {
			printSummary(stderr, r.File, r.Document)
		}
	}

	if failures > 0 {
		return 1
	}
	return 0
}

// writer sends each document to stdout or to a file in dir.
type writer struct {
	format format.Format
	dir    string
	stdout io.Writer
	many   bool
	wrote  bool
}

func (w *writer) write(name string, doc *model.Document) error {
	if w.dir == "" {
		if w.many && w.format == format.Text {
			if w.wrote {
				fmt.Fprintln(w.stdout)
			}
			fmt.Fprintf(w.stdout, "==> %s <==\n", name)
		}
		w.wrote = true
		return export.Write(w.stdout, w.format, doc)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	out, err := os.Create(filepath.Join(w.dir, base+w.format.Extension()))
	if err != nil {
		return err
	}
	if err := export.Write(out, w.format, doc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func printSummary(w io.Writer, name string, doc *model.Document) {
	stats := doc.Stats()
	fmt.Fprintf(w, "%s: %d pages, %d words, %d characters", name, stats.Pages, stats.Words, stats.Characters)
	if failed := doc.FailedPages(); len(failed) > 0 {
		fmt.Fprintf(w, ", failed pages %v", failed)
	}
	fmt.Fprintln(w)
	if len(doc.Warnings) > 0 {
		fmt.Fprintf(w, "%s: warnings: %s\n", name, pdftext.FormatWarnings(doc.Warnings))
	}
}
