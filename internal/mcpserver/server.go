// Package mcpserver exposes PDF text extraction as a Model Context Protocol
// tool.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tsawler/pdftext"
	"github.com/tsawler/pdftext/export"
	"github.com/tsawler/pdftext/format"
)

// ToolName is the name of the extraction tool.
const ToolName = "extract_pdf_text"

// Server is an MCP server with the extraction tool registered.
type Server struct {
	server    *sdkmcp.Server
	extractor *pdftext.Extractor
	logger    *slog.Logger
}

// New creates a server whose tool uses ext, with its options as the
// defaults for arguments the client leaves out.
func New(name, version string, ext *pdftext.Extractor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		server: sdkmcp.NewServer(&sdkmcp.Implementation{
			Name:    name,
			Version: version,
		}, nil),
		extractor: ext.WithLogger(logger),
		logger:    logger,
	}
	s.server.AddTool(extractTool(), s.handleExtract)
	return s
}

func extractTool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        ToolName,
		Description: "Extract the text of a PDF file on the local disk, with page markers between pages.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Path of the PDF file",
				},
				"preserve_formatting": map[string]any{
					"type":        "boolean",
					"description": "Keep line breaks and column gaps",
				},
				"combine_text_items": map[string]any{
					"type":        "boolean",
					"description": "Insert spaces between adjacent text items",
				},
				"include_metadata": map[string]any{
					"type":        "boolean",
					"description": "Read title, author and dates (json output only)",
				},
				"format": map[string]any{
					"type":        "string",
					"description": "Output format",
					"enum":        []any{"text", "json", "html"},
				},
			},
			"required": []any{"path"},
		},
	}
}

type extractArgs struct {
	Path               string `json:"path"`
	PreserveFormatting *bool  `json:"preserve_formatting,omitempty"`
	CombineTextItems   *bool  `json:"combine_text_items,omitempty"`
	IncludeMetadata    *bool  `json:"include_metadata,omitempty"`
	Format             string `json:"format,omitempty"`
}

// options applies the arguments the client set on top of base.
func (a extractArgs) options(base pdftext.ExtractOptions) pdftext.ExtractOptions {
	if a.PreserveFormatting != nil {
		base.PreserveFormatting = *a.PreserveFormatting
	}
	if a.CombineTextItems != nil {
		base.CombineTextItems = *a.CombineTextItems
	}
	if a.IncludeMetadata != nil {
		base.IncludeMetadata = *a.IncludeMetadata
	}
	return base
}

func (s *Server) handleExtract(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
	var args extractArgs
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Path == "" {
		return errorResult("path is required"), nil
	}

	out := format.Text
	if args.Format != "" {
		out = format.Parse(args.Format)
		if out != format.Text && out != format.JSON && out != format.HTML {
			return errorResult(fmt.Sprintf("unsupported format %q", args.Format)), nil
		}
	}

	f, err := pdftext.FileFromPath(args.Path)
	if err != nil {
		s.logger.Warn("cannot open file", "path", args.Path, "error", err)
		return errorResult(fmt.Sprintf("cannot open %s", filepath.Base(args.Path))), nil
	}

	opts := args.options(s.extractor.Options())
	if out == format.Text {
		opts.IncludeMetadata = false
	}

	ext := s.extractor.WithOptions(opts)
	doc, err := ext.ExtractDocumentWithProgress(f, nil)
	if err != nil {
		return errorResult(ext.SafeMessage(err)), nil
	}

	var buf bytes.Buffer
	if out == format.Text {
		buf.WriteString(doc.Text)
	} else if err := export.Write(&buf, out, doc); err != nil {
		return errorResult(fmt.Sprintf("render %s: %v", out, err)), nil
	}

	content := []sdkmcp.Content{&sdkmcp.TextContent{Text: buf.String()}}
	if out == format.Text && len(doc.Warnings) > 0 {
		content = append(content, &sdkmcp.TextContent{
			Text: "Warnings: " + pdftext.FormatWarnings(doc.Warnings),
		})
	}
	return &sdkmcp.CallToolResult{Content: content}, nil
}

func errorResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// ServeStdio runs the server over stdin and stdout until ctx is done or
// the client disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &sdkmcp.StdioTransport{})
}

// Server returns the underlying SDK server.
func (s *Server) Server() *sdkmcp.Server {
	return s.server
}
