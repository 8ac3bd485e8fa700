// Package render assembles the final packed document from a scanned-file
// snapshot: tree view, metadata, persona preamble, per-file sections, and an
// optional task block, in markdown or tagged-text form.
package render

import (
	"fmt"

	"github.com/Ephraim-9/epistle/internal/redact"
	"github.com/Ephraim-9/epistle/internal/tokens"
	"github.com/Ephraim-9/epistle/internal/tree"
	"github.com/Ephraim-9/epistle/internal/types"
)

const errorUnsupportedFormatFormat = "%w: %q"

// documentMetadata feeds the metadata block of both output formats.
type documentMetadata struct {
	RootDirectory  string
	FileCount      int
	TotalTokens    int
	Technologies   []string
	RedactionCount int
	HasPendingTask bool
}

// Renderer assembles documents using one token counter per process.
type Renderer struct {
	Counter tokens.Counter
}

// NewRenderer constructs a Renderer with the fixed tokenizer profile loaded.
func NewRenderer() (*Renderer, error) {
	counter, counterError := tokens.NewCounter()
	if counterError != nil {
		return nil, counterError
	}
	return &Renderer{Counter: counter}, nil
}

// Render produces the final document plus token accounting for the given
// snapshot. The format is validated before any other work; redaction runs
// exactly once and every downstream consumer reads the same overlay.
func (renderer *Renderer) Render(scannedFiles []types.ScannedFile, options types.RenderOptions) (types.RenderResult, error) {
	if options.Format != types.FormatMarkdown && options.Format != types.FormatXML {
		return types.RenderResult{}, fmt.Errorf(errorUnsupportedFormatFormat, types.ErrUnsupportedFormat, options.Format)
	}
	persona, personaError := resolvePersona(options.Persona)
	if personaError != nil {
		return types.RenderResult{}, personaError
	}

	overlay := redact.Apply(scannedFiles)
	accounting, accountError := tokens.Account(scannedFiles, overlay, renderer.Counter)
	if accountError != nil {
		return types.RenderResult{}, accountError
	}
	treeText := tree.RenderText(tree.Build(scannedFiles))

	metadata := documentMetadata{
		RootDirectory:  options.RootDirectory,
		FileCount:      len(scannedFiles),
		TotalTokens:    accounting.TotalTokens,
		Technologies:   detectTechnologies(scannedFiles),
		RedactionCount: overlay.MatchCount(),
		HasPendingTask: options.Task != "",
	}

	var document string
	if options.Format == types.FormatMarkdown {
		document = renderMarkdown(persona, treeText, metadata, scannedFiles, overlay, options.Task)
	} else {
		document = renderXML(persona, treeText, metadata, scannedFiles, overlay, options.Task)
	}

	return types.RenderResult{
		Document:        document,
		TotalTokens:     accounting.TotalTokens,
		FileStats:       accounting.FileStats,
		DirectoryTokens: accounting.DirectoryTokens,
		RedactionCount:  overlay.MatchCount(),
	}, nil
}
