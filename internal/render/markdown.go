package render

import (
	"fmt"
	"strings"

	"github.com/Ephraim-9/epistle/internal/redact"
	"github.com/Ephraim-9/epistle/internal/types"
)

const (
	treeHeading     = "## Directory Tree"
	metadataHeading = "## Metadata"
	contentsHeading = "## Table of Contents"
	taskHeading     = "## Task"

	binaryPlaceholder    = "_Binary file; content omitted._"
	oversizedPlaceholder = "_Oversized file; content omitted._"
	emptyPlaceholder     = "_Empty file._"

	noRedactionsLabel = "none"
)

// renderMarkdown assembles the markdown document in the fixed block order:
// persona preamble, directory tree, metadata, table of contents, one section
// per file, optional trailing task block.
func renderMarkdown(persona *Persona, treeText string, metadata documentMetadata, scannedFiles []types.ScannedFile, overlay *redact.Overlay, task string) string {
	var builder strings.Builder

	if persona != nil {
		builder.WriteString(persona.Preamble)
		builder.WriteString("\n\n")
	}

	builder.WriteString(treeHeading)
	builder.WriteString("\n\n```\n")
	builder.WriteString(treeText)
	builder.WriteString("```\n\n")

	writeMarkdownMetadata(&builder, metadata)
	writeMarkdownContents(&builder, scannedFiles)

	for _, scannedFile := range scannedFiles {
		writeMarkdownFileSection(&builder, scannedFile, overlay)
	}

	if task != "" {
		builder.WriteString(taskHeading)
		builder.WriteString("\n\n")
		builder.WriteString(task)
		builder.WriteString("\n")
	}

	return builder.String()
}

func writeMarkdownMetadata(builder *strings.Builder, metadata documentMetadata) {
	builder.WriteString(metadataHeading)
	builder.WriteString("\n\n")
	fmt.Fprintf(builder, "- Root: %s\n", metadata.RootDirectory)
	fmt.Fprintf(builder, "- Files: %d\n", metadata.FileCount)
	fmt.Fprintf(builder, "- Total tokens: %d\n", metadata.TotalTokens)
	if len(metadata.Technologies) > 0 {
		fmt.Fprintf(builder, "- Technologies: %s\n", strings.Join(metadata.Technologies, ", "))
	}
	if metadata.RedactionCount > 0 {
		fmt.Fprintf(builder, "- Redactions: %d\n", metadata.RedactionCount)
	} else {
		fmt.Fprintf(builder, "- Redactions: %s\n", noRedactionsLabel)
	}
	if metadata.HasPendingTask {
		builder.WriteString("- Pending task: yes\n")
	}
	builder.WriteString("\n")
}

// writeMarkdownContents emits the table of contents for inlineable files.
// Each entry anchors to the slug shared with the file's section heading.
func writeMarkdownContents(builder *strings.Builder, scannedFiles []types.ScannedFile) {
	var inlineableFiles []types.ScannedFile
	for _, scannedFile := range scannedFiles {
		if scannedFile.HasContent() {
			inlineableFiles = append(inlineableFiles, scannedFile)
		}
	}
	if len(inlineableFiles) == 0 {
		return
	}

	builder.WriteString(contentsHeading)
	builder.WriteString("\n\n")
	for _, inlineableFile := range inlineableFiles {
		fmt.Fprintf(builder, "- [%s](#%s)\n", inlineableFile.Path, slugForPath(inlineableFile.Path))
	}
	builder.WriteString("\n")
}

func writeMarkdownFileSection(builder *strings.Builder, scannedFile types.ScannedFile, overlay *redact.Overlay) {
	fmt.Fprintf(builder, "<a id=\"%s\"></a>\n\n## %s\n\n", slugForPath(scannedFile.Path), scannedFile.Path)

	switch {
	case scannedFile.IsBinary:
		builder.WriteString(binaryPlaceholder)
		builder.WriteString("\n\n")
	case scannedFile.IsOversized:
		builder.WriteString(oversizedPlaceholder)
		builder.WriteString("\n\n")
	default:
		redactedText, _ := overlay.Text(scannedFile.Path)
		if redactedText == "" {
			builder.WriteString(emptyPlaceholder)
			builder.WriteString("\n\n")
			return
		}
		builder.WriteString("```")
		builder.WriteString(languageTagForPath(scannedFile.Path))
		builder.WriteString("\n")
		builder.WriteString(redactedText)
		if !strings.HasSuffix(redactedText, "\n") {
			builder.WriteString("\n")
		}
		builder.WriteString("```\n\n")
	}
}
