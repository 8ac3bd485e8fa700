package render

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/Ephraim-9/epistle/internal/redact"
	"github.com/Ephraim-9/epistle/internal/types"
	"github.com/Ephraim-9/epistle/internal/utils"
)

const (
	statusBinary    = "binary"
	statusOversized = "oversized"
	statusEmpty     = "empty"

	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
	// cdataSplit reopens a CDATA section around a literal "]]>" in the body.
	cdataSplit = "]]]]><![CDATA[>"
)

// renderXML assembles the tagged-text document in the same fixed block order
// as markdown. Attribute values are escaped; file bodies and other large
// blocks are wrapped in CDATA so their raw text needs no escaping.
func renderXML(persona *Persona, treeText string, metadata documentMetadata, scannedFiles []types.ScannedFile, overlay *redact.Overlay, task string) string {
	var builder strings.Builder

	builder.WriteString(xml.Header)
	fmt.Fprintf(&builder, `<context root="%s" fileCount="%d" totalTokens="%d" redactions="%d"`,
		escapeXMLAttribute(metadata.RootDirectory), metadata.FileCount, metadata.TotalTokens, metadata.RedactionCount)
	if metadata.HasPendingTask {
		builder.WriteString(" pendingTask=\"true\"")
	}
	builder.WriteString(">\n")

	if persona != nil {
		fmt.Fprintf(&builder, "  <persona name=\"%s\">%s</persona>\n", escapeXMLAttribute(persona.Name), escapeXMLText(persona.Preamble))
	}

	builder.WriteString("  <tree>")
	builder.WriteString(wrapCDATA("\n" + treeText))
	builder.WriteString("</tree>\n")

	if len(metadata.Technologies) > 0 {
		builder.WriteString("  <technologies>\n")
		for _, technologyName := range metadata.Technologies {
			fmt.Fprintf(&builder, "    <technology>%s</technology>\n", escapeXMLText(technologyName))
		}
		builder.WriteString("  </technologies>\n")
	}

	builder.WriteString("  <files>\n")
	for _, scannedFile := range scannedFiles {
		writeXMLFileElement(&builder, scannedFile, overlay)
	}
	builder.WriteString("  </files>\n")

	if task != "" {
		builder.WriteString("  <task>")
		builder.WriteString(wrapCDATA(task))
		builder.WriteString("</task>\n")
	}

	builder.WriteString("</context>\n")
	return builder.String()
}

func writeXMLFileElement(builder *strings.Builder, scannedFile types.ScannedFile, overlay *redact.Overlay) {
	escapedPath := escapeXMLAttribute(scannedFile.Path)
	sizeLabel := utils.FormatFileSize(scannedFile.SizeBytes)

	switch {
	case scannedFile.IsBinary:
		fmt.Fprintf(builder, "    <file path=\"%s\" size=\"%s\" status=\"%s\"/>\n", escapedPath, sizeLabel, statusBinary)
	case scannedFile.IsOversized:
		fmt.Fprintf(builder, "    <file path=\"%s\" size=\"%s\" status=\"%s\"/>\n", escapedPath, sizeLabel, statusOversized)
	default:
		redactedText, _ := overlay.Text(scannedFile.Path)
		if redactedText == "" {
			fmt.Fprintf(builder, "    <file path=\"%s\" size=\"%s\" status=\"%s\"/>\n", escapedPath, sizeLabel, statusEmpty)
			return
		}
		fmt.Fprintf(builder, "    <file path=\"%s\" size=\"%s\">", escapedPath, sizeLabel)
		builder.WriteString(wrapCDATA(redactedText))
		builder.WriteString("</file>\n")
	}
}

// escapeXMLAttribute escapes the characters that cannot appear literally in
// an attribute value: ampersand, angle brackets, and both quote kinds.
func escapeXMLAttribute(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}

// escapeXMLText escapes element body text that is not wrapped in CDATA.
func escapeXMLText(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(value)
}

// wrapCDATA wraps raw text in a CDATA section, splitting around any literal
// CDATA terminator inside the body.
func wrapCDATA(rawText string) string {
	return cdataOpen + strings.ReplaceAll(rawText, cdataClose, cdataSplit) + cdataClose
}
