// Package redact replaces secret-shaped substrings in scanned file content
// with a fixed placeholder before any downstream consumer sees the text.
package redact

import (
	"regexp"

	"github.com/Ephraim-9/epistle/internal/types"
)

// Placeholder replaces every secret match. It deliberately matches none of
// the secret patterns, so redaction is idempotent.
const Placeholder = "[REDACTED]"

// secretPatterns is the fixed ordered list of heuristic secret shapes. This
// is best-effort budget hygiene, not a security scanner. More specific
// prefixes precede the generic ones they would otherwise shadow.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{16,}`),
	regexp.MustCompile(`sk-[A-Za-z0-9]{16,}`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36}`),
	regexp.MustCompile(`xox[baprs]-[A-Za-z0-9-]{10,}`),
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}`),
}

// Overlay holds redacted text keyed by file path. The original scanned files
// are never mutated; every consumer reads the same overlay so redaction
// happens exactly once per file per render.
type Overlay struct {
	redactedTexts map[string]string
	matchCount    int
}

// Apply scans every inlineable file against the secret patterns and builds
// the overlay. Binary and oversized files carry no content and are untouched.
func Apply(scannedFiles []types.ScannedFile) *Overlay {
	overlay := &Overlay{redactedTexts: make(map[string]string, len(scannedFiles))}
	for _, scannedFile := range scannedFiles {
		if !scannedFile.HasContent() {
			continue
		}
		overlay.redactedTexts[scannedFile.Path] = overlay.redactText(scannedFile.Content)
	}
	return overlay
}

// Text returns the redacted text for path. The second result is false for
// paths without overlay entries (binary or oversized files).
func (overlay *Overlay) Text(path string) (string, bool) {
	redactedText, present := overlay.redactedTexts[path]
	return redactedText, present
}

// MatchCount returns the number of secret matches replaced across all files.
func (overlay *Overlay) MatchCount() int {
	return overlay.matchCount
}

func (overlay *Overlay) redactText(content string) string {
	redactedContent := content
	for _, secretPattern := range secretPatterns {
		redactedContent = secretPattern.ReplaceAllStringFunc(redactedContent, func(string) string {
			overlay.matchCount++
			return Placeholder
		})
	}
	return redactedContent
}
