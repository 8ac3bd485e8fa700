package render

import (
	"path"
	"strings"
)

// languageTags maps file extensions to markdown fence language tags. Unknown
// extensions fall back to an untagged fence.
var languageTags = map[string]string{
	".go":    "go",
	".ts":    "typescript",
	".tsx":   "tsx",
	".js":    "javascript",
	".jsx":   "jsx",
	".py":    "python",
	".rb":    "ruby",
	".rs":    "rust",
	".java":  "java",
	".kt":    "kotlin",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cs":    "csharp",
	".sh":    "bash",
	".bash":  "bash",
	".sql":   "sql",
	".html":  "html",
	".css":   "css",
	".scss":  "scss",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".xml":   "xml",
	".md":    "markdown",
	".proto": "proto",
	".tf":    "hcl",
	".mod":   "go-module",
}

// languageTagForPath returns the best-effort fence language tag for a file
// path, or the empty string when no tag applies.
func languageTagForPath(filePath string) string {
	extension := strings.ToLower(path.Ext(filePath))
	return languageTags[extension]
}

// slugForPath derives the deterministic anchor slug for a file path: the
// lowercased path with every run of non-alphanumeric characters removed.
// The table of contents and the section heading share this slug verbatim.
func slugForPath(filePath string) string {
	var builder strings.Builder
	for _, character := range strings.ToLower(filePath) {
		if character >= 'a' && character <= 'z' || character >= '0' && character <= '9' {
			builder.WriteRune(character)
		}
	}
	return builder.String()
}
