// Package types defines every cross-package data structure used by the epistle CLI.
package types

import "errors"

const (
	FormatMarkdown = "markdown"
	FormatXML      = "xml"

	HogModeFiles = "files"
	HogModeDirs  = "dirs"
	HogModeAuto  = "auto"
)

// ErrUnsupportedFormat reports an output format outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ErrTokenizerUnavailable reports that the token accounting model could not be loaded.
var ErrTokenizerUnavailable = errors.New("tokenizer unavailable")

// ScannedFile is one file discovered by a scan. Content is populated only
// when the file is neither binary nor oversized. Instances are immutable
// after the scan that produced them.
type ScannedFile struct {
	Path         string
	AbsolutePath string
	SizeBytes    int64
	IsBinary     bool
	IsOversized  bool
	Content      string
}

// HasContent reports whether the file carries inlineable text.
func (file ScannedFile) HasContent() bool {
	return !file.IsBinary && !file.IsOversized
}

// ScanResult is the outcome of a completed scan: the surviving files sorted
// by relative path and the number of entries rejected by the ignore predicate.
type ScanResult struct {
	Files        []ScannedFile
	IgnoredCount int
}

// FileTokenStat records the token count attributed to a single file.
// Binary, oversized, and empty files record zero.
type FileTokenStat struct {
	Path   string
	Tokens int
}

// HogEntry is one row of a token hog report. Directory paths carry a
// trailing slash.
type HogEntry struct {
	Path        string
	Tokens      int
	IsDirectory bool
}

// RenderOptions selects how a render invocation assembles the document.
type RenderOptions struct {
	Format        string
	RootDirectory string
	Persona       string
	Task          string
}

// RenderResult is the assembled document together with its token accounting.
// DirectoryTokens maps each directory path to the summed tokens of every
// file beneath it; the empty-string key holds the grand total.
type RenderResult struct {
	Document        string
	TotalTokens     int
	FileStats       []FileTokenStat
	DirectoryTokens map[string]int
	RedactionCount  int
}
