package tokens

import (
	"testing"

	"github.com/Ephraim-9/epistle/internal/redact"
	"github.com/Ephraim-9/epistle/internal/types"
	"github.com/Ephraim-9/epistle/internal/utils"
)

type runeCounter struct{}

func (runeCounter) Name() string { return "stub" }

func (runeCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

func accountFiles(testingHandle *testing.T, scannedFiles []types.ScannedFile) Accounting {
	testingHandle.Helper()
	overlay := redact.Apply(scannedFiles)
	accounting, accountError := Account(scannedFiles, overlay, runeCounter{})
	if accountError != nil {
		testingHandle.Fatalf("Account failed: %v", accountError)
	}
	return accounting
}

// TestAccountAncestorAggregation verifies every proper path prefix of a file
// accumulates that file's tokens and the empty key holds the grand total.
func TestAccountAncestorAggregation(testingHandle *testing.T) {
	accounting := accountFiles(testingHandle, []types.ScannedFile{
		{Path: "a/b/c.txt", Content: "12345"},
		{Path: "a/d.txt", Content: "123"},
		{Path: "root.txt", Content: "12"},
	})

	expectedDirectoryTokens := map[string]int{
		"":    10,
		"a":   8,
		"a/b": 5,
	}
	for directoryPath, expectedTokens := range expectedDirectoryTokens {
		if accounting.DirectoryTokens[directoryPath] != expectedTokens {
			testingHandle.Errorf("directory %q: got %d tokens, want %d", directoryPath, accounting.DirectoryTokens[directoryPath], expectedTokens)
		}
	}
	if accounting.TotalTokens != 10 {
		testingHandle.Errorf("grand total: got %d, want 10", accounting.TotalTokens)
	}
}

// TestAccountDepthOnePlusRootlessEqualsTotal verifies that depth-1 directory
// aggregates plus rootless file counts sum to the grand total.
func TestAccountDepthOnePlusRootlessEqualsTotal(testingHandle *testing.T) {
	scannedFiles := []types.ScannedFile{
		{Path: "a/one.txt", Content: "aaaa"},
		{Path: "a/x/two.txt", Content: "bbb"},
		{Path: "b/three.txt", Content: "cc"},
		{Path: "four.txt", Content: "d"},
		{Path: "five.txt", Content: "ee"},
	}
	accounting := accountFiles(testingHandle, scannedFiles)

	depthOneSum := 0
	for directoryPath, directoryTokens := range accounting.DirectoryTokens {
		if utils.SegmentDepth(directoryPath) == 1 {
			depthOneSum += directoryTokens
		}
	}
	rootlessSum := 0
	for _, fileStat := range accounting.FileStats {
		if utils.SegmentDepth(fileStat.Path) == 1 {
			rootlessSum += fileStat.Tokens
		}
	}

	if depthOneSum+rootlessSum != accounting.DirectoryTokens[""] {
		testingHandle.Fatalf("depth-1 sum %d + rootless sum %d != grand total %d", depthOneSum, rootlessSum, accounting.DirectoryTokens[""])
	}
}

// TestAccountZeroForNonInlineable verifies binary, oversized, and empty files
// contribute zero tokens.
func TestAccountZeroForNonInlineable(testingHandle *testing.T) {
	accounting := accountFiles(testingHandle, []types.ScannedFile{
		{Path: "bin.dat", IsBinary: true, SizeBytes: 99},
		{Path: "huge.txt", IsOversized: true, SizeBytes: 1 << 30},
		{Path: "empty.txt", Content: ""},
	})

	for _, fileStat := range accounting.FileStats {
		if fileStat.Tokens != 0 {
			testingHandle.Errorf("file %s: expected 0 tokens, got %d", fileStat.Path, fileStat.Tokens)
		}
	}
	if accounting.TotalTokens != 0 {
		testingHandle.Errorf("expected grand total 0, got %d", accounting.TotalTokens)
	}
}

// TestAccountCountsRedactedText verifies counting runs over the overlay, not
// the original content.
func TestAccountCountsRedactedText(testingHandle *testing.T) {
	secretContent := "sk-abcdefghijklmnop1234"
	scannedFiles := []types.ScannedFile{{Path: "env.txt", Content: secretContent}}
	accounting := accountFiles(testingHandle, scannedFiles)

	if accounting.FileStats[0].Tokens != len([]rune(redact.Placeholder)) {
		testingHandle.Fatalf("expected count over placeholder text %d, got %d", len([]rune(redact.Placeholder)), accounting.FileStats[0].Tokens)
	}
}
