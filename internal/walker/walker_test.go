package walker

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ephraim-9/epistle/internal/ignore"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content []byte) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(filepath.Dir(filePath), 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create directory for %s: %v", filePath, makeDirError)
	}
	if writeError := os.WriteFile(filePath, content, 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestScanFiltersAndClassifies verifies the scenario of one text file and one
// excluded binary image beneath src.
func TestScanFiltersAndClassifies(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "src", "a.ts"), []byte("const x=1;"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "src", "img.png"), []byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0x01})
	writeTestFile(testingHandle, filepath.Join(rootDirectory, ignore.IgnoreFileName), []byte("*.png\n"))

	scanResult, scanError := Scan(rootDirectory, nil, nil, 0)
	if scanError != nil {
		testingHandle.Fatalf("Scan failed: %v", scanError)
	}

	var contentFiles []string
	for _, scannedFile := range scanResult.Files {
		contentFiles = append(contentFiles, scannedFile.Path)
	}
	expectedFiles := []string{"src/a.ts"}
	if len(contentFiles) != len(expectedFiles) || contentFiles[0] != expectedFiles[0] {
		testingHandle.Fatalf("unexpected files: got %v want %v", contentFiles, expectedFiles)
	}
	if scanResult.Files[0].Content != "const x=1;" {
		testingHandle.Fatalf("unexpected content: %q", scanResult.Files[0].Content)
	}
	if scanResult.IgnoredCount == 0 {
		testingHandle.Fatalf("expected at least one ignored entry, got zero")
	}
}

// TestScanOversizedBoundary verifies that a file of exactly the threshold is
// inlined while one byte larger is flagged oversized without content.
func TestScanOversizedBoundary(testingHandle *testing.T) {
	const thresholdBytes = 64

	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "exact.txt"), bytes.Repeat([]byte("a"), thresholdBytes))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "larger.txt"), bytes.Repeat([]byte("a"), thresholdBytes+1))

	scanResult, scanError := Scan(rootDirectory, nil, nil, thresholdBytes)
	if scanError != nil {
		testingHandle.Fatalf("Scan failed: %v", scanError)
	}
	if len(scanResult.Files) != 2 {
		testingHandle.Fatalf("expected 2 files, got %d", len(scanResult.Files))
	}

	exactFile := scanResult.Files[0]
	largerFile := scanResult.Files[1]
	if exactFile.Path != "exact.txt" || largerFile.Path != "larger.txt" {
		testingHandle.Fatalf("unexpected ordering: %s, %s", exactFile.Path, largerFile.Path)
	}
	if exactFile.IsOversized || len(exactFile.Content) != thresholdBytes {
		testingHandle.Fatalf("expected exact.txt to be inlined, got oversized=%v contentLength=%d", exactFile.IsOversized, len(exactFile.Content))
	}
	if !largerFile.IsOversized || largerFile.Content != "" {
		testingHandle.Fatalf("expected larger.txt to be oversized with no content")
	}
}

// TestScanNullByteIsBinary verifies that a null byte anywhere classifies the
// file as binary with content omitted, regardless of size.
func TestScanNullByteIsBinary(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "data.bin"), []byte("text\x00more"))

	scanResult, scanError := Scan(rootDirectory, nil, nil, 0)
	if scanError != nil {
		testingHandle.Fatalf("Scan failed: %v", scanError)
	}
	if len(scanResult.Files) != 1 {
		testingHandle.Fatalf("expected 1 file, got %d", len(scanResult.Files))
	}
	binaryFile := scanResult.Files[0]
	if !binaryFile.IsBinary {
		testingHandle.Fatalf("expected data.bin to be classified binary")
	}
	if binaryFile.Content != "" {
		testingHandle.Fatalf("binary file must not carry content")
	}
}

// TestScanSortsByPath verifies the result ordering is path-sorted.
func TestScanSortsByPath(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b.ts"), []byte("b"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a", "z.ts"), []byte("z"))

	scanResult, scanError := Scan(rootDirectory, nil, nil, 0)
	if scanError != nil {
		testingHandle.Fatalf("Scan failed: %v", scanError)
	}
	if len(scanResult.Files) != 2 {
		testingHandle.Fatalf("expected 2 files, got %d", len(scanResult.Files))
	}
	if scanResult.Files[0].Path != "a/z.ts" || scanResult.Files[1].Path != "b.ts" {
		testingHandle.Fatalf("unexpected order: %s, %s", scanResult.Files[0].Path, scanResult.Files[1].Path)
	}
}

// TestScanSkipsBrokenSymlink verifies broken symlinks are skipped silently.
func TestScanSkipsBrokenSymlink(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "real.txt"), []byte("real"))
	if symlinkError := os.Symlink(filepath.Join(rootDirectory, "missing.txt"), filepath.Join(rootDirectory, "dangling.txt")); symlinkError != nil {
		testingHandle.Skipf("symlinks unavailable: %v", symlinkError)
	}

	scanResult, scanError := Scan(rootDirectory, nil, nil, 0)
	if scanError != nil {
		testingHandle.Fatalf("Scan failed: %v", scanError)
	}
	if len(scanResult.Files) != 1 || scanResult.Files[0].Path != "real.txt" {
		testingHandle.Fatalf("expected only real.txt, got %v", scanResult.Files)
	}
}

// TestScanResolvesFileSymlink verifies a symlink to a regular file is scanned
// under the link's own relative path.
func TestScanResolvesFileSymlink(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "target.txt"), []byte("linked content"))
	if symlinkError := os.Symlink(filepath.Join(rootDirectory, "target.txt"), filepath.Join(rootDirectory, "alias.txt")); symlinkError != nil {
		testingHandle.Skipf("symlinks unavailable: %v", symlinkError)
	}

	scanResult, scanError := Scan(rootDirectory, nil, nil, 0)
	if scanError != nil {
		testingHandle.Fatalf("Scan failed: %v", scanError)
	}
	if len(scanResult.Files) != 2 {
		testingHandle.Fatalf("expected 2 files, got %d", len(scanResult.Files))
	}
	aliasFile := scanResult.Files[0]
	if aliasFile.Path != "alias.txt" {
		testingHandle.Fatalf("expected alias.txt first, got %s", aliasFile.Path)
	}
	if aliasFile.Content != "linked content" {
		testingHandle.Fatalf("expected symlink target content, got %q", aliasFile.Content)
	}
}
