// Package walker enumerates and classifies the files beneath a scan root.
package walker

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/Ephraim-9/epistle/internal/ignore"
	"github.com/Ephraim-9/epistle/internal/types"
	"github.com/Ephraim-9/epistle/internal/utils"
)

// DefaultMaxFileSizeBytes is the inline-size threshold applied when the
// caller does not supply one.
const DefaultMaxFileSizeBytes = 100 * 1024

const (
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	errorScanWalkFormat     = "scanning %s: %w"
	errorStatFileFormat     = "stat failed for %s: %w"
	errorReadFileFormat     = "reading %s: %w"
)

// Scan walks rootPath sequentially, applies the ignore predicate built from
// the pattern files at the root plus the caller patterns, and classifies
// every surviving file as binary, oversized, or inlineable text. The result
// is sorted by relative path. Any stat or read failure on a file that passed
// filtering aborts the scan with a single aggregate error.
func Scan(rootPath string, excludePatterns []string, forceIncludePatterns []string, maxFileSizeBytes int64) (types.ScanResult, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return types.ScanResult{}, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	if maxFileSizeBytes <= 0 {
		maxFileSizeBytes = DefaultMaxFileSizeBytes
	}

	resolver := ignore.NewResolver(cleanedRootPath, excludePatterns, forceIncludePatterns)

	var scannedFiles []types.ScannedFile
	ignoredCount := 0

	walkError := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			return fmt.Errorf(errorScanWalkFormat, walkedPath, accessError)
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRootPath)
		if relativePath == "." {
			return nil
		}

		if resolver.IsIgnored(relativePath) {
			ignoredCount++
			if directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() {
			return nil
		}

		resolvedPath := walkedPath
		if directoryEntry.Type()&fs.ModeSymlink != 0 {
			targetPath, resolveError := filepath.EvalSymlinks(walkedPath)
			if resolveError != nil {
				// Broken symlink: skipped silently, never retried.
				return nil
			}
			targetInfo, targetStatError := os.Stat(targetPath)
			if targetStatError != nil || !targetInfo.Mode().IsRegular() {
				return nil
			}
			resolvedPath = targetPath
		} else if !directoryEntry.Type().IsRegular() {
			return nil
		}

		scannedFile, classifyError := classifyFile(relativePath, resolvedPath, maxFileSizeBytes)
		if classifyError != nil {
			return classifyError
		}
		scannedFiles = append(scannedFiles, scannedFile)
		return nil
	})
	if walkError != nil {
		return types.ScanResult{}, fmt.Errorf(errorScanWalkFormat, rootPath, walkError)
	}

	sort.Slice(scannedFiles, func(firstIndex, secondIndex int) bool {
		return scannedFiles[firstIndex].Path < scannedFiles[secondIndex].Path
	})

	return types.ScanResult{Files: scannedFiles, IgnoredCount: ignoredCount}, nil
}

// classifyFile stats, sniffs, and (when inlineable) fully reads one file.
func classifyFile(relativePath string, absolutePath string, maxFileSizeBytes int64) (types.ScannedFile, error) {
	fileInfo, statError := os.Stat(absolutePath)
	if statError != nil {
		return types.ScannedFile{}, fmt.Errorf(errorStatFileFormat, absolutePath, statError)
	}

	scannedFile := types.ScannedFile{
		Path:         relativePath,
		AbsolutePath: absolutePath,
		SizeBytes:    fileInfo.Size(),
	}

	prefix, sniffError := readSniffPrefix(absolutePath)
	if sniffError != nil {
		return types.ScannedFile{}, fmt.Errorf(errorReadFileFormat, absolutePath, sniffError)
	}
	if utils.IsBinary(prefix) {
		scannedFile.IsBinary = true
		return scannedFile, nil
	}

	if fileInfo.Size() > maxFileSizeBytes {
		scannedFile.IsOversized = true
		return scannedFile, nil
	}

	fileBytes, readError := os.ReadFile(absolutePath)
	if readError != nil {
		return types.ScannedFile{}, fmt.Errorf(errorReadFileFormat, absolutePath, readError)
	}
	// The sniff only covers a prefix; a null byte later in a small file
	// still classifies it as binary and discards the content.
	if utils.IsBinary(fileBytes) {
		scannedFile.IsBinary = true
		return scannedFile, nil
	}
	scannedFile.Content = string(fileBytes)
	return scannedFile, nil
}

// readSniffPrefix reads up to utils.SniffLength bytes from the file at path.
func readSniffPrefix(absolutePath string) ([]byte, error) {
	fileHandle, openError := os.Open(absolutePath)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()

	buffer := make([]byte, utils.SniffLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return nil, readError
	}
	return buffer[:bytesRead], nil
}
