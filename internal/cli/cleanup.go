package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/Ephraim-9/epistle/internal/types"
)

const (
	// generatedDocumentMarker identifies artifacts this application wrote.
	// Files matching the artifact name pattern without the marker are left
	// alone; they belong to the user.
	generatedDocumentMarker = "<!-- generated by epistle -->"
	staleArtifactGlob       = generatedFilePrefix + "*.{md,xml}"
	errorStaleArtifactScan  = "scanning for stale artifacts: %w"
	markerProbeLineLimit    = 2
)

// stampArtifact embeds the generated-document marker into the document before
// it is written to disk. XML documents keep the declaration as their first
// line, so the marker comment goes directly after it.
func stampArtifact(document string, outputFormat string) string {
	if outputFormat == types.FormatXML {
		if newlineIndex := strings.Index(document, "\n"); newlineIndex >= 0 {
			return document[:newlineIndex+1] + generatedDocumentMarker + "\n" + document[newlineIndex+1:]
		}
	}
	return generatedDocumentMarker + "\n" + document
}

// RemoveStaleArtifacts deletes previously generated documents from the root
// directory so a renamed output never leaves an orphan behind. Only files
// carrying the generated-document marker are removed. Removal of independent
// candidates runs concurrently.
func RemoveStaleArtifacts(rootDirectory string) (int, error) {
	candidatePaths, globError := doublestar.FilepathGlob(filepath.Join(rootDirectory, staleArtifactGlob))
	if globError != nil {
		return 0, fmt.Errorf(errorStaleArtifactScan, globError)
	}

	var removedCount atomic.Int64
	removalGroup := new(errgroup.Group)
	for _, candidatePath := range candidatePaths {
		candidatePath := candidatePath
		removalGroup.Go(func() error {
			if !isGeneratedArtifact(candidatePath) {
				return nil
			}
			if removeError := os.Remove(candidatePath); removeError != nil {
				return removeError
			}
			removedCount.Add(1)
			return nil
		})
	}
	if waitError := removalGroup.Wait(); waitError != nil {
		return int(removedCount.Load()), waitError
	}
	return int(removedCount.Load()), nil
}

// isGeneratedArtifact reports whether the file carries the generated-document
// marker within its leading lines. Unreadable candidates are treated as
// foreign files.
func isGeneratedArtifact(filePath string) bool {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return false
	}
	defer fileHandle.Close()

	lineScanner := bufio.NewScanner(fileHandle)
	for lineIndex := 0; lineIndex < markerProbeLineLimit && lineScanner.Scan(); lineIndex++ {
		if strings.TrimSpace(lineScanner.Text()) == generatedDocumentMarker {
			return true
		}
	}
	return false
}
