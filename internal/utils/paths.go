// Package utils contains general helper functions used across the epistle tool.
package utils

import (
	"path/filepath"
	"strings"
)

const pathSegmentSeparator = "/"

// RelativePathOrSelf calculates the forward-slash relative path from root to
// fullPath. Returns the cleaned fullPath if relative calculation fails and "."
// if both resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relativeError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativeError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// PathSegments splits a forward-slash path into its non-empty segments.
func PathSegments(path string) []string {
	trimmedPath := strings.Trim(path, pathSegmentSeparator)
	if trimmedPath == "" {
		return nil
	}
	return strings.Split(trimmedPath, pathSegmentSeparator)
}

// SegmentDepth returns the number of non-empty segments in a forward-slash path.
func SegmentDepth(path string) int {
	return len(PathSegments(path))
}

// AncestorDirectories returns every proper directory prefix of a forward-slash
// file path, shallowest first, excluding the synthetic root. For "a/b/c.txt"
// it returns ["a", "a/b"].
func AncestorDirectories(path string) []string {
	segments := PathSegments(path)
	if len(segments) < 2 {
		return nil
	}
	ancestors := make([]string, 0, len(segments)-1)
	for segmentIndex := 1; segmentIndex < len(segments); segmentIndex++ {
		ancestors = append(ancestors, strings.Join(segments[:segmentIndex], pathSegmentSeparator))
	}
	return ancestors
}
