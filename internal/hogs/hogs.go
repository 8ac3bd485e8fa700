// Package hogs ranks the top token contributors of a scan. The report is
// read-only: it never changes which files appear in the rendered document.
package hogs

import (
	"sort"

	"github.com/Ephraim-9/epistle/internal/tokens"
	"github.com/Ephraim-9/epistle/internal/types"
	"github.com/Ephraim-9/epistle/internal/utils"
)

const (
	topFileLimit      = 5
	topDirectoryLimit = 5
	autoFileLimit     = 3
	autoDirLimit      = 2
	defaultAutoDepth  = 1

	directorySuffix = "/"
)

// Analyze returns the hog report for the requested mode. Ties keep the
// stable order of the path-sorted input stats; no secondary tie-break is
// applied.
func Analyze(accounting tokens.Accounting, mode string, depth int) []types.HogEntry {
	switch mode {
	case types.HogModeFiles:
		return topFiles(accounting, topFileLimit)
	case types.HogModeDirs:
		return topDirectories(accounting, depth, topDirectoryLimit)
	case types.HogModeAuto:
		entries := topFiles(accounting, autoFileLimit)
		entries = append(entries, topDirectories(accounting, shallowestNonZeroDepth(accounting), autoDirLimit)...)
		return entries
	default:
		return nil
	}
}

// topFiles ranks files by descending token count, excluding zero-token files.
func topFiles(accounting tokens.Accounting, limit int) []types.HogEntry {
	var entries []types.HogEntry
	for _, fileStat := range accounting.FileStats {
		if fileStat.Tokens == 0 {
			continue
		}
		entries = append(entries, types.HogEntry{Path: fileStat.Path, Tokens: fileStat.Tokens})
	}
	sort.SliceStable(entries, func(firstIndex, secondIndex int) bool {
		return entries[firstIndex].Tokens > entries[secondIndex].Tokens
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// topDirectories ranks directories whose path has exactly depth non-empty
// segments. The synthetic root and zero-token directories never appear.
func topDirectories(accounting tokens.Accounting, depth int, limit int) []types.HogEntry {
	if depth < 1 {
		depth = defaultAutoDepth
	}

	directoryPaths := make([]string, 0, len(accounting.DirectoryTokens))
	for directoryPath := range accounting.DirectoryTokens {
		if directoryPath == "" {
			continue
		}
		if utils.SegmentDepth(directoryPath) != depth {
			continue
		}
		if accounting.DirectoryTokens[directoryPath] == 0 {
			continue
		}
		directoryPaths = append(directoryPaths, directoryPath)
	}
	sort.Strings(directoryPaths)

	entries := make([]types.HogEntry, 0, len(directoryPaths))
	for _, directoryPath := range directoryPaths {
		entries = append(entries, types.HogEntry{
			Path:        directoryPath + directorySuffix,
			Tokens:      accounting.DirectoryTokens[directoryPath],
			IsDirectory: true,
		})
	}
	sort.SliceStable(entries, func(firstIndex, secondIndex int) bool {
		return entries[firstIndex].Tokens > entries[secondIndex].Tokens
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// shallowestNonZeroDepth finds the smallest directory depth carrying a
// non-zero aggregate, defaulting to depth 1 when none exists.
func shallowestNonZeroDepth(accounting tokens.Accounting) int {
	shallowestDepth := 0
	for directoryPath, directoryTokens := range accounting.DirectoryTokens {
		if directoryPath == "" || directoryTokens == 0 {
			continue
		}
		directoryDepth := utils.SegmentDepth(directoryPath)
		if shallowestDepth == 0 || directoryDepth < shallowestDepth {
			shallowestDepth = directoryDepth
		}
	}
	if shallowestDepth == 0 {
		return defaultAutoDepth
	}
	return shallowestDepth
}
