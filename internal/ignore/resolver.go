// Package ignore merges ignore-file patterns, caller excludes, and
// force-include overrides into a single ignore predicate.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

const (
	// IgnoreFileName is the name of the project's own ignore file.
	IgnoreFileName = ".epistleignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"

	commentPrefix  = "#"
	negationPrefix = "!"
)

// builtinExclusions are always evaluated first so later pattern sources can
// override them. Version-control metadata, build output, lockfiles, and
// common image formats never belong in a packed document by default.
var builtinExclusions = []string{
	".git/",
	".svn/",
	".hg/",
	"dist/",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"*.png",
	"*.jpg",
	"*.jpeg",
	"*.gif",
	"*.ico",
	"*.webp",
	"*.bmp",
}

// Resolver evaluates whether a root-relative path is excluded from a scan.
// Rules are ordered and negation-aware: the last matching rule wins.
type Resolver struct {
	matcher *gitignore.GitIgnore
}

// NewResolver combines built-in exclusions, patterns from the two
// convention-named ignore files at rootPath, caller exclude patterns, and
// caller force-include patterns (applied last as negations) into one
// predicate. Unreadable pattern files contribute zero patterns.
func NewResolver(rootPath string, excludePatterns []string, forceIncludePatterns []string) *Resolver {
	var orderedPatterns []string
	orderedPatterns = append(orderedPatterns, builtinExclusions...)
	orderedPatterns = append(orderedPatterns, loadPatternFile(filepath.Join(rootPath, IgnoreFileName))...)
	orderedPatterns = append(orderedPatterns, loadPatternFile(filepath.Join(rootPath, GitIgnoreFileName))...)
	for _, excludePattern := range excludePatterns {
		trimmedPattern := strings.TrimSpace(excludePattern)
		if trimmedPattern != "" {
			orderedPatterns = append(orderedPatterns, trimmedPattern)
		}
	}
	for _, includePattern := range forceIncludePatterns {
		trimmedPattern := strings.TrimSpace(includePattern)
		if trimmedPattern == "" {
			continue
		}
		if !strings.HasPrefix(trimmedPattern, negationPrefix) {
			trimmedPattern = negationPrefix + trimmedPattern
		}
		orderedPatterns = append(orderedPatterns, trimmedPattern)
	}

	return &Resolver{matcher: gitignore.CompileIgnoreLines(orderedPatterns...)}
}

// IsIgnored reports whether the root-relative path is excluded. The decision
// is pure: it depends only on the compiled rule list.
func (resolver *Resolver) IsIgnored(relativePath string) bool {
	if resolver == nil || resolver.matcher == nil {
		return false
	}
	return resolver.matcher.MatchesPath(filepath.ToSlash(relativePath))
}

// loadPatternFile reads a pattern file, stripping comment and blank lines.
// A missing or unreadable file degrades to zero patterns, never an error.
func loadPatternFile(patternFilePath string) []string {
	fileHandle, openFileError := os.Open(patternFilePath)
	if openFileError != nil {
		return nil
	}
	defer fileHandle.Close()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil
	}
	return patterns
}
