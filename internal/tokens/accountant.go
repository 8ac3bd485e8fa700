package tokens

import (
	"fmt"

	"github.com/Ephraim-9/epistle/internal/redact"
	"github.com/Ephraim-9/epistle/internal/types"
	"github.com/Ephraim-9/epistle/internal/utils"
)

const errorCountTokensFormat = "counting tokens for %s: %w"

// Accounting holds the complete token picture for one render: per-file stats
// in input order, per-directory aggregates, and the grand total under the
// empty-string key of DirectoryTokens.
type Accounting struct {
	FileStats       []types.FileTokenStat
	DirectoryTokens map[string]int
	TotalTokens     int
}

// Account recomputes token statistics from scratch for the given file set.
// Counts run over the redacted overlay text; binary, oversized, and empty
// files contribute zero. Every proper ancestor directory of a file
// accumulates that file's count. The computation is stateless and
// order-independent: it is a commutative sum over the current file set.
func Account(scannedFiles []types.ScannedFile, overlay *redact.Overlay, counter Counter) (Accounting, error) {
	accounting := Accounting{
		FileStats:       make([]types.FileTokenStat, 0, len(scannedFiles)),
		DirectoryTokens: map[string]int{"": 0},
	}

	for _, scannedFile := range scannedFiles {
		tokenCount := 0
		if redactedText, present := overlay.Text(scannedFile.Path); present && redactedText != "" {
			countedTokens, countError := counter.CountString(redactedText)
			if countError != nil {
				return Accounting{}, fmt.Errorf(errorCountTokensFormat, scannedFile.Path, countError)
			}
			tokenCount = countedTokens
		}

		accounting.FileStats = append(accounting.FileStats, types.FileTokenStat{Path: scannedFile.Path, Tokens: tokenCount})
		accounting.TotalTokens += tokenCount
		accounting.DirectoryTokens[""] += tokenCount
		for _, ancestorDirectory := range utils.AncestorDirectories(scannedFile.Path) {
			accounting.DirectoryTokens[ancestorDirectory] += tokenCount
		}
	}

	return accounting, nil
}
