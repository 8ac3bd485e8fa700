// Package tokens computes per-file token counts and aggregates them into
// per-directory and grand totals.
package tokens

import (
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/Ephraim-9/epistle/internal/types"
)

// encodingName is the single fixed tokenizer profile. Counts are a
// deterministic approximation for budgeting, not tokenizer-exact parity.
const encodingName = "cl100k_base"

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter tiktokenCounter) Name() string {
	return counter.name
}

func (counter tiktokenCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIDs := counter.encoding.Encode(input, nil, nil)
	return len(tokenIDs), nil
}

// NewCounter loads the fixed encoding profile. Failure is fatal for token
// accounting and wraps types.ErrTokenizerUnavailable.
func NewCounter() (Counter, error) {
	encoding, encodingError := tiktoken.GetEncoding(encodingName)
	if encodingError != nil {
		return nil, fmt.Errorf("%w: loading %s: %v", types.ErrTokenizerUnavailable, encodingName, encodingError)
	}
	return tiktokenCounter{encoding: encoding, name: encodingName}, nil
}
