package pipeline

import (
	"context"
	"strings"

	"orderdesk/internal/llm"
	"orderdesk/internal/util"
)

const orderIDInstruction = "Extract the order id number. Return ONLY the number or NONE."

// Extractor pulls order identifiers out of free text. The deterministic digit
// scan always runs; the completion capability is consulted on top of it and
// its answer is accepted only when it is composed entirely of digits. Any
// capability failure falls back to the scan result.
type Extractor struct {
	completer llm.Completer
}

func NewExtractor(completer llm.Completer) *Extractor {
	return &Extractor{completer: completer}
}

func (e *Extractor) OrderID(ctx context.Context, text string) string {
	fallback := util.ExtractOrderID(text)
	if e.completer == nil {
		return fallback
	}

	guess, err := e.completer.Complete(ctx, []llm.Message{
		{Role: "system", Content: orderIDInstruction},
		{Role: "user", Content: text},
	}, 0, 10)
	if err != nil {
		return fallback
	}

	guess = strings.TrimSpace(guess)
	if guess != "" && isAllDigits(guess) {
		return guess
	}
	return fallback
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
