package pipeline

import (
	"context"
	"errors"
	"testing"

	"orderdesk/internal/llm"
)

type fakeCompleter struct {
	out   string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message, temperature float64, maxTokens int) (string, error) {
	f.calls++
	return f.out, f.err
}

func TestOrderIDPrefersDigitGuess(t *testing.T) {
	e := NewExtractor(&fakeCompleter{out: "2077"})
	if got := e.OrderID(context.Background(), "order twenty seventy-seven, #1003 on the label"); got != "2077" {
		t.Fatalf("expected llm guess, got %q", got)
	}
}

func TestOrderIDRejectsNonDigitGuess(t *testing.T) {
	for _, out := range []string{"NONE", "order 1003", "", " 10 03 "} {
		e := NewExtractor(&fakeCompleter{out: out})
		if got := e.OrderID(context.Background(), "Where is my order 1003?"); got != "1003" {
			t.Fatalf("guess %q: expected regex fallback 1003, got %q", out, got)
		}
	}
}

func TestOrderIDFallsBackOnError(t *testing.T) {
	e := NewExtractor(&fakeCompleter{err: errors.New("timeout")})
	if got := e.OrderID(context.Background(), "Where is my order 1003?"); got != "1003" {
		t.Fatalf("expected regex fallback, got %q", got)
	}
	if got := e.OrderID(context.Background(), "no id in here"); got != "" {
		t.Fatalf("expected absent id, got %q", got)
	}
}

func TestOrderIDWithoutCompleter(t *testing.T) {
	e := NewExtractor(nil)
	if got := e.OrderID(context.Background(), "package 555123 again"); got != "555123" {
		t.Fatalf("expected regex result, got %q", got)
	}
}
