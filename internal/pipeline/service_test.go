package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"orderdesk/internal"
	"orderdesk/internal/llm"
)

type fakeLoader struct {
	table []internal.OrderRecord
	err   error
	calls int
}

func (f *fakeLoader) Load(ctx context.Context) ([]internal.OrderRecord, error) {
	f.calls++
	return f.table, f.err
}

var serviceTable = []internal.OrderRecord{
	{OrderID: "1003", Email: "a@b.com", Customer: "Anna", Status: "Shipped", Eta: "2026-09-01"},
}

func newTestService(loader Loader, completer llm.Completer) *Service {
	return NewService(loader, completer, nil, zap.NewNop())
}

func TestAnswerPromptsForBothIdentifiers(t *testing.T) {
	loader := &fakeLoader{table: serviceTable}
	svc := newTestService(loader, nil)

	reply, err := svc.Answer(context.Background(), internal.AskRequest{Question: "hello there"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if reply != msgNeedBoth {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if loader.calls != 0 {
		t.Fatalf("table must not be loaded before identifiers are present")
	}
}

func TestAnswerExtractsIDButStillNeedsEmail(t *testing.T) {
	loader := &fakeLoader{table: serviceTable}
	svc := newTestService(loader, &fakeCompleter{err: errors.New("capability down")})

	reply, err := svc.Answer(context.Background(), internal.AskRequest{Question: "Where is my order 1003?"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if reply != msgNeedEmail {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if loader.calls != 0 {
		t.Fatalf("table must not be loaded without a valid e-mail")
	}
}

func TestAnswerPromptsForOrderID(t *testing.T) {
	svc := newTestService(&fakeLoader{table: serviceTable}, nil)
	reply, err := svc.Answer(context.Background(), internal.AskRequest{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if reply != msgNeedOrderID {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestAnswerRejectsInvalidEmail(t *testing.T) {
	svc := newTestService(&fakeLoader{table: serviceTable}, nil)
	reply, err := svc.Answer(context.Background(), internal.AskRequest{OrderID: "1003", Email: "a@b"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if reply != msgInvalidEmail {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestAnswerSurfacesLoadFailure(t *testing.T) {
	svc := newTestService(&fakeLoader{err: errors.New("credentials rejected")}, nil)
	_, err := svc.Answer(context.Background(), internal.AskRequest{OrderID: "1003", Email: "a@b.com"})
	if err == nil || !strings.Contains(err.Error(), "credentials rejected") {
		t.Fatalf("expected load failure to propagate, got %v", err)
	}
}

func TestAnswerOrderNotFound(t *testing.T) {
	svc := newTestService(&fakeLoader{table: serviceTable}, nil)
	reply, err := svc.Answer(context.Background(), internal.AskRequest{OrderID: "9999", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(reply, "#9999") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestAnswerEmailMismatchWithSuggestion(t *testing.T) {
	svc := newTestService(&fakeLoader{table: serviceTable}, nil)
	reply, err := svc.Answer(context.Background(), internal.AskRequest{OrderID: "1003", Email: "anna@gnail.com"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(reply, "doesn’t match our records") {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if !strings.Contains(reply, "**anna@gmail.com**") {
		t.Fatalf("expected domain suggestion hint: %q", reply)
	}
}

func TestAnswerEmailMismatchWithoutSuggestion(t *testing.T) {
	svc := newTestService(&fakeLoader{table: serviceTable}, nil)
	reply, err := svc.Answer(context.Background(), internal.AskRequest{OrderID: "1003", Email: "anna@elsewhere.example"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if strings.Contains(reply, "Did you mean") {
		t.Fatalf("did not expect a suggestion: %q", reply)
	}
}

func TestAnswerSuccessWithTemplateFallback(t *testing.T) {
	svc := newTestService(&fakeLoader{table: serviceTable}, &fakeCompleter{err: errors.New("capability down")})
	reply, err := svc.Answer(context.Background(), internal.AskRequest{OrderID: "1003", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if reply != "Order #1003: status Shipped, ETA 2026-09-01." {
		t.Fatalf("unexpected fallback reply: %q", reply)
	}
}

func TestAnswerSuccessWithGeneratedReply(t *testing.T) {
	svc := newTestService(&fakeLoader{table: serviceTable}, &fakeCompleter{out: "Your order shipped yesterday. Kind regards, The Customer Care Team."})
	reply, err := svc.Answer(context.Background(), internal.AskRequest{OrderID: "1003", Email: "a@b.com", Question: "when will it arrive?"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(reply, "shipped yesterday") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}
