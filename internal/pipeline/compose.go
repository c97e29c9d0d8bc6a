package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orderdesk/internal"
	"orderdesk/internal/llm"
	"orderdesk/internal/util"
)

const signOff = "Kind regards, The Customer Care Team."

// Composer turns a matched record into a customer-facing reply via the
// completion capability. It does not fall back itself; the orchestrator owns
// the single fallback layer (TemplateReply).
type Composer struct {
	completer llm.Completer
}

func NewComposer(completer llm.Completer) *Composer {
	return &Composer{completer: completer}
}

// Compose answers the customer's question when question is non-empty,
// otherwise produces a status notification.
func (c *Composer) Compose(ctx context.Context, record internal.OrderRecord, question string) (string, error) {
	if c.completer == nil {
		return "", errors.New("completion capability not configured")
	}

	var prompt string
	if question != "" {
		prompt = fmt.Sprintf(
			"You are a customer support assistant. Answer the user's question based on this order info: %s. Question: %s. Be accurate, 2-4 sentences.",
			orderContext(record), question,
		)
	} else {
		delayedFlag := 0
		if util.IsDelayed(record.Status) {
			delayedFlag = 1
		}
		prompt = fmt.Sprintf(
			"You are a customer support assistant. Reply in English in 2-4 short sentences. Data: %s, delayed_flag: %d. Rules: - No apologies unless delayed_flag=1 - End with: '%s'",
			orderContext(record), delayedFlag, signOff,
		)
	}

	out, err := c.completer.Complete(ctx, []llm.Message{{Role: "user", Content: prompt}}, 0.2, 180)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errors.New("empty completion")
	}
	return out, nil
}

// WantsAnswer reports whether the question carries an interrogative cue and
// should be answered directly rather than turned into a status notification.
func WantsAnswer(question string) bool {
	q := strings.ToLower(question)
	return strings.Contains(q, "when") || strings.Contains(q, "where")
}

// TemplateReply is the deterministic degradation used when generation fails.
func TemplateReply(record internal.OrderRecord) string {
	return fmt.Sprintf("Order #%s: status %s, ETA %s.", record.OrderID, record.Status, record.Eta)
}

func orderContext(record internal.OrderRecord) string {
	return fmt.Sprintf("order_id=%s, customer=%s, status=%s, eta=%s, email=%s",
		record.OrderID, record.Customer, record.Status, record.Eta, record.Email)
}
