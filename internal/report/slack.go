package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"orderdesk/internal"
)

// Notifier posts the report summary to a Slack incoming webhook. An empty
// webhook URL disables it.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: strings.TrimSpace(webhookURL),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *Notifier) Post(ctx context.Context, summary internal.ReportSummary) error {
	if n.webhookURL == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": summaryText(summary)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook status %d", resp.StatusCode)
	}
	return nil
}

func summaryText(summary internal.ReportSummary) string {
	byStatus := make([]string, 0, len(summary.ByStatus))
	for _, sc := range summary.ByStatus {
		byStatus = append(byStatus, fmt.Sprintf("%s: %d", sc.Status, sc.Count))
	}

	lines := []string{
		fmt.Sprintf("*Daily Logistics Report* - %s", summary.Date),
		fmt.Sprintf("• Total orders: *%d*", summary.TotalOrders),
		fmt.Sprintf("• Delayed %%: *%v%%*", summary.DelayedPct),
		fmt.Sprintf("• SLA misses: *%d*", summary.SLAMisses),
		"• By status: " + strings.Join(byStatus, ", "),
	}
	return strings.Join(lines, "\n")
}
