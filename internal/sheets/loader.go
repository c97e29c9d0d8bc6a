package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"orderdesk/internal"
	"orderdesk/internal/config"
)

var requiredColumns = []string{"orderid", "email", "customer", "status", "eta"}

// Loader fetches the order worksheet and normalizes it into OrderRecords.
// Every Load is a full re-fetch; nothing is cached between requests.
type Loader struct {
	cfg config.Config
	svc *sheetsapi.Service
}

func NewLoader(ctx context.Context, cfg config.Config) (*Loader, error) {
	if err := cfg.Require("SHEET_ID", cfg.SheetID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.ServiceAccountPath)
	if err != nil {
		return nil, fmt.Errorf("read service account json: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, sheetsapi.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account json: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	if err != nil {
		return nil, err
	}

	return &Loader{cfg: cfg, svc: svc}, nil
}

func (l *Loader) Load(ctx context.Context) ([]internal.OrderRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(l.cfg.SheetsTimeoutMs)*time.Millisecond)
	defer cancel()

	title := l.cfg.WorksheetName
	if title == "" {
		first, err := l.firstSheetTitle(ctx)
		if err != nil {
			return nil, err
		}
		title = first
	}

	resp, err := l.svc.Spreadsheets.Values.Get(l.cfg.SheetID, fmt.Sprintf("'%s'", title)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch worksheet %q: %w", title, err)
	}

	return normalizeRows(resp.Values)
}

func (l *Loader) firstSheetTitle(ctx context.Context) (string, error) {
	meta, err := l.svc.Spreadsheets.Get(l.cfg.SheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetch spreadsheet metadata: %w", err)
	}
	if len(meta.Sheets) == 0 || meta.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet has no sheets")
	}
	return meta.Sheets[0].Properties.Title, nil
}

// normalizeRows turns the raw value grid into canonical records: header names
// matched case-insensitively after trimming, cells trimmed, e-mail lowercased.
func normalizeRows(values [][]any) ([]internal.OrderRecord, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}

	colIndex := map[string]int{}
	for i, cell := range values[0] {
		name := strings.ToLower(strings.TrimSpace(cellString(cell)))
		if name == "" {
			continue
		}
		if _, exists := colIndex[name]; !exists {
			colIndex[name] = i
		}
	}

	missing := make([]string, 0)
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	out := make([]internal.OrderRecord, 0, len(values)-1)
	for _, row := range values[1:] {
		cell := func(name string) string {
			idx := colIndex[name]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(cellString(row[idx]))
		}

		out = append(out, internal.OrderRecord{
			OrderID:  cell("orderid"),
			Email:    strings.ToLower(cell("email")),
			Customer: cell("customer"),
			Status:   cell("status"),
			Eta:      cell("eta"),
		})
	}

	return out, nil
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
