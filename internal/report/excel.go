package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"orderdesk/internal"
)

const reportSheet = "Daily"

const (
	colorHeader = "EDF2FF"
	colorSep    = "F6F7FB"
	colorText   = "111827"
	colorBorder = "D9DCE3"
)

var statusColors = map[string]string{
	"delivered":  "34C759",
	"delayed":    "FF6B6B",
	"in transit": "FFD166",
	"received":   "7AA8FF",
	"shipped":    "FFB020",
}

// WriteReport renders the summary as one styled worksheet: a title row, the
// KPI block, and the per-status counts with colored pills.
func WriteReport(summary internal.ReportSummary, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), reportSheet); err != nil {
		return err
	}

	border := []excelize.Border{
		{Type: "left", Color: colorBorder, Style: 1},
		{Type: "right", Color: colorBorder, Style: 1},
		{Type: "top", Color: colorBorder, Style: 1},
		{Type: "bottom", Color: colorBorder, Style: 1},
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: colorText},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: colorText},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorHeader}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	leftStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	centerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}

	set := func(row, col int, value any, style int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(reportSheet, cell, value); err != nil {
			return err
		}
		if style != 0 {
			return f.SetCellStyle(reportSheet, cell, cell, style)
		}
		return nil
	}

	if err := f.MergeCell(reportSheet, "A1", "B1"); err != nil {
		return err
	}
	if err := set(1, 1, fmt.Sprintf("Daily Logistics Report - %s", summary.Date), titleStyle); err != nil {
		return err
	}

	if err := set(3, 1, "Metric", headerStyle); err != nil {
		return err
	}
	if err := set(3, 2, "Value", headerStyle); err != nil {
		return err
	}

	kpis := []struct {
		metric string
		value  any
	}{
		{"Total orders", summary.TotalOrders},
		{"Delayed %", fmt.Sprintf("%v%%", summary.DelayedPct)},
		{"SLA misses", summary.SLAMisses},
	}
	row := 4
	for _, kpi := range kpis {
		if err := set(row, 1, kpi.metric, leftStyle); err != nil {
			return err
		}
		if err := set(row, 2, kpi.value, centerStyle); err != nil {
			return err
		}
		row++
	}

	row++
	if err := set(row, 1, "Status", headerStyle); err != nil {
		return err
	}
	if err := set(row, 2, "Count", headerStyle); err != nil {
		return err
	}
	row++

	for _, sc := range summary.ByStatus {
		fill := colorSep
		if c, ok := statusColors[strings.ToLower(sc.Status)]; ok {
			fill = c
		}
		pillStyle, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		})
		if err != nil {
			return err
		}
		if err := set(row, 1, sc.Status, pillStyle); err != nil {
			return err
		}
		if err := set(row, 2, sc.Count, centerStyle); err != nil {
			return err
		}
		row++
	}

	for r := 3; r < row; r++ {
		if err := f.SetRowHeight(reportSheet, r, 22); err != nil {
			return err
		}
	}
	if err := autoWidth(f, row-1); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func autoWidth(f *excelize.File, lastRow int) error {
	for col := 1; col <= 2; col++ {
		width := 0
		for r := 1; r <= lastRow; r++ {
			cell, err := excelize.CoordinatesToCellName(col, r)
			if err != nil {
				return err
			}
			value, err := f.GetCellValue(reportSheet, cell)
			if err != nil {
				return err
			}
			if len(value) > width {
				width = len(value)
			}
		}
		letter, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		w := float64(width + 3)
		if w > 42 {
			w = 42
		}
		if err := f.SetColWidth(reportSheet, letter, letter, w); err != nil {
			return err
		}
	}
	return nil
}
