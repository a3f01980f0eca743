package health

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// Format is a report output format.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	default:
		return "application/pdf"
	}
}

// RenderReport renders a snapshot of the current metrics.
func RenderReport(m Metrics, format Format) ([]byte, error) {
	switch format {
	case FormatPDF:
		return renderPDF(m)
	case FormatCSV:
		return renderCSV(m)
	default:
		return nil, fmt.Errorf("%w: %q (use pdf or csv)", ErrUnsupportedFormat, string(format))
	}
}

type reportRow struct {
	label string
	value string
}

func reportRows(m Metrics) []reportRow {
	return []reportRow{
		{"Steps", strconv.Itoa(m.Steps)},
		{"Steps goal", strconv.Itoa(m.StepsGoal)},
		{"Goal progress", fmt.Sprintf("%d%%", goalPercent(m))},
		{"Heart rate", trackedOrNot(m.HeartRate == 0, fmt.Sprintf("%d bpm", m.HeartRate))},
		{"Sleep", trackedOrNot(m.SleepHours == 0, strconv.FormatFloat(m.SleepHours, 'f', -1, 64)+" h")},
		{"Active minutes", strconv.Itoa(m.ActiveMinutes)},
	}
}

func renderCSV(m Metrics) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"steps", "steps_goal", "goal_percent", "heart_rate_bpm", "sleep_hours", "active_minutes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := []string{
		strconv.Itoa(m.Steps),
		strconv.Itoa(m.StepsGoal),
		strconv.Itoa(goalPercent(m)),
		strconv.Itoa(m.HeartRate),
		strconv.FormatFloat(m.SleepHours, 'f', -1, 64),
		strconv.Itoa(m.ActiveMinutes),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(m Metrics) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Health Snapshot")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	for _, row := range reportRows(m) {
		pdf.CellFormat(60, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, row.value, "1", 1, "R", false, 0, "")
	}

	// progress bar toward the steps goal
	pdf.Ln(6)
	const barWidth = 120.0
	x, y := pdf.GetXY()
	pdf.SetDrawColor(80, 80, 80)
	pdf.Rect(x, y, barWidth, 6, "D")
	if fill := barWidth * float64(min(goalPercent(m), 100)) / 100; fill > 0 {
		pdf.SetFillColor(76, 175, 80)
		pdf.Rect(x, y, fill, 6, "F")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func goalPercent(m Metrics) int {
	if m.StepsGoal <= 0 {
		return 0
	}
	pct := float64(m.Steps) * 100 / float64(m.StepsGoal)
	if pct >= math.MaxInt64 {
		return math.MaxInt
	}
	return int(pct)
}

func trackedOrNot(missing bool, v string) string {
	if missing {
		return "Not tracked"
	}
	return v
}
