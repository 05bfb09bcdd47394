// Package report renders an evaluation as CSV, JSON, Markdown or HTML.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/roi"
)

// Format is an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatJSON, FormatMarkdown, FormatHTML}

// ParseFormat accepts a format name or common alias ("markdown").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported format: %s (use csv, json, md or html)", s)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}

// FileName is the default download name, e.g. assistant_roi_analysis_2026-10-18.csv.
func FileName(at time.Time, f Format) string {
	return fmt.Sprintf("assistant_roi_analysis_%s.%s", at.Format("2006-01-02"), f)
}

// Report is one evaluation with everything shown next to it.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Currency    string
	Industry    domain.Industry
	Parameters  roi.Parameters
	Results     roi.Results
	Sweep       []roi.SweepPoint
	History     domain.HistorySettings
	Insights    domain.Insights
}

// Options carries the descriptive data that does not affect the numbers.
type Options struct {
	Title    string
	Currency string
	Industry domain.Industry
	History  domain.HistorySettings
	Insights domain.Insights
	Now      time.Time
}

// Build evaluates p once and assembles a report.
func Build(p roi.Parameters, opts Options) *Report {
	if opts.Title == "" {
		opts.Title = "Support Assistant ROI Analysis"
	}
	if opts.Currency == "" {
		opts.Currency = "JPY"
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	return &Report{
		Title:       opts.Title,
		GeneratedAt: opts.Now,
		Currency:    opts.Currency,
		Industry:    opts.Industry,
		Parameters:  p,
		Results:     roi.Aggregate(p),
		Sweep:       roi.SweepUplift(p, roi.DefaultUpliftSteps),
		History:     opts.History,
		Insights:    opts.Insights,
	}
}

// Write renders r to w in format f.
func Write(w io.Writer, r *Report, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(r))
		return err
	case FormatHTML:
		return WriteHTML(w, r)
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}

// upliftPercent is the uplift actually applied, zero when analytics is off.
func upliftPercent(p roi.Parameters) float64 {
	if !p.AnalyticsEnabled {
		return 0
	}
	return p.AnalyticsUpliftFraction * 100
}

func paybackText(pb roi.Payback) string {
	if !pb.Recoverable {
		return "not recoverable"
	}
	return strconv.FormatFloat(pb.Months, 'f', 1, 64)
}

func breakEvenText(be roi.BreakEven) string {
	if !be.Found {
		return fmt.Sprintf("not reached within %d", roi.BreakEvenCeiling)
	}
	return strconv.Itoa(be.Volume)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
