package templates

import (
	"fmt"
	"html/template"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/roi"
	"github.com/emiliopalmerini/assistroi/internal/util"
)

var funcs = template.FuncMap{
	"currency":   util.FormatCurrency,
	"percent":    util.FormatPercent,
	"fixed1":     func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"fixed2":     func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"payback":    formatPayback,
	"breakEven":  formatBreakEven,
	"width":      formatWidth,
	"selected":   func(a, b string) bool { return a == b },
	"freqLabel":  frequencyLabel,
	"safeReport": func(s string) template.HTML { return template.HTML(s) },
}

func formatPayback(pb roi.Payback) string {
	if !pb.Recoverable {
		return "not recoverable"
	}
	return util.FormatMonths(pb.Months)
}

func formatBreakEven(be roi.BreakEven) string {
	if !be.Found {
		return fmt.Sprintf("not reached within %d", roi.BreakEvenCeiling)
	}
	return fmt.Sprintf("%d / month", be.Volume)
}

// formatWidth renders a CSS width, clamped to [0, 100]%.
func formatWidth(p float64) template.CSS {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return template.CSS(fmt.Sprintf("width:%.1f%%", p))
}

func frequencyLabel(f domain.AnalysisFrequency) string {
	switch f {
	case domain.AnalysisWeekly:
		return "Weekly"
	case domain.AnalysisQuarterly:
		return "Quarterly"
	default:
		return "Monthly"
	}
}
