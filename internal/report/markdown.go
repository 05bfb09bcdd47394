package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/emiliopalmerini/assistroi/internal/util"
)

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders r as a GitHub-flavoured Markdown document.
func Markdown(r *Report) string {
	var b strings.Builder
	res := r.Results
	p := r.Parameters
	cur := func(v float64) string { return util.FormatCurrency(v, r.Currency) }

	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "Generated %s", r.GeneratedAt.Format("2006-01-02 15:04"))
	if r.Industry.Name != "" {
		fmt.Fprintf(&b, " for **%s**", r.Industry.Name)
	}
	b.WriteString(".\n\n")

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Monthly savings | %s |\n", cur(res.MonthlySavings))
	fmt.Fprintf(&b, "| Analytics uplift benefit | %s |\n", cur(res.AnalyticsUpliftBenefit))
	fmt.Fprintf(&b, "| Total monthly value | %s |\n", cur(res.TotalMonthlyValue))
	fmt.Fprintf(&b, "| Annual savings | %s |\n", cur(res.AnnualSavings))
	if res.Payback.Recoverable {
		fmt.Fprintf(&b, "| Payback | %s |\n", util.FormatMonths(res.Payback.Months))
	} else {
		b.WriteString("| Payback | not recoverable |\n")
	}
	fmt.Fprintf(&b, "| FTE saved | %.2f |\n", res.FTESaved)
	fmt.Fprintf(&b, "| Break-even volume | %s |\n", breakEvenText(res.BreakEven))
	fmt.Fprintf(&b, "| Efficiency | %s → %s |\n\n",
		util.FormatPercent(res.BaseEfficiencyPercent), util.FormatPercent(res.EffectiveEfficiencyPercent))

	b.WriteString("## Monthly costs\n\n")
	b.WriteString("| Channel | Current | After automation | FTE before | FTE after |\n|---|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| External inquiries | %s | %s | %.2f | %.2f |\n",
		cur(res.External.CurrentCost), cur(res.External.ResidualCost), res.External.FTEBefore, res.External.FTEAfter)
	if p.InternalChannelEnabled {
		fmt.Fprintf(&b, "| Internal questions | %s | %s | %.2f | %.2f |\n",
			cur(res.Internal.CurrentCost), cur(res.Internal.ResidualCost), res.Internal.FTEBefore, res.Internal.FTEAfter)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | **%s** | | |\n\n", cur(res.CurrentTotalCost), cur(res.ResidualTotalCost))
	fmt.Fprintf(&b, "Assistant cost is %s per month (%s subscription plus %s setup over %d months), "+
		"bringing the new monthly total to %s.\n\n",
		cur(res.AssistantTotalCost), cur(p.AssistantMonthlyCost), cur(p.SetupCost), p.AmortizationMonths, cur(res.NewTotalCost))

	b.WriteString("## Inputs\n\n")
	b.WriteString("| Parameter | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Monthly inquiries | %d |\n", p.InquiryVolume)
	fmt.Fprintf(&b, "| Staff hourly cost | %s |\n", cur(p.StaffHourlyCost))
	fmt.Fprintf(&b, "| Handle time (external) | %.0f min |\n", p.AvgHandleMinutesExternal)
	if p.InternalChannelEnabled {
		fmt.Fprintf(&b, "| Internal questions | %d |\n", p.InternalQuestionVolume)
		fmt.Fprintf(&b, "| Manager hourly cost | %s |\n", cur(p.ManagerHourlyCost))
		fmt.Fprintf(&b, "| Handle time (internal) | %.0f min |\n", p.AvgHandleMinutesInternal)
	}
	fmt.Fprintf(&b, "| Base automation rate | %s |\n", util.FormatPercent(p.BaseAutomationRate*100))
	fmt.Fprintf(&b, "| Analytics uplift | %s |\n", util.FormatPercent(upliftPercent(p)))
	fmt.Fprintf(&b, "| History retention | %d days, reviewed %s |\n\n", r.History.StorageDays, r.History.Frequency)

	if len(r.Sweep) > 0 {
		b.WriteString("## Uplift sensitivity\n\n")
		b.WriteString("| Uplift | Effective rate | Monthly savings |\n|---:|---:|---:|\n")
		for _, pt := range r.Sweep {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				util.FormatPercent(pt.UpliftPercent), util.FormatPercent(pt.EffectiveRatePercent), cur(pt.Savings))
		}
		b.WriteString("\n")
	}

	if len(r.Insights.Categories) > 0 {
		b.WriteString("## Question insights\n\n")
		b.WriteString("| Category | Share |\n|---|---:|\n")
		for _, c := range r.Insights.Categories {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(c.Name), util.FormatPercent(c.Percent))
		}
		cx := r.Insights.Complexity
		fmt.Fprintf(&b, "\nComplexity: %s simple, %s medium, %s complex.\n\n",
			util.FormatPercent(cx.SimplePercent), util.FormatPercent(cx.MediumPercent), util.FormatPercent(cx.ComplexPercent))
		if len(r.Insights.SearchTerms) > 0 {
			b.WriteString("| Search term | Count |\n|---|---:|\n")
			for _, st := range r.Insights.SearchTerms {
				fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(st.Term), st.Count)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("> Analytics uplift benefit is priced at the base automation rate and is an approximation; " +
		"break-even excludes the uplift.\n")
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderHTML converts the Markdown report into an HTML fragment.
func RenderHTML(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(Markdown(r)), &buf); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	return buf.Bytes(), nil
}

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem;color:#1f2937}` +
	`table{border-collapse:collapse;margin:1rem 0}th,td{border:1px solid #e5e7eb;padding:.35rem .7rem}` +
	`th{background:#f3f4f6}blockquote{color:#6b7280;border-left:3px solid #d1d5db;margin:1rem 0;padding-left:.8rem}`

// WriteHTML writes a standalone HTML page containing the report.
func WriteHTML(w io.Writer, r *Report) error {
	body, err := RenderHTML(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "<!doctype html><html><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>%s</body></html>\n",
		html.EscapeString(r.Title), pageStyle, body)
	return err
}
