package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the item/value summary followed by the insight sections,
// separated by blank rows.
func WriteCSV(w io.Writer, r *Report) error {
	res := r.Results
	p := r.Parameters

	rows := [][]string{
		{"item", "value"},
		{"industry", r.Industry.Name},
		{"currency", r.Currency},
		{"monthly_inquiries", strconv.Itoa(p.InquiryVolume)},
		{"base_efficiency_percent", fmt.Sprintf("%.1f", res.BaseEfficiencyPercent)},
		{"analytics_uplift_percent", fmt.Sprintf("%.1f", upliftPercent(p))},
		{"effective_efficiency_percent", fmt.Sprintf("%.1f", res.EffectiveEfficiencyPercent)},
		{"current_total_cost", money(res.CurrentTotalCost)},
		{"residual_total_cost", money(res.ResidualTotalCost)},
		{"assistant_total_cost", money(res.AssistantTotalCost)},
		{"new_total_cost", money(res.NewTotalCost)},
		{"monthly_savings", money(res.MonthlySavings)},
		{"analytics_uplift_benefit", money(res.AnalyticsUpliftBenefit)},
		{"total_monthly_value", money(res.TotalMonthlyValue)},
		{"annual_savings", money(res.AnnualSavings)},
		{"payback_months", paybackText(res.Payback)},
		{"fte_saved", fmt.Sprintf("%.2f", res.FTESaved)},
		{"break_even_inquiries_per_month", breakEvenText(res.BreakEven)},
		{"history_storage_days", strconv.Itoa(r.History.StorageDays)},
		{"history_analysis_frequency", string(r.History.Frequency)},
		{},
		{"uplift_sensitivity"},
		{"uplift_percent", "effective_efficiency_percent", "monthly_savings"},
	}
	for _, pt := range r.Sweep {
		rows = append(rows, []string{
			fmt.Sprintf("%.0f", pt.UpliftPercent),
			fmt.Sprintf("%.1f", pt.EffectiveRatePercent),
			money(pt.Savings),
		})
	}

	rows = append(rows, []string{}, []string{"question_categories"}, []string{"category", "percent"})
	for _, c := range r.Insights.Categories {
		rows = append(rows, []string{c.Name, strconv.FormatFloat(c.Percent, 'f', -1, 64)})
	}

	cx := r.Insights.Complexity
	rows = append(rows,
		[]string{},
		[]string{"question_complexity"},
		[]string{"level", "percent"},
		[]string{"simple (1-2)", strconv.FormatFloat(cx.SimplePercent, 'f', -1, 64)},
		[]string{"medium (3)", strconv.FormatFloat(cx.MediumPercent, 'f', -1, 64)},
		[]string{"complex (4-5)", strconv.FormatFloat(cx.ComplexPercent, 'f', -1, 64)},
	)

	rows = append(rows, []string{}, []string{"top_search_terms"}, []string{"term", "count"})
	for _, st := range r.Insights.SearchTerms {
		rows = append(rows, []string{st.Term, strconv.Itoa(st.Count)})
	}

	writer := csv.NewWriter(w)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
