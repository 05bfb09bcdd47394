package web

import (
	"context"
	"errors"
	"html/template"
	"math"
	"net/http"
	"time"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/ports"
	"github.com/emiliopalmerini/assistroi/internal/report"
	"github.com/emiliopalmerini/assistroi/internal/roi"
	"github.com/emiliopalmerini/assistroi/internal/web/templates"
)

func (s *Server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var errs []string
	in, err := s.parseInput(r.URL.Query())
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			for _, f := range verr.Fields {
				errs = append(errs, f.Error())
			}
		default:
			errs = append(errs, err.Error())
		}
		in = calcInput{Parameters: s.defaults.Parameters, History: s.defaults.History}
	}

	results := s.evaluate(r, "web", in, nil)
	page := templates.CalculatorPage{
		Title:       "Support Assistant ROI",
		Currency:    s.defaults.Currency,
		Form:        formValues(in),
		Industries:  s.catalog.List(),
		Frequencies: []domain.AnalysisFrequency{domain.AnalysisWeekly, domain.AnalysisMonthly, domain.AnalysisQuarterly},
		Results:     results,
		CostBars:    costBars(results),
		Sweep:       sweepRows(in.Parameters),
		Insights:    s.defaults.InsightsOrSample(),
		Scenarios:   s.recentScenarios(ctx),
		Errors:      errs,
		ExportQuery: template.URL(encodeInput(in).Encode()),
	}

	if len(errs) > 0 {
		w.WriteHeader(http.StatusBadRequest)
	}
	_ = templates.Calculator(page).Render(ctx, w)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := s.parseInput(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rep := s.buildReport(in)
	body, err := report.RenderHTML(rep)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	_ = templates.Report(templates.ReportPage{
		Title:       rep.Title,
		Body:        string(body),
		ExportQuery: template.URL(encodeInput(in).Encode()),
	}).Render(ctx, w)
}

func (s *Server) buildReport(in calcInput) *report.Report {
	return report.Build(in.Parameters, report.Options{
		Currency: s.defaults.Currency,
		Industry: in.Industry,
		History:  in.History,
		Insights: s.defaults.InsightsOrSample(),
		Now:      s.now(),
	})
}

// costBars compares current staff cost, residual staff cost, assistant cost
// and the new total.
func costBars(r roi.Results) []templates.CostBar {
	bars := []templates.CostBar{
		{Label: "Current staff cost", Value: r.CurrentTotalCost},
		{Label: "Residual staff cost", Value: r.ResidualTotalCost},
		{Label: "Assistant cost", Value: r.AssistantTotalCost},
		{Label: "New total cost", Value: r.NewTotalCost},
	}
	var largest float64
	for _, b := range bars {
		largest = math.Max(largest, b.Value)
	}
	if largest > 0 {
		for i := range bars {
			bars[i].Percent = bars[i].Value / largest * 100
		}
	}
	return bars
}

func sweepRows(p roi.Parameters) []templates.SweepRow {
	points := roi.SweepUplift(p, roi.DefaultUpliftSteps)
	var largest float64
	for _, pt := range points {
		largest = math.Max(largest, pt.Savings)
	}

	current := 0.0
	if p.AnalyticsEnabled {
		current = p.AnalyticsUpliftFraction * 100
	}

	rows := make([]templates.SweepRow, len(points))
	for i, pt := range points {
		rows[i] = templates.SweepRow{SweepPoint: pt, Current: math.Abs(pt.UpliftPercent-current) < 1e-9}
		if largest > 0 {
			rows[i].Percent = pt.Savings / largest * 100
		}
	}
	return rows
}

// recentScenarios lists saved scenarios for the sidebar; failures only hide it.
func (s *Server) recentScenarios(ctx context.Context) []templates.ScenarioRow {
	if s.scenarioRepo == nil {
		return nil
	}
	scenarios, err := s.scenarioRepo.List(ctx, ports.ListScenariosOptions{Limit: 10})
	if err != nil {
		s.logger.Warn("failed to list scenarios", "error", err)
		return nil
	}

	rows := make([]templates.ScenarioRow, 0, len(scenarios))
	for _, sc := range scenarios {
		res := sc.Evaluate()
		rows = append(rows, templates.ScenarioRow{
			ID:             sc.ID,
			Name:           sc.Name,
			IndustryID:     sc.IndustryID,
			Volume:         sc.Parameters.InquiryVolume,
			MonthlySavings: res.MonthlySavings,
			Payback:        res.Payback,
			UpdatedAt:      sc.UpdatedAt.Format(time.DateTime),
		})
	}
	return rows
}
