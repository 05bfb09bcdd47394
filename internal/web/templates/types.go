package templates

import (
	"html/template"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/roi"
)

// FormValues are the calculator inputs as shown in the form. Rates are
// percentages.
type FormValues struct {
	Industry              string
	Volume                int
	HourlyCost            float64
	HandleMinutes         float64
	Internal              bool
	InternalVolume        int
	ManagerCost           float64
	InternalHandleMinutes float64
	RatePercent           float64
	MonthlyCost           float64
	SetupCost             float64
	Amortization          int
	Analytics             bool
	UpliftPercent         float64
	StorageDays           int
	Frequency             string
}

// CostBar is one bar of the cost comparison chart.
type CostBar struct {
	Label   string
	Value   float64
	Percent float64 // width relative to the largest bar
}

// SweepRow is one row of the uplift sensitivity table.
type SweepRow struct {
	roi.SweepPoint
	Percent float64
	Current bool
}

type ScenarioRow struct {
	ID             string
	Name           string
	IndustryID     string
	Volume         int
	MonthlySavings float64
	Payback        roi.Payback
	UpdatedAt      string
}

// CalculatorPage is the data for the main page.
type CalculatorPage struct {
	Title       string
	Currency    string
	Form        FormValues
	Industries  []domain.Industry
	Frequencies []domain.AnalysisFrequency
	Results     roi.Results
	CostBars    []CostBar
	Sweep       []SweepRow
	Insights    domain.Insights
	Scenarios   []ScenarioRow
	Errors      []string
	ExportQuery template.URL // encoded form values, reused by export links
}

// ReportPage wraps a pre-rendered report body.
type ReportPage struct {
	Title       string
	Body        string
	ExportQuery template.URL
}
