package domain

// AnalysisFrequency is how often stored question history is reviewed.
type AnalysisFrequency string

const (
	AnalysisWeekly    AnalysisFrequency = "weekly"
	AnalysisMonthly   AnalysisFrequency = "monthly"
	AnalysisQuarterly AnalysisFrequency = "quarterly"
)

// HistorySettings describes how question history is retained and analysed.
// Only the uplift reaches the engine (via roi.Parameters); the rest is reported
// alongside results.
type HistorySettings struct {
	StorageDays int               `json:"storage_days" yaml:"storage_days"`
	Frequency   AnalysisFrequency `json:"analysis_frequency" yaml:"analysis_frequency"`
}

// DefaultHistorySettings keeps 90 days of history with a monthly review.
func DefaultHistorySettings() HistorySettings {
	return HistorySettings{StorageDays: 90, Frequency: AnalysisMonthly}
}

// ParseAnalysisFrequency maps s to a known frequency, defaulting to monthly.
func ParseAnalysisFrequency(s string) AnalysisFrequency {
	switch AnalysisFrequency(s) {
	case AnalysisWeekly, AnalysisQuarterly:
		return AnalysisFrequency(s)
	default:
		return AnalysisMonthly
	}
}

// QuestionCategory is the share of inquiries in one topic.
type QuestionCategory struct {
	Name    string  `json:"name" yaml:"name"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// ComplexityBreakdown splits inquiries by difficulty level.
type ComplexityBreakdown struct {
	SimplePercent  float64 `json:"simple_percent" yaml:"simple_percent"`   // levels 1-2
	MediumPercent  float64 `json:"medium_percent" yaml:"medium_percent"`   // level 3
	ComplexPercent float64 `json:"complex_percent" yaml:"complex_percent"` // levels 4-5
}

// SearchTerm is a frequently searched phrase and its monthly count.
type SearchTerm struct {
	Term  string `json:"term" yaml:"term"`
	Count int    `json:"count" yaml:"count"`
}

// Insights is descriptive data shown and exported next to results.
// It never feeds the engine and changing it does not require recomputation.
type Insights struct {
	Categories  []QuestionCategory  `json:"categories" yaml:"categories"`
	Complexity  ComplexityBreakdown `json:"complexity" yaml:"complexity"`
	SearchTerms []SearchTerm        `json:"search_terms" yaml:"search_terms"`
}

// SampleInsights is the illustrative data set used until real history exists.
func SampleInsights() Insights {
	return Insights{
		Categories: []QuestionCategory{
			{Name: "Internal systems", Percent: 35},
			{Name: "Benefits", Percent: 25},
			{Name: "Procedures", Percent: 20},
			{Name: "IT", Percent: 15},
			{Name: "Other", Percent: 5},
		},
		Complexity: ComplexityBreakdown{SimplePercent: 60, MediumPercent: 30, ComplexPercent: 10},
		SearchTerms: []SearchTerm{
			{Term: "leave request", Count: 145},
			{Term: "password reset", Count: 120},
			{Term: "expense claim", Count: 95},
			{Term: "timesheet", Count: 80},
			{Term: "insurance forms", Count: 65},
			{Term: "remote work", Count: 60},
		},
	}
}
