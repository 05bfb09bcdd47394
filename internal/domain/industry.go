package domain

import (
	"fmt"
	"strings"

	"github.com/emiliopalmerini/assistroi/internal/roi"
)

// Industry carries the typical automation rate and handle time of a sector.
type Industry struct {
	ID               string  `yaml:"id" json:"id"`
	Name             string  `yaml:"name" json:"name"`
	AutomationRate   float64 `yaml:"automation_rate" json:"automation_rate"`
	AvgHandleMinutes float64 `yaml:"avg_handle_minutes" json:"avg_handle_minutes"`
}

// FallbackIndustry applies when no preset matches.
var FallbackIndustry = Industry{ID: "default", Name: "Default", AutomationRate: 0.65, AvgHandleMinutes: 10}

// DefaultIndustries are the built-in sector presets.
var DefaultIndustries = []Industry{
	{ID: "it", Name: "IT & Technology", AutomationRate: 0.75, AvgHandleMinutes: 8},
	{ID: "finance", Name: "Finance & Insurance", AutomationRate: 0.65, AvgHandleMinutes: 12},
	{ID: "manufacturing", Name: "Manufacturing", AutomationRate: 0.70, AvgHandleMinutes: 10},
	{ID: "retail", Name: "Retail & Distribution", AutomationRate: 0.68, AvgHandleMinutes: 9},
	{ID: "healthcare", Name: "Healthcare", AutomationRate: 0.60, AvgHandleMinutes: 15},
	{ID: "education", Name: "Education", AutomationRate: 0.72, AvgHandleMinutes: 7},
	{ID: "services", Name: "Other Services", AutomationRate: 0.65, AvgHandleMinutes: 10},
}

// IndustryCatalog resolves presets by ID or name.
type IndustryCatalog struct {
	industries []Industry
}

// NewIndustryCatalog builds a catalog; an empty list falls back to DefaultIndustries.
func NewIndustryCatalog(industries []Industry) *IndustryCatalog {
	if len(industries) == 0 {
		industries = DefaultIndustries
	}
	return &IndustryCatalog{industries: industries}
}

// List returns the presets in declaration order.
func (c *IndustryCatalog) List() []Industry {
	out := make([]Industry, len(c.industries))
	copy(out, c.industries)
	return out
}

// Lookup finds a preset by case-insensitive ID or name.
func (c *IndustryCatalog) Lookup(key string) (Industry, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, ind := range c.industries {
		if strings.ToLower(ind.ID) == k || strings.ToLower(ind.Name) == k {
			return ind, nil
		}
	}
	return Industry{}, fmt.Errorf("%w: %q", ErrUnknownIndustry, key)
}

// Apply returns p with the industry's automation rate and external handle time.
func (ind Industry) Apply(p roi.Parameters) roi.Parameters {
	p.BaseAutomationRate = ind.AutomationRate
	p.AvgHandleMinutesExternal = ind.AvgHandleMinutes
	return p
}
