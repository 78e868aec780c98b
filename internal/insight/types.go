package insight

// Category buckets an insight or recommendation.
type Category string

const (
	CategoryStructure       Category = "Structure"
	CategoryCodeQuality     Category = "CodeQuality"
	CategoryPerformance     Category = "Performance"
	CategoryArchitecture    Category = "Architecture"
	CategoryDependencies    Category = "Dependencies"
	CategoryMaintainability Category = "Maintainability"
	CategoryTesting         Category = "Testing"
)

// Severity is an ordinal scale from informational to critical.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	}
	return "Unknown"
}

// MarshalText renders severities as names in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ProjectInsight is one categorized, severity-ranked observation about the
// analyzed project.
type ProjectInsight struct {
	Category   Category `json:"category"`
	Severity   Severity `json:"severity"`
	Confidence float64  `json:"confidence"` // 0..1
	Message    string   `json:"message"`
	Evidence   []string `json:"evidence,omitempty"`
}

// ProjectRecommendation is an actionable suggestion derived from one or
// more insights.
type ProjectRecommendation struct {
	Category Category `json:"category"`
	Priority int      `json:"priority"` // 1 is most urgent
	Actions  []string `json:"actions"`
	Effort   string   `json:"effort"`
	Skills   []string `json:"skills,omitempty"`
}
