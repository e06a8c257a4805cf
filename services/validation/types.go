// Package validation runs post-hoc quality rules over persisted course
// records and aggregates the findings into a report.
package validation

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// SeverityOrder lists severities from most to least urgent, the order
// reports render them in.
var SeverityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

func (s Severity) Rank() int {
	for i, sev := range SeverityOrder {
		if sev == s {
			return len(SeverityOrder) - i
		}
	}
	return 0
}

const (
	IssueCtaBroken            = "CTA_BROKEN"
	IssueCtaMissing           = "CTA_MISSING"
	IssuePriceMismatch        = "PRICE_MISMATCH"
	IssueViewportInconsistent = "VIEWPORT_INCONSISTENT"
)

type Issue struct {
	Type       string
	Severity   Severity
	CourseName string
	Viewport   string
	Field      string
	Expected   string
	Actual     string
	Message    string
}
