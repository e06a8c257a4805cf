package validation

import (
	"testing"

	"coursewatch/services/coursecheck/db"

	"github.com/stretchr/testify/require"
)

func viewportRecord(name, price, viewport string) db.CourseRecord {
	return db.CourseRecord{
		CourseName: name,
		Price:      price,
		Viewport:   viewport,
	}
}

func TestCrossViewportExactPair(t *testing.T) {
	issues := CrossViewportIssues([]db.CourseRecord{
		viewportRecord("Foundation Batch", "₹10,000", "desktop"),
		viewportRecord("Foundation Batch", "₹12,000", "mobile"),
	})
	require.Len(t, issues, 1)
	require.Equal(t, IssueViewportInconsistent, issues[0].Type)
	require.Equal(t, SeverityLow, issues[0].Severity)
	require.Equal(t, "₹10,000", issues[0].Expected)
	require.Equal(t, "₹12,000", issues[0].Actual)
}

func TestCrossViewportMatchingPrices(t *testing.T) {
	// Formatting differences are not an inconsistency.
	issues := CrossViewportIssues([]db.CourseRecord{
		viewportRecord("Foundation Batch", "₹10,000", "desktop"),
		viewportRecord("Foundation Batch", "₹ 10,000", "mobile"),
	})
	require.Empty(t, issues)
}

func TestCrossViewportFuzzyPair(t *testing.T) {
	// Mobile truncates the suffix, the fuzzy pass still pairs them.
	issues := CrossViewportIssues([]db.CourseRecord{
		viewportRecord("NEET Achiever Batch 2026-27", "₹40,000", "desktop"),
		viewportRecord("NEET Achiever Batch 2026", "₹45,000", "mobile"),
	})
	require.Len(t, issues, 1)
	require.Equal(t, IssueViewportInconsistent, issues[0].Type)
}

func TestCrossViewportDissimilarNamesNotPaired(t *testing.T) {
	issues := CrossViewportIssues([]db.CourseRecord{
		viewportRecord("Foundation Batch", "₹10,000", "desktop"),
		viewportRecord("Olympiad Crash Course", "₹99,999", "mobile"),
	})
	require.Empty(t, issues)
}

func TestCrossViewportUnpairedRecords(t *testing.T) {
	// A course only rendered on one viewport is not an issue.
	issues := CrossViewportIssues([]db.CourseRecord{
		viewportRecord("Desktop Only Batch", "₹10,000", "desktop"),
	})
	require.Empty(t, issues)
}

func TestCrossViewportMissingPricesSkipped(t *testing.T) {
	issues := CrossViewportIssues([]db.CourseRecord{
		viewportRecord("Foundation Batch", "N/A", "desktop"),
		viewportRecord("Foundation Batch", "₹12,000", "mobile"),
	})
	require.Empty(t, issues)
}
