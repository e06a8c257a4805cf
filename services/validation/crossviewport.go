package validation

import (
	"fmt"

	"coursewatch/lib/textutil"
	"coursewatch/services/coursecheck/db"

	"github.com/antzucaro/matchr"
)

// Course names can render slightly differently per viewport (truncated
// suffixes, collapsed class ranges), so pairing falls back to fuzzy
// matching after exact names are exhausted.
const viewportPairThreshold = 0.93

// CrossViewportIssues pairs desktop records with their mobile
// counterparts and flags pairs whose card prices disagree. Unpaired
// records are not an issue by themselves: tab layouts legitimately
// differ between viewports.
func CrossViewportIssues(records []db.CourseRecord) []Issue {
	var desktop, mobile []db.CourseRecord
	for _, rec := range records {
		switch rec.Viewport {
		case "desktop":
			desktop = append(desktop, rec)
		case "mobile":
			mobile = append(mobile, rec)
		}
	}

	claimed := make(map[int]bool, len(mobile))
	var issues []Issue
	for _, d := range desktop {
		best := -1
		bestScore := 0.0
		for j, m := range mobile {
			if claimed[j] {
				continue
			}
			if d.CourseName == m.CourseName {
				best, bestScore = j, 1
				break
			}
			score := matchr.JaroWinkler(d.CourseName, m.CourseName, false)
			if score > bestScore {
				best, bestScore = j, score
			}
		}
		if best < 0 || bestScore < viewportPairThreshold {
			continue
		}
		claimed[best] = true

		m := mobile[best]
		dp := textutil.NormalizePrice(d.Price)
		mp := textutil.NormalizePrice(m.Price)
		if dp != "" && mp != "" && dp != mp {
			issues = append(issues, Issue{
				Type:       IssueViewportInconsistent,
				Severity:   SeverityLow,
				CourseName: d.CourseName,
				Viewport:   "mobile",
				Field:      "price",
				Expected:   d.Price,
				Actual:     m.Price,
				Message: fmt.Sprintf(
					"card price differs between desktop (%s) and mobile (%s)", d.Price, m.Price),
			})
		}
	}
	return issues
}
