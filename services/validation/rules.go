package validation

import (
	"coursewatch/lib/textutil"
	"coursewatch/services/coursecheck/db"
)

// Rule inspects a single record. Rules never abort the chain: every
// rule sees every record regardless of what earlier rules found.
type Rule interface {
	Validate(rec db.CourseRecord) []Issue
}

type Chain []Rule

func (c Chain) Validate(rec db.CourseRecord) []Issue {
	var issues []Issue
	for _, rule := range c {
		issues = append(issues, rule.Validate(rec)...)
	}
	return issues
}

func DefaultChain() Chain {
	return Chain{
		PurchaseCTARule{},
		PriceMismatchRule{},
	}
}

// PurchaseCTARule checks that a card leads somewhere purchasable: the
// link must exist, must leave the listing page, and the detail page
// must carry an enroll/buy button. Each record yields at most one of
// these issues, most severe first.
type PurchaseCTARule struct{}

func (PurchaseCTARule) Validate(rec db.CourseRecord) []Issue {
	link := rec.CtaLink
	if link == "" || link == "N/A" || link == "Error" {
		return []Issue{{
			Type:       IssueCtaBroken,
			Severity:   SeverityCritical,
			CourseName: rec.CourseName,
			Field:      "cta_link",
			Expected:   "a resolvable detail page URL",
			Actual:     link,
			Message:    "no usable link found on the course card",
		}}
	}
	sameAsListing := rec.IsBroken == 1 ||
		textutil.TrimTrailingSlash(link) == textutil.TrimTrailingSlash(rec.BaseURL)
	if sameAsListing {
		return []Issue{{
			Type:       IssueCtaBroken,
			Severity:   SeverityCritical,
			CourseName: rec.CourseName,
			Field:      "cta_link",
			Expected:   "a URL distinct from the listing page",
			Actual:     link,
			Message:    "card link never left the listing page",
		}}
	}
	if rec.CtaStatus == "Not Found" {
		return []Issue{{
			Type:       IssueCtaMissing,
			Severity:   SeverityHigh,
			CourseName: rec.CourseName,
			Field:      "cta_status",
			Expected:   "an Enroll Now / Buy Now button",
			Actual:     rec.CtaStatus,
			Message:    "detail page is reachable but has no purchase button",
		}}
	}
	return nil
}

// PriceMismatchRule compares the card price against the detail page
// price. The flag persisted at scrape time is honored even when the
// stored strings normalize equal, since the scraper saw the live page.
type PriceMismatchRule struct{}

func (PriceMismatchRule) Validate(rec db.CourseRecord) []Issue {
	cardMissing := textutil.IsMissingPrice(rec.Price)
	pdpMissing := textutil.IsMissingPrice(rec.PdpPrice)

	switch {
	case cardMissing && pdpMissing:
		return nil
	case cardMissing:
		return []Issue{{
			Type:       IssuePriceMismatch,
			Severity:   SeverityLow,
			CourseName: rec.CourseName,
			Field:      "price",
			Expected:   rec.PdpPrice,
			Actual:     rec.Price,
			Message:    "detail page shows a price but the card does not",
		}}
	case pdpMissing:
		return []Issue{{
			Type:       IssuePriceMismatch,
			Severity:   SeverityMedium,
			CourseName: rec.CourseName,
			Field:      "pdp_price",
			Expected:   rec.Price,
			Actual:     rec.PdpPrice,
			Message:    "card shows a price but the detail page does not",
		}}
	}

	card := textutil.NormalizePrice(rec.Price)
	pdp := textutil.NormalizePrice(rec.PdpPrice)
	differ := card != "" && pdp != "" && card != pdp
	if rec.PriceMismatch == 1 || differ {
		return []Issue{{
			Type:       IssuePriceMismatch,
			Severity:   SeverityMedium,
			CourseName: rec.CourseName,
			Field:      "pdp_price",
			Expected:   rec.Price,
			Actual:     rec.PdpPrice,
			Message:    "card price and detail page price disagree",
		}}
	}
	return nil
}
