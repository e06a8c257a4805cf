package validation

import (
	"context"

	"coursewatch/services/coursecheck/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/validation")

// RecordSource abstracts where the scraped records come from.
type RecordSource interface {
	Records(ctx context.Context) ([]db.CourseRecord, error)
	ViewportCounts(ctx context.Context) (map[string]int, error)
}

type Service struct {
	source RecordSource
	chain  Chain
}

func NewService(source RecordSource) Service {
	return Service{source: source, chain: DefaultChain()}
}

type Summary struct {
	TotalIssues  int
	ByType       map[string]int
	BySeverity   map[Severity]int
	ByViewport   map[string]int
	RecordCounts map[string]int
}

type Report struct {
	Issues  []Issue
	Summary Summary
}

func (r Report) IssuesBySeverity(sev Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// Run validates every stored record through the rule chain, appends the
// cross-viewport comparison and tallies the summary.
func (s Service) Run(ctx context.Context) (Report, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	records, err := s.source.Records(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "loading records failed")
		return Report{}, err
	}

	var issues []Issue
	for _, rec := range records {
		found := s.chain.Validate(rec)
		for i := range found {
			found[i].Viewport = rec.Viewport
		}
		issues = append(issues, found...)
	}
	issues = append(issues, CrossViewportIssues(records)...)

	counts, err := s.source.ViewportCounts(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "counting records failed")
		return Report{}, err
	}

	summary := Summary{
		TotalIssues:  len(issues),
		ByType:       map[string]int{},
		BySeverity:   map[Severity]int{},
		ByViewport:   map[string]int{},
		RecordCounts: counts,
	}
	for _, issue := range issues {
		summary.ByType[issue.Type]++
		summary.BySeverity[issue.Severity]++
		summary.ByViewport[issue.Viewport]++
	}

	return Report{Issues: issues, Summary: summary}, nil
}
