package coursecheck

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coursewatch/lib/browser"
	"coursewatch/services/coursecheck/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/coursecheck")

const (
	notAvailable = "N/A"
	notFound     = "Not Found"
	errorValue   = "Error"
)

// Handler owns the navigation choreography for one page shape.
type Handler interface {
	Matches(url string) bool
	Run(ctx context.Context, url string) error
}

// Deps is everything a handler needs for one task on one viewport.
type Deps struct {
	Session      browser.Session
	Store        *Store
	Origin       string
	Currency     string
	Viewport     string
	Timing       Timing
	HomepageTabs []string
}

// scopeFunc re-activates the tab or pill owning the current card list.
// SPA state resets after card interactions, so handlers call this
// before every card and the link resolver calls it after navigating
// back from a detail page.
type scopeFunc func(ctx context.Context)

type base struct {
	Deps
	visited map[string]struct{}
}

func newBase(d Deps) base {
	return base{Deps: d, visited: map[string]struct{}{}}
}

func (b *base) seen(scope, name string) bool {
	key := scope + "\x00" + name
	if _, ok := b.visited[key]; ok {
		return true
	}
	b.visited[key] = struct{}{}
	return false
}

func (b *base) settle(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// scrapeScope enumerates the cards of one tab/pill scope in DOM order,
// processes each and saves the accumulated batch. Card handles are
// re-located by index on every iteration since processing a card
// round-trips through a detail page and stales prior handles.
func (b *base) scrapeScope(
	ctx context.Context,
	pageURL, scopeName string,
	reassert scopeFunc,
	cardSelector string,
	filter func(ctx context.Context, card browser.Element) bool,
	nameSelectors, priceSelectors []string,
) error {
	ctx, span := tracer.Start(ctx, "scrapeScope")
	defer span.End()
	span.SetAttributes(
		attribute.String("scope", scopeName),
		attribute.String("viewport", b.Viewport),
	)

	cards, err := b.Session.Find(ctx, cardSelector)
	if err != nil {
		return fmt.Errorf("enumerate cards: %w", err)
	}
	total := len(cards)
	slog.InfoContext(ctx, "scraping scope", "viewport", b.Viewport, "scope", scopeName, "cards", total)

	var batch []db.CreateCourseRecordParams
	for i := 0; i < total; i++ {
		if reassert != nil {
			reassert(ctx)
			b.settle(ctx, b.Timing.SettleCard)
		}

		fresh, err := b.Session.Find(ctx, cardSelector)
		if err != nil || i >= len(fresh) {
			break
		}
		card := fresh[i]

		if filter != nil && !filter(ctx, card) {
			continue
		}
		rec, ok := b.processCard(ctx, pageURL, scopeName, reassert, card, nameSelectors, priceSelectors)
		if ok {
			batch = append(batch, rec)
		}
	}

	return b.Store.SaveBatch(ctx, batch)
}

func (b *base) processCard(
	ctx context.Context,
	pageURL, scopeName string,
	reassert scopeFunc,
	card browser.Element,
	nameSelectors, priceSelectors []string,
) (db.CreateCourseRecordParams, bool) {
	name := firstText(ctx, card, nameSelectors)
	if name == notAvailable || b.seen(scopeName, name) {
		return db.CreateCourseRecordParams{}, false
	}
	slog.InfoContext(ctx, "course card", "viewport", b.Viewport, "scope", scopeName, "name", name)

	price := firstText(ctx, card, priceSelectors)
	link := b.resolveLink(ctx, card, reassert)
	slog.InfoContext(ctx, "resolved card link", "name", name, "link", link)

	v := b.verifyDetailPage(ctx, link, pageURL, price)
	slog.InfoContext(ctx, "verified detail page",
		"name", name, "pdp_price", v.PdpPrice, "cta", v.CtaStatus)
	if v.IsBroken {
		slog.WarnContext(ctx, "card link never left the listing", "name", name, "link", link)
	}

	return db.CreateCourseRecordParams{
		BaseURL:       pageURL,
		CourseName:    name,
		CtaLink:       link,
		Price:         price,
		PdpPrice:      v.PdpPrice,
		CtaStatus:     v.CtaStatus,
		IsBroken:      boolToFlag(v.IsBroken),
		PriceMismatch: boolToFlag(v.PriceMismatch),
		Viewport:      b.Viewport,
	}, true
}

func boolToFlag(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
