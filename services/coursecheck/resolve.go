package coursecheck

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"coursewatch/lib/browser"
	"coursewatch/lib/textutil"
)

// resolveLink finds the detail-page URL behind a card. Anchors with a
// real href win outright. Cards that navigate via script get clicked,
// and the session URL is polled until it changes or ClickWait runs out.
// After a click navigation the listing is restored with a back
// navigation plus scope re-assertion.
//
// Every failure degrades to a URL that verifyDetailPage will classify
// as broken rather than aborting the scope.
func (b *base) resolveLink(ctx context.Context, card browser.Element, reassert scopeFunc) string {
	if href, err := card.Attr(ctx, "href"); err == nil && usableHref(href) {
		return b.absoluteURL(href)
	}
	if anchors, err := card.Find(ctx, "a"); err == nil {
		for _, a := range anchors {
			href, err := a.Attr(ctx, "href")
			if err == nil && usableHref(href) {
				return b.absoluteURL(href)
			}
		}
	}

	listing, err := b.Session.CurrentURL(ctx)
	if err != nil {
		slog.WarnContext(ctx, "cannot read current url", "err", err)
		return ""
	}

	buttons, err := card.Find(ctx, "button")
	if err != nil || len(buttons) == 0 {
		return listing
	}
	btn := buttons[0]
	if err := btn.ScrollIntoView(ctx); err != nil {
		slog.WarnContext(ctx, "scroll to card button failed", "err", err)
		return listing
	}
	if err := btn.Click(ctx); err != nil {
		slog.WarnContext(ctx, "card button click failed", "err", err)
		return listing
	}

	final := b.waitForURLChange(ctx, listing)
	if final != listing {
		if err := b.Session.Back(ctx, b.Timing.Nav); err != nil {
			slog.WarnContext(ctx, "back navigation failed", "err", err)
		}
		if reassert != nil {
			reassert(ctx)
		}
		b.settle(ctx, b.Timing.SettleScope)
	}
	return final
}

func (b *base) waitForURLChange(ctx context.Context, from string) string {
	deadline := time.Now().Add(b.Timing.ClickWait)
	for time.Now().Before(deadline) {
		current, err := b.Session.CurrentURL(ctx)
		if err == nil && current != from {
			return current
		}
		select {
		case <-time.After(b.Timing.Poll):
		case <-ctx.Done():
			return from
		}
	}
	current, err := b.Session.CurrentURL(ctx)
	if err != nil {
		return from
	}
	return current
}

func usableHref(href string) bool {
	return href != "" &&
		!strings.HasPrefix(href, "#") &&
		!strings.Contains(href, "javascript")
}

func (b *base) absoluteURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return textutil.TrimTrailingSlash(b.Origin) + href
	}
	return href
}
