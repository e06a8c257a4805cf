package coursecheck

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"coursewatch/lib/textutil"
)

const listingCardSelector = `li[data-testid^="card-"]`

var listingNameSelectors = []string{"p.font-semibold", "h2", "p"}
var listingPriceSelectors = []string{`[class*="price"]`, `[class*="fee"]`, "h3"}

// listingPill matches the delivery-mode filter buttons above a course
// listing. Anything else rendered as a button is ignored.
var listingPill = regexp.MustCompile(`^(Live|Recorded|Online Test Series|Offline Test Series)$`)

// ListingHandler scrapes course listing pages, iterating every
// delivery-mode pill it recognizes.
type ListingHandler struct {
	base
}

func NewListingHandler(d Deps) Handler {
	return &ListingHandler{newBase(d)}
}

func (h *ListingHandler) Matches(url string) bool {
	if textutil.TrimTrailingSlash(url) == textutil.TrimTrailingSlash(h.Origin) {
		return false
	}
	return strings.Contains(url, "/online-coaching-") || strings.Contains(url, "/neet/")
}

func (h *ListingHandler) Run(ctx context.Context, url string) error {
	if err := h.Session.Navigate(ctx, url, h.Timing.Nav); err != nil {
		return err
	}
	h.settle(ctx, h.Timing.SettlePage)

	pills := h.pillNames(ctx)
	if len(pills) == 0 {
		return h.scrapeScope(ctx, url, "All", nil,
			listingCardSelector, nil, listingNameSelectors, listingPriceSelectors)
	}

	for _, pill := range pills {
		reassert := h.pillReassert(pill)
		reassert(ctx)
		h.settle(ctx, h.Timing.SettleScope)
		err := h.scrapeScope(ctx, url, pill, reassert,
			listingCardSelector, nil, listingNameSelectors, listingPriceSelectors)
		if err != nil {
			slog.ErrorContext(ctx, "listing scope failed", "pill", pill, "err", err)
		}
	}
	return nil
}

func (h *ListingHandler) pillNames(ctx context.Context) []string {
	buttons, err := h.Session.Find(ctx, "button")
	if err != nil {
		return nil
	}
	var names []string
	for _, btn := range buttons {
		text, err := btn.Text(ctx)
		if err != nil {
			continue
		}
		text = textutil.CollapseWhitespace(text)
		if listingPill.MatchString(text) && !slices.Contains(names, text) {
			names = append(names, text)
		}
	}
	return names
}

func (h *ListingHandler) pillReassert(name string) scopeFunc {
	return func(ctx context.Context) {
		buttons, err := h.Session.Find(ctx, "button")
		if err != nil {
			return
		}
		for _, btn := range buttons {
			text, err := btn.Text(ctx)
			if err != nil || textutil.CollapseWhitespace(text) != name {
				continue
			}
			if err := btn.Click(ctx); err != nil {
				slog.WarnContext(ctx, "pill click failed", "pill", name, "err", err)
			}
			return
		}
	}
}
