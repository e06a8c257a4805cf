package coursecheck

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"coursewatch/lib/browser"
	"coursewatch/lib/textutil"
)

var streamTab = regexp.MustCompile(`^Class \d+$`)

var streamNameSelectors = []string{"p", "h2"}
var streamPriceSelectors = []string{"h3", `[class*="price"]`}

// StreamHandler scrapes stream pages whose courses are grouped under
// per-class tabs. Cards there are plain list items, so membership is
// decided structurally: a card carries both a name paragraph and a
// price heading.
type StreamHandler struct {
	base
}

func NewStreamHandler(d Deps) Handler {
	return &StreamHandler{newBase(d)}
}

func (h *StreamHandler) Matches(url string) bool {
	return strings.Contains(url, "/international-olympiads")
}

func (h *StreamHandler) Run(ctx context.Context, url string) error {
	if err := h.Session.Navigate(ctx, url, h.Timing.Nav); err != nil {
		return err
	}
	h.settle(ctx, h.Timing.SettlePage)

	tabs := h.classTabs(ctx)
	if len(tabs) == 0 {
		return h.scrapeScope(ctx, url, "All", nil,
			"li", streamCardFilter, streamNameSelectors, streamPriceSelectors)
	}

	for _, tab := range tabs {
		reassert := h.tabReassert(tab)
		reassert(ctx)
		h.settle(ctx, h.Timing.SettleScope)
		err := h.scrapeScope(ctx, url, tab, reassert,
			"li", streamCardFilter, streamNameSelectors, streamPriceSelectors)
		if err != nil {
			slog.ErrorContext(ctx, "stream scope failed", "tab", tab, "err", err)
		}
	}
	return nil
}

// streamCardFilter scrolls the candidate into view first since stream
// pages lazy-render offscreen cards.
func streamCardFilter(ctx context.Context, card browser.Element) bool {
	if err := card.ScrollIntoView(ctx); err != nil {
		return false
	}
	names, err := card.Find(ctx, "p")
	if err != nil || len(names) == 0 {
		return false
	}
	prices, err := card.Find(ctx, "h3")
	return err == nil && len(prices) > 0
}

func (h *StreamHandler) classTabs(ctx context.Context) []string {
	candidates, err := h.Session.Find(ctx, "button, div")
	if err != nil {
		return nil
	}
	var names []string
	for _, el := range candidates {
		text, err := el.Text(ctx)
		if err != nil {
			continue
		}
		text = textutil.CollapseWhitespace(text)
		if streamTab.MatchString(text) && !slices.Contains(names, text) {
			names = append(names, text)
		}
	}
	return names
}

func (h *StreamHandler) tabReassert(name string) scopeFunc {
	return func(ctx context.Context) {
		candidates, err := h.Session.Find(ctx, "button, div")
		if err != nil {
			return
		}
		for _, el := range candidates {
			text, err := el.Text(ctx)
			if err != nil || textutil.CollapseWhitespace(text) != name {
				continue
			}
			if err := el.Click(ctx); err != nil {
				slog.WarnContext(ctx, "class tab click failed", "tab", name, "err", err)
			}
			return
		}
	}
}
