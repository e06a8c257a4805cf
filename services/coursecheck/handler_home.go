package coursecheck

import (
	"context"
	"log/slog"
	"slices"

	"coursewatch/lib/textutil"
)

const homeTabSelector = `div[data-testid*="TAB_ITEM"]`
const homeCardSelector = `div.rounded-normal.flex.flex-col`

var homeNameSelectors = []string{"h2", "p.font-semibold"}
var homePriceSelectors = []string{`[class*="price"]`, `[class*="fee"]`, "h3"}

// HomepageHandler scrapes the course carousel on the site root, one
// pass per configured category tab.
type HomepageHandler struct {
	base
}

func NewHomepageHandler(d Deps) Handler {
	return &HomepageHandler{newBase(d)}
}

func (h *HomepageHandler) Matches(url string) bool {
	return textutil.TrimTrailingSlash(url) == textutil.TrimTrailingSlash(h.Origin)
}

func (h *HomepageHandler) Run(ctx context.Context, url string) error {
	if err := h.Session.Navigate(ctx, url, h.Timing.Nav); err != nil {
		return err
	}
	h.settle(ctx, h.Timing.SettlePage)

	for _, tab := range h.tabNames(ctx) {
		scope := tab
		var reassert scopeFunc
		if tab == "" {
			// No recognizable tab bar, scrape whatever is rendered.
			scope = "Main"
		} else {
			reassert = h.tabReassert(tab)
			reassert(ctx)
			h.settle(ctx, h.Timing.SettleScope)
		}
		err := h.scrapeScope(ctx, url, scope, reassert,
			homeCardSelector, nil, homeNameSelectors, homePriceSelectors)
		if err != nil {
			slog.ErrorContext(ctx, "homepage scope failed", "tab", scope, "err", err)
		}
	}
	return nil
}

func (h *HomepageHandler) tabNames(ctx context.Context) []string {
	tabs, err := h.Session.Find(ctx, homeTabSelector)
	if err != nil {
		return []string{""}
	}
	var names []string
	for _, tab := range tabs {
		text, err := tab.Text(ctx)
		if err != nil {
			continue
		}
		text = textutil.CollapseWhitespace(text)
		if slices.Contains(h.HomepageTabs, text) {
			names = append(names, text)
		}
	}
	if len(names) == 0 {
		return []string{""}
	}
	return names
}

func (h *HomepageHandler) tabReassert(name string) scopeFunc {
	return func(ctx context.Context) {
		tabs, err := h.Session.Find(ctx, homeTabSelector)
		if err != nil {
			return
		}
		for _, tab := range tabs {
			text, err := tab.Text(ctx)
			if err != nil || textutil.CollapseWhitespace(text) != name {
				continue
			}
			if err := tab.Click(ctx); err != nil {
				slog.WarnContext(ctx, "tab click failed", "tab", name, "err", err)
			}
			return
		}
	}
}
