package coursecheck

import (
	"context"

	"coursewatch/lib/browser"
	"coursewatch/lib/textutil"
)

// firstText tries each selector inside root and returns the first
// non-empty text it finds, whitespace-collapsed. Selector families are
// ordered most-specific first so a generic fallback only fires when the
// preferred markup is absent.
func firstText(ctx context.Context, root browser.Element, selectors []string) string {
	for _, sel := range selectors {
		matches, err := root.Find(ctx, sel)
		if err != nil {
			continue
		}
		for _, el := range matches {
			text, err := el.Text(ctx)
			if err != nil {
				continue
			}
			if text = textutil.CollapseWhitespace(text); text != "" {
				return text
			}
		}
	}
	return notAvailable
}
