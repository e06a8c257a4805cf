package coursecheck

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"coursewatch/lib/textutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// verdict is the outcome of visiting one detail page.
type verdict struct {
	PdpPrice      string
	CtaStatus     string
	IsBroken      bool
	PriceMismatch bool
}

var purchaseKeywords = []string{"enroll now", "enrol now", "buy now"}

// detailPriceSelectors are tried family by family. A candidate counts
// as a price when it contains the currency symbol and stays short
// enough to exclude marketing copy that merely mentions a price.
var detailPriceSelectors = []string{"h2", "span", "p", "div"}

const (
	maxPriceRunes = 25
	maxCtaRunes   = 20
)

// verifyDetailPage navigates to the resolved card link, extracts the
// authoritative price, checks for a purchase button and compares the
// detail price against the card price. The session is always returned
// to originalURL afterwards, best effort.
func (b *base) verifyDetailPage(ctx context.Context, pdpURL, originalURL, cardPrice string) verdict {
	ctx, span := tracer.Start(ctx, "verifyDetailPage")
	defer span.End()
	span.SetAttributes(attribute.String("url", pdpURL))

	if pdpURL == "" || pdpURL == originalURL {
		return verdict{PdpPrice: notAvailable, CtaStatus: notAvailable, IsBroken: true}
	}

	restore := func() {
		if err := b.Session.Navigate(ctx, originalURL, b.Timing.Nav); err != nil {
			slog.WarnContext(ctx, "failed to restore listing page", "url", originalURL, "err", err)
		}
	}

	if err := b.Session.Navigate(ctx, pdpURL, b.Timing.Nav); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "detail page navigation failed")
		slog.WarnContext(ctx, "detail page navigation failed", "url", pdpURL, "err", err)
		restore()
		return verdict{PdpPrice: errorValue, CtaStatus: errorValue, IsBroken: true}
	}
	b.settle(ctx, b.Timing.SettleScope)

	// Redirect loops land back on the listing even though the href
	// looked fine.
	broken := false
	if current, err := b.Session.CurrentURL(ctx); err == nil {
		broken = textutil.TrimTrailingSlash(current) == textutil.TrimTrailingSlash(originalURL)
	}

	pdpPrice := b.findDetailPrice(ctx)
	ctaStatus := b.findPurchaseButton(ctx)

	mismatch := false
	if !textutil.IsMissingPrice(cardPrice) && !textutil.IsMissingPrice(pdpPrice) {
		card := textutil.NormalizePrice(cardPrice)
		pdp := textutil.NormalizePrice(pdpPrice)
		if card != "" && pdp != "" && card != pdp {
			mismatch = true
			slog.WarnContext(ctx, "price mismatch", "card", cardPrice, "pdp", pdpPrice)
		}
	}

	restore()
	return verdict{PdpPrice: pdpPrice, CtaStatus: ctaStatus, IsBroken: broken, PriceMismatch: mismatch}
}

func (b *base) findDetailPrice(ctx context.Context) string {
	for _, sel := range detailPriceSelectors {
		matches, err := b.Session.Find(ctx, sel)
		if err != nil {
			continue
		}
		for _, el := range matches {
			text, err := el.Text(ctx)
			if err != nil {
				continue
			}
			text = strings.TrimSpace(text)
			if strings.Contains(text, b.Currency) && utf8.RuneCountInString(text) < maxPriceRunes {
				return text
			}
		}
	}
	return notFound
}

func (b *base) findPurchaseButton(ctx context.Context) string {
	candidates, err := b.Session.Find(ctx, "button, a")
	if err != nil {
		return notFound
	}
	for _, el := range candidates {
		raw, err := el.Text(ctx)
		if err != nil {
			continue
		}
		raw = strings.TrimSpace(raw)
		lower := strings.ToLower(raw)
		for _, kw := range purchaseKeywords {
			exact := lower == kw
			loose := strings.Contains(lower, kw) && utf8.RuneCountInString(lower) < maxCtaRunes
			if exact || loose {
				return fmt.Sprintf("Found (%s)", raw)
			}
		}
	}
	return notFound
}
