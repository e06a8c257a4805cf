package coursecheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyDetailPageShortCircuits(t *testing.T) {
	session := newFakeSession(testListing, map[string]*fakePage{testListing: {}})
	b := newTestBase(session)

	for _, url := range []string{"", testListing} {
		v := b.verifyDetailPage(context.Background(), url, testListing, "₹10,000")
		require.Equal(t, verdict{PdpPrice: "N/A", CtaStatus: "N/A", IsBroken: true}, v)
	}
}

func TestVerifyDetailPageNavigationError(t *testing.T) {
	session := newFakeSession(testListing, map[string]*fakePage{testListing: {}})
	b := newTestBase(session)

	v := b.verifyDetailPage(context.Background(), testDetail, testListing, "₹10,000")
	require.Equal(t, verdict{PdpPrice: "Error", CtaStatus: "Error", IsBroken: true}, v)

	current, err := session.CurrentURL(context.Background())
	require.NoError(t, err)
	require.Equal(t, testListing, current)
}

func TestVerifyDetailPageRedirectBackToListing(t *testing.T) {
	session := newFakeSession(testListing, map[string]*fakePage{testListing: {}})
	session.redirects = map[string]string{testDetail: testListing}
	b := newTestBase(session)

	v := b.verifyDetailPage(context.Background(), testDetail, testListing, "₹10,000")
	require.True(t, v.IsBroken)
}

func TestVerifyDetailPageExtraction(t *testing.T) {
	detail := &fakePage{elements: map[string][]*fakeElement{
		// h2 is tried first but contains marketing copy that is too
		// long to pass for a price, the span wins.
		"h2":   {{text: "Crack JEE with our flagship program starting at ₹15,000 only"}},
		"span": {{text: "₹15,000"}},
		"button, a": {
			{text: "Know More"},
			{text: "ENROLL NOW"},
		},
	}}
	session := newFakeSession(testListing, map[string]*fakePage{
		testListing: {},
		testDetail:  detail,
	})
	b := newTestBase(session)

	v := b.verifyDetailPage(context.Background(), testDetail, testListing, "₹10,000")
	require.Equal(t, "₹15,000", v.PdpPrice)
	require.Equal(t, "Found (ENROLL NOW)", v.CtaStatus)
	require.False(t, v.IsBroken)
	require.True(t, v.PriceMismatch, "10000 vs 15000 must flag a mismatch")

	current, err := session.CurrentURL(context.Background())
	require.NoError(t, err)
	require.Equal(t, testListing, current, "verification must restore the listing")
}

func TestVerifyDetailPageMatchingPrices(t *testing.T) {
	detail := &fakePage{elements: map[string][]*fakeElement{
		"h2":        {{text: "₹ 10,000"}},
		"button, a": {{text: "Buy Now @ ₹10,000"}},
	}}
	session := newFakeSession(testListing, map[string]*fakePage{
		testListing: {},
		testDetail:  detail,
	})
	b := newTestBase(session)

	v := b.verifyDetailPage(context.Background(), testDetail, testListing, "₹10,000")
	require.False(t, v.PriceMismatch, "formatting differences are not a mismatch")
	require.Equal(t, "Found (Buy Now @ ₹10,000)", v.CtaStatus)
}

func TestVerifyDetailPageNoCta(t *testing.T) {
	detail := &fakePage{elements: map[string][]*fakeElement{
		"h2": {{text: "₹15,000"}},
		"button, a": {
			{text: "Know More"},
			// Keyword present but the text is far too long to be a
			// purchase button.
			{text: "Read why thousands enroll now in our program every year"},
		},
	}}
	session := newFakeSession(testListing, map[string]*fakePage{
		testListing: {},
		testDetail:  detail,
	})
	b := newTestBase(session)

	v := b.verifyDetailPage(context.Background(), testDetail, testListing, "₹10,000")
	require.Equal(t, "Not Found", v.CtaStatus)
}

func TestVerifyDetailPageMissingCardPrice(t *testing.T) {
	detail := &fakePage{elements: map[string][]*fakeElement{
		"h2":        {{text: "₹15,000"}},
		"button, a": {{text: "Enroll Now"}},
	}}
	session := newFakeSession(testListing, map[string]*fakePage{
		testListing: {},
		testDetail:  detail,
	})
	b := newTestBase(session)

	v := b.verifyDetailPage(context.Background(), testDetail, testListing, "N/A")
	require.False(t, v.PriceMismatch, "sentinel card prices never count as a mismatch")
}
