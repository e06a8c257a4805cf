package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"₹10,000", "10000"},
		{"₹ 93,500", "93500"},
		{"Rs. 4500/-", "4500"},
		{"₹4,500 (incl. GST)", "4500"},
		{"free", ""},
		{"N/A", ""},
		{"Not Found", ""},
		{"Error", ""},
		{"", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, NormalizePrice(c.in), "input %q", c.in)
	}
}

func TestIsMissingPrice(t *testing.T) {
	for _, missing := range []string{"", "n/a", "N/A", " Not Found ", "ERROR"} {
		require.True(t, IsMissingPrice(missing), "input %q", missing)
	}
	for _, present := range []string{"₹10,000", "10000", "free"} {
		require.False(t, IsMissingPrice(present), "input %q", present)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "Foundation Batch 2026", CollapseWhitespace("  Foundation\n  Batch\t2026 "))
	require.Equal(t, "", CollapseWhitespace("  \n\t "))
}

func TestTrimTrailingSlash(t *testing.T) {
	require.Equal(t, "https://site.test", TrimTrailingSlash("https://site.test/"))
	require.Equal(t, "https://site.test", TrimTrailingSlash("https://site.test"))
}
