package coursecheck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	require.Equal(t, "https://allen.in", cfg.Origin)
	require.Equal(t, "₹", cfg.Currency)
	require.Equal(t, "urls.txt", cfg.TaskList)
	require.Equal(t, "coursewatch.db", cfg.Database)
	require.NotEmpty(t, cfg.HomepageTabs)

	custom := Config{Origin: "https://other.test"}.WithDefaults()
	require.Equal(t, "https://other.test", custom.Origin)
}

// A config file is optional, so the zero config must still resolve
// relative card hrefs into navigable absolute URLs.
func TestDefaultOriginResolvesRelativeLinks(t *testing.T) {
	cfg := Config{}.WithDefaults()
	b := newBase(Deps{Origin: cfg.Origin})
	require.Equal(t, "https://allen.in/course/foundation", b.absoluteURL("/course/foundation"))
}

func TestDefaultOriginMatchesHomepage(t *testing.T) {
	cfg := Config{}.WithDefaults()
	h := NewHomepageHandler(Deps{Origin: cfg.Origin})
	require.True(t, h.Matches("https://allen.in/"))
}
