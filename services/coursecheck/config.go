package coursecheck

import "time"

type Config struct {
	// Origin is the site root used to resolve relative card links,
	// e.g. "https://allen.in".
	Origin   string `json:"origin"`
	Currency string `json:"currency"`
	TaskList string `json:"task_list"`
	Database string `json:"database"`
	// Headed runs the browser with a visible window, useful when
	// debugging selector drift.
	Headed bool `json:"headed"`
	// HomepageTabs is the fixed set of top-level category tabs the
	// homepage handler iterates.
	HomepageTabs []string `json:"homepage_tabs"`
}

func (c Config) WithDefaults() Config {
	if c.Origin == "" {
		c.Origin = "https://allen.in"
	}
	if c.Currency == "" {
		c.Currency = "₹"
	}
	if c.TaskList == "" {
		c.TaskList = "urls.txt"
	}
	if c.Database == "" {
		c.Database = "coursewatch.db"
	}
	if len(c.HomepageTabs) == 0 {
		c.HomepageTabs = []string{"JEE", "NEET", "Classes 6-10"}
	}
	return c
}

// Timing groups every wait the scrape choreography depends on. Tests
// shrink these to keep the suite fast.
type Timing struct {
	// Nav bounds every page navigation.
	Nav time.Duration
	// ClickWait bounds the poll for a URL change after clicking a
	// card control.
	ClickWait time.Duration
	// Poll is the URL poll interval during ClickWait.
	Poll time.Duration
	// SettlePage, SettleScope and SettleCard are the pauses after a
	// page load, a tab/pill activation and a per-card re-assertion.
	SettlePage  time.Duration
	SettleScope time.Duration
	SettleCard  time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		Nav:         time.Second * 30,
		ClickWait:   time.Second * 8,
		Poll:        time.Millisecond * 500,
		SettlePage:  time.Second * 3,
		SettleScope: time.Second * 2,
		SettleCard:  time.Second,
	}
}
