// Package browser is the automation surface consumed by the scrape
// handlers. The interfaces here are intentionally narrow: navigation,
// element lookup, text/attribute reads and clicks are everything the
// engine needs, and tests substitute scripted implementations.
package browser

import (
	"context"
	"errors"
	"time"
)

var ErrNavigationTimeout = errors.New("navigation timed out")

// Element is a handle to a live DOM node. Handles go stale after the
// page navigates away; callers are expected to re-locate rather than
// hold handles across navigations.
type Element interface {
	Text(ctx context.Context) (string, error)
	Attr(ctx context.Context, name string) (string, error)
	Find(ctx context.Context, selector string) ([]Element, error)
	Click(ctx context.Context) error
	ScrollIntoView(ctx context.Context) error
}

// Session is one browser page under one device profile.
type Session interface {
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	CurrentURL(ctx context.Context) (string, error)
	Find(ctx context.Context, selector string) ([]Element, error)
	Back(ctx context.Context, timeout time.Duration) error
	Close() error
}

// Factory creates an independent session for a device profile. Each
// scrape pass owns exactly one session created through this.
type Factory func(ctx context.Context, profile Profile, opts Options) (Session, error)

type Options struct {
	Headless bool
}
