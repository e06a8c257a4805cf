package coursecheck

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coursewatch/lib/browser"
)

// fakeElement is a scripted DOM node. Children are keyed by the literal
// selector string the engine uses to look them up.
type fakeElement struct {
	text     string
	attrs    map[string]string
	children map[string][]*fakeElement
	onClick  func()
	clicks   int
}

func (e *fakeElement) Text(ctx context.Context) (string, error) {
	return e.text, nil
}

func (e *fakeElement) Attr(ctx context.Context, name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Find(ctx context.Context, selector string) ([]browser.Element, error) {
	return toElements(e.children[selector]), nil
}

func (e *fakeElement) Click(ctx context.Context) error {
	e.clicks++
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) ScrollIntoView(ctx context.Context) error {
	return nil
}

func toElements(els []*fakeElement) []browser.Element {
	out := make([]browser.Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out
}

// fakePage maps page-level selectors to elements.
type fakePage struct {
	elements map[string][]*fakeElement
}

// fakeSession is a scripted browser: a URL-keyed set of pages plus a
// navigation history. Navigating to a URL without a page entry fails,
// which is how tests simulate dead links.
type fakeSession struct {
	mu        sync.Mutex
	pages     map[string]*fakePage
	redirects map[string]string
	current   string
	history   []string
	closed    bool
}

func newFakeSession(start string, pages map[string]*fakePage) *fakeSession {
	return &fakeSession{pages: pages, current: start}
}

func (s *fakeSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := url
	if redirected, ok := s.redirects[url]; ok {
		target = redirected
	}
	if _, ok := s.pages[target]; !ok {
		return fmt.Errorf("no page served at %s", target)
	}
	s.history = append(s.history, s.current)
	s.current = target
	return nil
}

func (s *fakeSession) CurrentURL(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

func (s *fakeSession) Find(ctx context.Context, selector string) ([]browser.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, ok := s.pages[s.current]
	if !ok {
		return nil, fmt.Errorf("no page served at %s", s.current)
	}
	return toElements(page.elements[selector]), nil
}

func (s *fakeSession) Back(ctx context.Context, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return fmt.Errorf("no history to go back to")
	}
	s.current = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// setURL simulates a script-driven navigation, e.g. from a card button
// click handler.
func (s *fakeSession) setURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, s.current)
	s.current = url
}

// fastTiming keeps the polling choreography but collapses every wait.
func fastTiming() Timing {
	return Timing{
		Nav:         time.Second,
		ClickWait:   time.Millisecond * 100,
		Poll:        time.Millisecond * 5,
		SettlePage:  0,
		SettleScope: 0,
		SettleCard:  0,
	}
}
