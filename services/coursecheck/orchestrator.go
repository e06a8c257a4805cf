package coursecheck

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"coursewatch/lib/browser"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Orchestrator runs every task once per viewport profile, each profile
// in its own goroutine with its own browser session.
type Orchestrator struct {
	cfg      Config
	store    *Store
	dispatch DispatchTable
	timing   Timing
	profiles []browser.Profile

	// newSession is swapped for a fake in tests.
	newSession browser.Factory
}

func NewOrchestrator(cfg Config, store *Store) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg.WithDefaults(),
		store:      store,
		dispatch:   DefaultDispatch(),
		timing:     DefaultTiming(),
		profiles:   []browser.Profile{browser.Desktop(), browser.Mobile()},
		newSession: browser.NewSession,
	}
}

// Run blocks until both viewport passes finish. Pass failures are
// logged, never propagated: one viewport crashing must not take down
// the other.
func (o *Orchestrator) Run(ctx context.Context, tasks []Task) {
	var wg sync.WaitGroup
	for _, profile := range o.profiles {
		wg.Add(1)
		go func(p browser.Profile) {
			defer wg.Done()
			o.runPass(ctx, p, tasks)
		}(profile)
	}
	wg.Wait()
}

func (o *Orchestrator) runPass(ctx context.Context, profile browser.Profile, tasks []Task) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "scrape pass aborted",
				"viewport", profile.Name, "panic", r)
		}
	}()

	ctx, span := tracer.Start(ctx, "runPass")
	defer span.End()
	span.SetAttributes(attribute.String("viewport", profile.Name))

	slog.InfoContext(ctx, "starting scrape pass", "viewport", profile.Name, "tasks", len(tasks))

	session, err := o.newSession(ctx, profile, browser.Options{Headless: !o.cfg.Headed})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "browser session failed")
		slog.ErrorContext(ctx, "failed to start browser session",
			"viewport", profile.Name, "err", err)
		return
	}
	defer session.Close()

	for _, task := range tasks {
		factory := o.dispatch.Resolve(task.Category)
		if factory == nil {
			slog.WarnContext(ctx, "no handler for category, skipping",
				"category", task.Category, "url", task.URL)
			continue
		}
		handler := factory(Deps{
			Session:      session,
			Store:        o.store,
			Origin:       o.cfg.Origin,
			Currency:     o.cfg.Currency,
			Viewport:     profile.Name,
			Timing:       o.timing,
			HomepageTabs: o.cfg.HomepageTabs,
		})
		if err := o.runTask(ctx, handler, task); err != nil {
			span.RecordError(err)
			slog.ErrorContext(ctx, "task failed",
				"viewport", profile.Name, "category", task.Category, "url", task.URL, "err", err)
		}
	}

	slog.InfoContext(ctx, "scrape pass complete", "viewport", profile.Name)
}

// runTask isolates one task so a handler panic only loses that task.
func (o *Orchestrator) runTask(ctx context.Context, h Handler, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	slog.InfoContext(ctx, "running task", "category", task.Category, "url", task.URL)
	return h.Run(ctx, task.URL)
}
