package coursecheck

// HandlerFactory builds a fresh handler for one task. Handlers carry
// per-run state (the visited set), so the dispatch table hands out
// constructors rather than instances.
type HandlerFactory func(Deps) Handler

type DispatchTable map[string]HandlerFactory

func DefaultDispatch() DispatchTable {
	return DispatchTable{
		"HOME":         NewHomepageHandler,
		"PLP_PAGES":    NewListingHandler,
		"STREAM_PAGES": NewStreamHandler,
	}
}

// Resolve returns nil for categories with no registered handler.
func (t DispatchTable) Resolve(category string) HandlerFactory {
	return t[category]
}
