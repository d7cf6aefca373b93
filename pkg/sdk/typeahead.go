package blogdex

import (
	"context"
	"time"

	searchuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/search"
)

// TypeaheadResult is delivered once per settled query.
type TypeaheadResult struct {
	Query   string
	Results []SearchResult
	Err     error
}

// Typeahead debounces as-you-type queries. Only the last query of a burst
// runs, and results of a query superseded while running are dropped.
type Typeahead struct {
	engine   *Engine
	limit    int
	debounce *searchuc.Debouncer[TypeaheadResult]
	deliver  func(TypeaheadResult)
}

// Typeahead creates a debounced searcher. delay <= 0 uses 300ms.
// deliver is called from a background goroutine.
func (e *Engine) Typeahead(delay time.Duration, limit int, deliver func(TypeaheadResult)) *Typeahead {
	return &Typeahead{
		engine:   e,
		limit:    limit,
		debounce: searchuc.NewDebouncer[TypeaheadResult](delay),
		deliver:  deliver,
	}
}

// Type submits the current input.
func (t *Typeahead) Type(query string) {
	t.debounce.Submit(func() TypeaheadResult {
		results, err := t.engine.Search(context.Background(), query, t.limit)
		return TypeaheadResult{Query: query, Results: results, Err: err}
	}, t.deliver)
}

// Cancel drops any pending query and its result.
func (t *Typeahead) Cancel() {
	t.debounce.Cancel()
}
