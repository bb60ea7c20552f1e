package cookbook

import (
	"sync"
	"time"

	"github.com/roach88/recipebox/internal/debounce"
	"github.com/roach88/recipebox/internal/query"
	"github.com/roach88/recipebox/internal/recipe"
)

// ResultsFunc receives a recomputed view and the spec that produced it.
type ResultsFunc func(spec query.Spec, results []recipe.Recipe)

// Search recomputes a view as a typed search term settles. Term changes
// are debounced; every other refinement applies immediately.
type Search struct {
	cb        *Cookbook
	onResults ResultsFunc
	typing    *debounce.Debouncer[string]

	mu     sync.Mutex
	spec   query.Spec
	recent query.RecentSearches
}

// NewSearch starts a search session from base. A non-positive window uses
// debounce.DefaultWindow. onResults may be called from a timer goroutine.
func (c *Cookbook) NewSearch(base query.Spec, window time.Duration, onResults ResultsFunc) *Search {
	s := &Search{cb: c, spec: base, onResults: onResults}
	s.typing = debounce.New(window, s.settle)
	return s
}

// Type records the current contents of the search box.
func (s *Search) Type(term string) {
	s.typing.Push(term)
}

// Submit settles a pending term immediately. If the timer is already
// settling it, Submit waits for that delivery. Without a pending term it
// recomputes the current view on the caller's goroutine.
func (s *Search) Submit() {
	if !s.typing.Flush() {
		s.publish()
	}
}

// Refine changes the non-term parts of the spec and recomputes at once.
// The term is preserved.
func (s *Search) Refine(fn func(query.Spec) query.Spec) {
	s.mu.Lock()
	term := s.spec.Term
	s.spec = fn(s.spec).WithTerm(term)
	s.mu.Unlock()
	s.publish()
}

// Spec returns the spec the last results were computed with.
func (s *Search) Spec() query.Spec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// Recent returns settled non-blank terms, most recent first.
func (s *Search) Recent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recent.List()
}

// ForgetRecent removes the recent term at index i.
func (s *Search) ForgetRecent(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent.Remove(i)
}

// Close drops any pending term and waits for results already being
// delivered. No callback runs after Close returns.
func (s *Search) Close() {
	s.typing.Stop()
}

func (s *Search) settle(term string) {
	s.mu.Lock()
	s.spec = s.spec.WithTerm(term)
	s.recent.Add(term)
	s.mu.Unlock()
	s.publish()
}

func (s *Search) publish() {
	spec := s.Spec()
	results := s.cb.View(spec)
	if s.onResults != nil {
		s.onResults(spec, results)
	}
}
