package cookbook

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/query"
	"github.com/roach88/recipebox/internal/recipe"
)

type resultLog struct {
	mu    sync.Mutex
	specs []query.Spec
	views [][]string
}

func (l *resultLog) record(spec query.Spec, results []recipe.Recipe) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.specs = append(l.specs, spec)
	l.views = append(l.views, names(results))
}

func (l *resultLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.views)
}

func (l *resultLog) last() (query.Spec, []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.specs[len(l.specs)-1], l.views[len(l.views)-1]
}

func TestSearch_TypingSettlesOnce(t *testing.T) {
	cb, _ := seeded(t)
	log := &resultLog{}
	s := cb.NewSearch(query.DefaultSpec(), 20*time.Millisecond, log.record)
	defer s.Close()

	for _, prefix := range []string{"r", "ri", "ric", "rice"} {
		s.Type(prefix)
	}

	require.Eventually(t, func() bool { return log.count() == 1 }, time.Second, 5*time.Millisecond)
	spec, view := log.last()
	assert.Equal(t, "rice", spec.Term)
	assert.Equal(t, []string{"Pilau"}, view)
	assert.Equal(t, []string{"rice"}, s.Recent())

	// No stragglers from the superseded keystrokes.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, log.count())
}

func TestSearch_SubmitSettlesImmediately(t *testing.T) {
	cb, _ := seeded(t)
	log := &resultLog{}
	s := cb.NewSearch(query.DefaultSpec(), time.Hour, log.record)
	defer s.Close()

	s.Type("maize")
	s.Submit()

	require.Equal(t, 1, log.count())
	_, view := log.last()
	assert.Equal(t, []string{"Githeri", "Ugali Samaki"}, view)
}

func TestSearch_SubmitWhileSettlingPublishesOnce(t *testing.T) {
	cb, _ := seeded(t)
	log := &resultLog{}
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	s := cb.NewSearch(query.DefaultSpec(), time.Millisecond, func(spec query.Spec, results []recipe.Recipe) {
		log.record(spec, results)
		once.Do(func() {
			close(started)
			<-release
		})
	})

	s.Type("rice")
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("term never settled")
	}

	submitted := make(chan struct{})
	go func() {
		s.Submit()
		s.Close()
		close(submitted)
	}()

	select {
	case <-submitted:
		t.Fatal("Submit returned while results were still being delivered")
	case <-time.After(30 * time.Millisecond):
	}

	close(release)
	select {
	case <-submitted:
	case <-time.After(time.Second):
		t.Fatal("Submit did not return")
	}
	assert.Equal(t, 1, log.count())
	spec, view := log.last()
	assert.Equal(t, "rice", spec.Term)
	assert.Equal(t, []string{"Pilau"}, view)
}

func TestSearch_SubmitWithoutPendingTermRecomputes(t *testing.T) {
	cb, _ := seeded(t)
	log := &resultLog{}
	s := cb.NewSearch(query.DefaultSpec(), time.Hour, log.record)
	defer s.Close()

	s.Submit()
	require.Equal(t, 1, log.count())
	_, view := log.last()
	assert.Len(t, view, 3)
	assert.Empty(t, s.Recent())
}

func TestSearch_RefineKeepsTerm(t *testing.T) {
	cb, _ := seeded(t)
	log := &resultLog{}
	s := cb.NewSearch(query.DefaultSpec(), time.Hour, log.record)
	defer s.Close()

	s.Type("onions")
	s.Submit()
	s.Refine(func(spec query.Spec) query.Spec {
		return spec.WithTerm("ignored").WithFavoritesOnly(true).SortedBy(query.SortByName, query.Ascending)
	})

	spec, view := log.last()
	assert.Equal(t, "onions", spec.Term)
	assert.Equal(t, []string{"Pilau", "Ugali Samaki"}, view)
}

func TestSearch_RecentSearches(t *testing.T) {
	cb, _ := seeded(t)
	s := cb.NewSearch(query.DefaultSpec(), time.Hour, nil)
	defer s.Close()

	for _, term := range []string{"a", "b", "", "a", "c", "d", "e", "f"} {
		s.Type(term)
		s.Submit()
	}
	assert.Equal(t, []string{"f", "e", "d", "c", "a"}, s.Recent())

	s.ForgetRecent(1)
	assert.Equal(t, []string{"f", "d", "c", "a"}, s.Recent())
}

func TestSearch_CloseDropsPendingTerm(t *testing.T) {
	cb, _ := seeded(t)
	log := &resultLog{}
	s := cb.NewSearch(query.DefaultSpec(), 10*time.Millisecond, log.record)

	s.Type("fish")
	s.Close()

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, log.count())
	assert.Equal(t, "", s.Spec().Term)
}
