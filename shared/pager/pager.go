// Package pager implements offset/limit infinite-scroll loading for list views.
//
// A Loader owns one view's list, cursor and loading flags. LoadInitial starts a
// new generation (a fresh filter snapshot) and LoadMore appends the next page of
// the current generation. Every fetch remembers the generation it was issued
// under and its result is dropped with ErrStale when a newer LoadInitial has
// happened since.
package pager

import (
	"backoffice/shared/failure"
	"context"
	"errors"
	"sync"
)

// ErrStale is returned when a fetch resolved after its filter snapshot was replaced.
var ErrStale = errors.New("pager: result belongs to a superseded filter")

// Cursor is the position a page is requested at.
type Cursor struct {
	Offset int
	Limit  int
}

// Page is one server response.
type Page[T any] struct {
	Items   []T
	HasMore bool
}

// NoFilter is the filter type of lists that cannot be narrowed.
type NoFilter struct{}

// Fetcher requests a single page for filter at cursor.
type Fetcher[T any, F any] func(ctx context.Context, filter F, cursor Cursor) (Page[T], error)

// Observer receives loader events, typically for metrics.
type Observer interface {
	PageLoaded(loader string, items int)
	PageFailed(loader string)
	StaleDiscarded(loader string)
}

type nopObserver struct{}

func (nopObserver) PageLoaded(string, int) {}
func (nopObserver) PageFailed(string) {}
func (nopObserver) StaleDiscarded(string) {}

type options struct {
	observer Observer
}

type Option func(*options)

func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// State is a copy of the loader state, safe to render.
type State[T any, F any] struct {
	Items          []T
	Filter         F
	Offset         int
	Limit          int
	HasMore        bool
	LoadingInitial bool
	LoadingMore    bool
	Error          string
	Generation     uint64
}

type Loader[T any, F any] struct {
	mu       sync.Mutex
	name     string
	limit    int
	fetch    Fetcher[T, F]
	observer Observer

	items          []T
	filter         F
	offset         int
	hasMore        bool
	loadingInitial bool
	loadingMore    bool
	lastErr        string
	generation     uint64
}

// New builds a loader named name (used in logs and metrics) fetching limit items per page.
func New[T any, F any](name string, limit int, fetch Fetcher[T, F], opts ...Option) *Loader[T, F] {
	o := options{observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}

	if limit <= 0 {
		limit = 20
	}

	return &Loader[T, F]{
		name:     name,
		limit:    limit,
		fetch:    fetch,
		observer: o.observer,
	}
}

// LoadInitial discards the list, resets the cursor and loads the first page for filter.
// The reset is visible to State before the fetch resolves.
func (l *Loader[T, F]) LoadInitial(ctx context.Context, filter F) (Page[T], error) {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.filter = filter
	l.items = nil
	l.offset = 0
	l.hasMore = false
	l.loadingInitial = true
	l.loadingMore = false
	l.lastErr = ""
	l.mu.Unlock()

	page, err := l.fetch(ctx, filter, Cursor{Offset: 0, Limit: l.limit})

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		l.observer.StaleDiscarded(l.name)

		return Page[T]{}, ErrStale
	}

	l.loadingInitial = false

	if err != nil {
		l.lastErr = failure.Message(err)
		// Offset 0 stays retryable through LoadMore.
		l.hasMore = true
		l.observer.PageFailed(l.name)

		return Page[T]{}, err
	}

	l.items = append(make([]T, 0, len(page.Items)), page.Items...)
	l.offset = len(page.Items)
	l.hasMore = page.HasMore
	l.observer.PageLoaded(l.name, len(page.Items))

	return page, nil
}

// LoadMore appends the next page. It reports loaded=false without issuing a
// request when a load is already in flight or the server said there is no more.
func (l *Loader[T, F]) LoadMore(ctx context.Context) (page Page[T], loaded bool, err error) {
	l.mu.Lock()

	if l.loadingInitial || l.loadingMore || !l.hasMore {
		l.mu.Unlock()

		return Page[T]{}, false, nil
	}

	l.loadingMore = true
	gen := l.generation
	filter := l.filter
	cursor := Cursor{Offset: l.offset, Limit: l.limit}
	l.mu.Unlock()

	page, err = l.fetch(ctx, filter, cursor)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		l.observer.StaleDiscarded(l.name)

		return Page[T]{}, true, ErrStale
	}

	l.loadingMore = false

	if err != nil {
		l.lastErr = failure.Message(err)
		l.observer.PageFailed(l.name)

		return Page[T]{}, true, err
	}

	l.items = append(l.items, page.Items...)
	l.offset += len(page.Items)
	l.hasMore = page.HasMore
	l.lastErr = ""
	l.observer.PageLoaded(l.name, len(page.Items))

	return page, true, nil
}

// DismissError clears the banner message without touching the list.
func (l *Loader[T, F]) DismissError() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastErr = ""
}

// Remove drops the first item matching match, used after a successful delete.
// The cursor is left alone; it only ever advances within a generation.
func (l *Loader[T, F]) Remove(match func(T) bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, item := range l.items {
		if match(item) {
			l.items = append(l.items[:i:i], l.items[i+1:]...)

			return true
		}
	}

	return false
}

// Generation returns the current filter generation.
func (l *Loader[T, F]) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.generation
}

func (l *Loader[T, F]) State() State[T, F] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return State[T, F]{
		Items:          append([]T(nil), l.items...),
		Filter:         l.filter,
		Offset:         l.offset,
		Limit:          l.limit,
		HasMore:        l.hasMore,
		LoadingInitial: l.loadingInitial,
		LoadingMore:    l.loadingMore,
		Error:          l.lastErr,
		Generation:     l.generation,
	}
}
