package pager_test

import (
	"backoffice/shared/failure"
	"backoffice/shared/pager"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type filter struct {
	Title string
}

type call struct {
	Filter filter
	Cursor pager.Cursor
}

// scripted answers each fetch with the next queued page and records the request.
type scripted struct {
	mu    sync.Mutex
	pages []pager.Page[int]
	errs  []error
	calls []call
}

func (s *scripted) fetch(_ context.Context, f filter, c pager.Cursor) (pager.Page[int], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, call{Filter: f, Cursor: c})

	var err error
	if len(s.errs) > 0 {
		err, s.errs = s.errs[0], s.errs[1:]
	}

	if err != nil {
		return pager.Page[int]{}, err
	}

	if len(s.pages) == 0 {
		return pager.Page[int]{}, nil
	}

	page := s.pages[0]
	s.pages = s.pages[1:]

	return page, nil
}

func seq(from, n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = from + i
	}

	return items
}

type countingObserver struct {
	loaded, failed, stale atomic.Int32
}

func (o *countingObserver) PageLoaded(string, int) { o.loaded.Add(1) }
func (o *countingObserver) PageFailed(string) { o.failed.Add(1) }
func (o *countingObserver) StaleDiscarded(string) { o.stale.Add(1) }

func TestLoader_TwentyThenFive(t *testing.T) {
	src := &scripted{pages: []pager.Page[int]{
		{Items: seq(0, 20), HasMore: true},
		{Items: seq(20, 5), HasMore: false},
	}}
	loader := pager.New("media", 20, src.fetch)

	_, err := loader.LoadInitial(context.Background(), filter{})
	require.NoError(t, err)

	_, loaded, err := loader.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)

	_, loaded, err = loader.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded, "exhausted loader must not issue a request")

	state := loader.State()
	assert.Equal(t, seq(0, 25), state.Items)
	assert.Equal(t, 25, state.Offset)
	assert.False(t, state.HasMore)
	assert.Len(t, src.calls, 2)
	assert.Equal(t, pager.Cursor{Offset: 0, Limit: 20}, src.calls[0].Cursor)
	assert.Equal(t, pager.Cursor{Offset: 20, Limit: 20}, src.calls[1].Cursor)
}

func TestLoader_OffsetIsSumOfSuccessfulPages(t *testing.T) {
	sizes := []int{20, 20, 7, 13, 1}
	pages := make([]pager.Page[int], len(sizes))
	for i, n := range sizes {
		pages[i] = pager.Page[int]{Items: seq(0, n), HasMore: i < len(sizes)-1}
	}

	src := &scripted{
		pages: pages,
		// The third request fails and must not move the cursor.
		errs: []error{nil, nil, failure.BadGateway("Failed to fetch media list")},
	}
	loader := pager.New("media", 20, src.fetch)

	page, err := loader.LoadInitial(context.Background(), filter{})
	require.NoError(t, err)

	sum := len(page.Items)
	for range 6 {
		page, loaded, err := loader.LoadMore(context.Background())
		if loaded && err == nil {
			sum += len(page.Items)
		}

		assert.Equal(t, sum, loader.State().Offset)
	}

	assert.False(t, loader.State().HasMore)
	assert.Equal(t, 61, loader.State().Offset)
	assert.Len(t, loader.State().Items, 61)
}

func TestLoader_ErrorKeepsListAndRetriesSameOffset(t *testing.T) {
	src := &scripted{
		pages: []pager.Page[int]{
			{Items: seq(0, 20), HasMore: true},
			{Items: seq(20, 3), HasMore: false},
		},
		errs: []error{nil, failure.New(500, "database is down")},
	}
	loader := pager.New("media", 20, src.fetch)

	_, err := loader.LoadInitial(context.Background(), filter{})
	require.NoError(t, err)

	_, loaded, err := loader.LoadMore(context.Background())
	assert.True(t, loaded)
	require.Error(t, err)

	state := loader.State()
	assert.Equal(t, seq(0, 20), state.Items)
	assert.Equal(t, 20, state.Offset)
	assert.True(t, state.HasMore)
	assert.Equal(t, "database is down", state.Error)

	_, _, err = loader.LoadMore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, src.calls[1].Cursor.Offset)
	assert.Equal(t, 20, src.calls[2].Cursor.Offset)
	assert.Equal(t, 23, loader.State().Offset)
	assert.Empty(t, loader.State().Error)
}

func TestLoader_FailedInitialLoadCanBeRetried(t *testing.T) {
	src := &scripted{
		pages: []pager.Page[int]{{Items: seq(0, 4), HasMore: false}},
		errs:  []error{errors.New("connection refused")},
	}
	loader := pager.New("todos", 20, src.fetch)

	_, err := loader.LoadInitial(context.Background(), filter{Title: "x"})
	require.Error(t, err)
	assert.True(t, loader.State().HasMore)

	_, loaded, err := loader.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)

	assert.Equal(t, pager.Cursor{Offset: 0, Limit: 20}, src.calls[1].Cursor)
	assert.Equal(t, filter{Title: "x"}, src.calls[1].Filter)
	assert.Equal(t, seq(0, 4), loader.State().Items)
}

func TestLoader_SingleInFlightRequest(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)

	var calls atomic.Int32
	fetch := func(_ context.Context, _ filter, c pager.Cursor) (pager.Page[int], error) {
		calls.Add(1)
		if c.Offset > 0 {
			started <- struct{}{}
			<-release
		}

		return pager.Page[int]{Items: seq(c.Offset, 20), HasMore: true}, nil
	}

	loader := pager.New("media", 20, fetch)
	_, err := loader.LoadInitial(context.Background(), filter{})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = loader.LoadMore(context.Background())
	}()

	<-started

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, loaded, err := loader.LoadMore(context.Background())
			assert.NoError(t, err)
			assert.False(t, loaded)
		}()
	}
	wg.Wait()

	assert.True(t, loader.State().LoadingMore)
	close(release)
	<-done

	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, 40, loader.State().Offset)
}

func TestLoader_FilterChangeResetsBeforeFetchResolves(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	fetch := func(_ context.Context, f filter, c pager.Cursor) (pager.Page[int], error) {
		if f.Title == "cats" {
			close(started)
			<-release
		}

		return pager.Page[int]{Items: seq(c.Offset, 20), HasMore: true}, nil
	}

	loader := pager.New("media", 20, fetch)
	_, err := loader.LoadInitial(context.Background(), filter{})
	require.NoError(t, err)
	require.Len(t, loader.State().Items, 20)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = loader.LoadInitial(context.Background(), filter{Title: "cats"})
	}()

	<-started

	state := loader.State()
	assert.Empty(t, state.Items)
	assert.Zero(t, state.Offset)
	assert.True(t, state.LoadingInitial)
	assert.Equal(t, filter{Title: "cats"}, state.Filter)

	close(release)
	<-done

	assert.Len(t, loader.State().Items, 20)
}

func TestLoader_StaleResultIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	fetch := func(_ context.Context, f filter, _ pager.Cursor) (pager.Page[int], error) {
		if f.Title == "old" {
			close(started)
			<-release

			return pager.Page[int]{Items: []int{-1, -2}, HasMore: true}, nil
		}

		return pager.Page[int]{Items: []int{7}, HasMore: false}, nil
	}

	observer := &countingObserver{}
	loader := pager.New("media", 20, fetch, pager.WithObserver(observer))

	errCh := make(chan error, 1)
	go func() {
		_, err := loader.LoadInitial(context.Background(), filter{Title: "old"})
		errCh <- err
	}()

	<-started

	_, err := loader.LoadInitial(context.Background(), filter{Title: "new"})
	require.NoError(t, err)

	close(release)
	assert.ErrorIs(t, <-errCh, pager.ErrStale)

	state := loader.State()
	assert.Equal(t, []int{7}, state.Items)
	assert.Equal(t, 1, state.Offset)
	assert.False(t, state.HasMore)
	assert.False(t, state.LoadingInitial)
	assert.EqualValues(t, 1, observer.stale.Load())
	assert.EqualValues(t, 1, observer.loaded.Load())
}

func TestLoader_StaleLoadMoreDoesNotClobberNewGeneration(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	fetch := func(_ context.Context, f filter, c pager.Cursor) (pager.Page[int], error) {
		if f.Title == "" && c.Offset == 20 {
			close(started)
			<-release
		}

		return pager.Page[int]{Items: seq(c.Offset, 20), HasMore: true}, nil
	}

	loader := pager.New("media", 20, fetch)
	_, err := loader.LoadInitial(context.Background(), filter{})
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, _, err := loader.LoadMore(context.Background())
		errCh <- err
	}()

	<-started

	_, err = loader.LoadInitial(context.Background(), filter{Title: "dogs"})
	require.NoError(t, err)

	close(release)
	assert.ErrorIs(t, <-errCh, pager.ErrStale)

	state := loader.State()
	assert.Equal(t, seq(0, 20), state.Items)
	assert.Equal(t, 20, state.Offset)
	assert.Equal(t, filter{Title: "dogs"}, state.Filter)
}

func TestLoader_Remove(t *testing.T) {
	src := &scripted{pages: []pager.Page[int]{{Items: seq(0, 5), HasMore: true}}}
	loader := pager.New("media", 5, src.fetch)

	_, err := loader.LoadInitial(context.Background(), filter{})
	require.NoError(t, err)

	assert.True(t, loader.Remove(func(i int) bool { return i == 2 }))
	assert.False(t, loader.Remove(func(i int) bool { return i == 99 }))

	state := loader.State()
	assert.Equal(t, []int{0, 1, 3, 4}, state.Items)
	assert.Equal(t, 5, state.Offset)
}

func TestLoader_DefaultLimit(t *testing.T) {
	src := &scripted{}
	loader := pager.New("media", 0, src.fetch)

	_, err := loader.LoadInitial(context.Background(), filter{})
	require.NoError(t, err)

	assert.Equal(t, 20, src.calls[0].Cursor.Limit)
	assert.False(t, loader.State().HasMore)
}

func ExampleLoader() {
	fetch := func(_ context.Context, _ string, c pager.Cursor) (pager.Page[string], error) {
		if c.Offset == 0 {
			return pager.Page[string]{Items: []string{"a", "b"}, HasMore: true}, nil
		}

		return pager.Page[string]{Items: []string{"c"}}, nil
	}

	loader := pager.New("letters", 2, fetch)
	_, _ = loader.LoadInitial(context.Background(), "")
	_, _, _ = loader.LoadMore(context.Background())

	state := loader.State()
	fmt.Println(state.Items, state.Offset, state.HasMore)
	// Output: [a b c] 3 false
}
