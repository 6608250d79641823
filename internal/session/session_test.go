package session_test

import (
	"backoffice/config"
	mediaModel "backoffice/internal/domains/media/model"
	tagModel "backoffice/internal/domains/tag/model"
	todoModel "backoffice/internal/domains/todo/model"
	"backoffice/internal/session"
	"backoffice/shared/constant"
	"backoffice/shared/pager"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(idleMinutes int) *config.Config {
	cfg := &config.Config{}
	cfg.App.PageSize = 20
	cfg.App.SessionIdleMinutes = idleMinutes

	return cfg
}

func emptyMedia(context.Context, mediaModel.Filter, pager.Cursor) (pager.Page[mediaModel.Media], error) {
	return pager.Page[mediaModel.Media]{}, nil
}

func emptyTodos(context.Context, pager.NoFilter, pager.Cursor) (pager.Page[todoModel.Todo], error) {
	return pager.Page[todoModel.Todo]{}, nil
}

func TestBanner_TakeClears(t *testing.T) {
	banner := &session.Banner{}
	banner.SetError("Failed to delete tag")
	banner.SetSuccess("Tag created")

	errMsg, success := banner.Take()
	assert.Equal(t, "Failed to delete tag", errMsg)
	assert.Equal(t, "Tag created", success)

	errMsg, success = banner.Take()
	assert.Empty(t, errMsg)
	assert.Empty(t, success)
}

func TestBanner_DismissErrorKeepsSuccess(t *testing.T) {
	banner := &session.Banner{}
	banner.SetError("boom")
	banner.SetSuccess("saved")
	banner.DismissError()

	errMsg, success := banner.Take()
	assert.Empty(t, errMsg)
	assert.Equal(t, "saved", success)
}

func TestTags_OfferFollowsMediaType(t *testing.T) {
	tags := &session.Tags{}
	tags.SetAll([]tagModel.Tag{
		{ID: "1", Name: "everywhere", Type: tagModel.TypeAll},
		{ID: "2", Name: "photo", Type: tagModel.TypeImage},
		{ID: "3", Name: "song", Type: tagModel.TypeAudio},
	})

	assert.Len(t, tags.All(), 3)
	assert.Equal(t, []string{"1"}, ids(tags.Offered()))
	assert.Equal(t, []string{"1", "2"}, ids(tags.Offer(tagModel.TypeImage)))
	assert.Equal(t, []string{"1", "3"}, ids(tags.Offer(tagModel.TypeAudio)))

	// Refreshing the full list keeps the current media type.
	tags.SetAll([]tagModel.Tag{{ID: "4", Name: "clip", Type: tagModel.TypeAudio}})
	assert.Equal(t, []string{"4"}, ids(tags.Offered()))
}

func ids(tags []tagModel.Tag) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.ID
	}

	return out
}

func TestStore_CreateGetDelete(t *testing.T) {
	store := session.NewStore(newConfig(60), emptyMedia, emptyTodos, nil)

	sess, err := store.Create("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "admin", sess.Actor)
	assert.NotNil(t, sess.Media)
	assert.NotNil(t, sess.Undated)

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, store.Len())

	store.Delete(sess.ID)
	_, ok = store.Get(sess.ID)
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestStore_GetOrCreate(t *testing.T) {
	store := session.NewStore(newConfig(60), emptyMedia, emptyTodos, nil)

	sess, created, err := store.GetOrCreate("", "guest")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := store.GetOrCreate(sess.ID, "guest")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, sess, again)

	other, created, err := store.GetOrCreate("expired-id", "guest")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, sess.ID, other.ID)
}

func TestStore_SessionsDoNotShareLoaders(t *testing.T) {
	var mu sync.Mutex
	var filters []mediaModel.Filter

	fetch := func(_ context.Context, f mediaModel.Filter, _ pager.Cursor) (pager.Page[mediaModel.Media], error) {
		mu.Lock()
		defer mu.Unlock()

		filters = append(filters, f)

		return pager.Page[mediaModel.Media]{Items: []mediaModel.Media{{ID: f.Title}}}, nil
	}

	store := session.NewStore(newConfig(60), fetch, emptyTodos, nil)

	first, err := store.Create("a")
	require.NoError(t, err)
	second, err := store.Create("b")
	require.NoError(t, err)

	_, err = first.Media.LoadInitial(context.Background(), mediaModel.Filter{Title: "cats"})
	require.NoError(t, err)

	assert.Len(t, first.Media.State().Items, 1)
	assert.Empty(t, second.Media.State().Items)
	assert.Zero(t, second.Media.Generation())
	assert.Len(t, filters, 1)
}

func TestStore_SweepDropsIdleSessions(t *testing.T) {
	store := session.NewStore(newConfig(10), emptyMedia, emptyTodos, nil)

	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	store.SetNow(func() time.Time { return now })

	stale, err := store.Create("a")
	require.NoError(t, err)

	now = now.Add(8 * time.Minute)
	fresh, err := store.Create("b")
	require.NoError(t, err)

	now = now.Add(3 * time.Minute)
	assert.Equal(t, 1, store.Sweep())

	_, ok := store.Get(stale.ID)
	assert.False(t, ok)
	_, ok = store.Get(fresh.ID)
	assert.True(t, ok)
}

func TestStore_SweepDisabled(t *testing.T) {
	store := session.NewStore(newConfig(0), emptyMedia, emptyTodos, nil)

	now := time.Now()
	store.SetNow(func() time.Time { return now })

	_, err := store.Create("a")
	require.NoError(t, err)

	now = now.Add(48 * time.Hour)
	assert.Zero(t, store.Sweep())
	assert.Equal(t, 1, store.Len())
}

func TestStore_RunStopsWithContext(t *testing.T) {
	store := session.NewStore(newConfig(10), emptyMedia, emptyTodos, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		store.Run(ctx)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestContext_RoundTrip(t *testing.T) {
	store := session.NewStore(newConfig(60), emptyMedia, emptyTodos, nil)
	sess, err := store.Create("admin")
	require.NoError(t, err)

	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)

	ctx := session.WithContext(context.Background(), sess)
	got, ok := session.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Equal(t, "admin", ctx.Value(constant.ContextKeyActor))
	assert.Equal(t, sess.ID, ctx.Value(constant.ContextKeySessionID))
}
