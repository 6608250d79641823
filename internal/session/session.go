// Package session holds the per-operator view state of the console: the
// banner messages, the tag lists and the two infinite-scroll loaders.
//
// Sessions are looked up by the ID carried in the signed session cookie and
// are dropped after SESSION_IDLE_MINUTES without a request.
package session

import (
	"backoffice/config"
	"backoffice/infras/metrics"
	mediaModel "backoffice/internal/domains/media/model"
	mediaService "backoffice/internal/domains/media/service"
	tagModel "backoffice/internal/domains/tag/model"
	todoModel "backoffice/internal/domains/todo/model"
	todoService "backoffice/internal/domains/todo/service"
	"backoffice/shared/constant"
	"backoffice/shared/pager"
	"context"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
)

const (
	LoaderMedia   = "media"
	LoaderUndated = "todos_without_due_date"

	minSweepInterval = time.Minute
)

// Banner carries at most one error and one success message until they are shown.
type Banner struct {
	mu      sync.Mutex
	err     string
	success string
}

func (b *Banner) SetError(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.err = message
}

func (b *Banner) SetSuccess(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.success = message
}

// Take returns both messages and clears them.
func (b *Banner) Take() (errMessage, successMessage string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	errMessage, successMessage = b.err, b.success
	b.err, b.success = "", ""

	return errMessage, successMessage
}

func (b *Banner) DismissError() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.err = ""
}

// Tags keeps the full tag list and the subset offered for the media type picked on the upload form.
type Tags struct {
	mu        sync.Mutex
	all       []tagModel.Tag
	offered   []tagModel.Tag
	mediaType string
}

func (t *Tags) SetAll(tags []tagModel.Tag) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.all = append([]tagModel.Tag(nil), tags...)
	t.offered = tagModel.Offered(t.all, t.mediaType)
}

func (t *Tags) All() []tagModel.Tag {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]tagModel.Tag(nil), t.all...)
}

// Offer narrows the offered list to mediaType; "" offers only the tags for all types.
func (t *Tags) Offer(mediaType string) []tagModel.Tag {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mediaType = mediaType
	t.offered = tagModel.Offered(t.all, mediaType)

	return append([]tagModel.Tag(nil), t.offered...)
}

func (t *Tags) Offered() []tagModel.Tag {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]tagModel.Tag(nil), t.offered...)
}

type Session struct {
	ID    string
	Actor string

	Banner  *Banner
	Tags    *Tags
	Media   *pager.Loader[mediaModel.Media, mediaModel.Filter]
	Undated *pager.Loader[todoModel.Todo, pager.NoFilter]

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return now.Sub(s.lastSeen)
}

// WithContext stores sess together with its actor and ID.
func WithContext(ctx context.Context, sess *Session) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeySession, sess)
	ctx = context.WithValue(ctx, constant.ContextKeySessionID, sess.ID)
	ctx = context.WithValue(ctx, constant.ContextKeyActor, sess.Actor)

	return ctx
}

func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(constant.ContextKeySession).(*Session)

	return sess, ok && sess != nil
}

// Store owns every live session.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	pageSize int
	idle     time.Duration
	media    pager.Fetcher[mediaModel.Media, mediaModel.Filter]
	undated  pager.Fetcher[todoModel.Todo, pager.NoFilter]
	observer pager.Observer
	now      func() time.Time
}

func New(cfg *config.Config, media mediaService.Media, todo todoService.Todo, metrics *metrics.Metrics) *Store {
	return NewStore(cfg, media.GetPage, todo.GetWithoutDueDate, metrics)
}

// NewStore builds a store from plain fetchers; observer may be nil.
func NewStore(
	cfg *config.Config,
	media pager.Fetcher[mediaModel.Media, mediaModel.Filter],
	undated pager.Fetcher[todoModel.Todo, pager.NoFilter],
	observer pager.Observer,
) *Store {
	idle := time.Duration(cfg.App.SessionIdleMinutes) * time.Minute

	return &Store{
		sessions: make(map[string]*Session),
		pageSize: cfg.App.PageSize,
		idle:     idle,
		media:    media,
		undated:  undated,
		observer: observer,
		now:      time.Now,
	}
}

func (s *Store) newSession(id, actor string) *Session {
	var opts []pager.Option
	if s.observer != nil {
		opts = append(opts, pager.WithObserver(s.observer))
	}

	return &Session{
		ID:       id,
		Actor:    actor,
		Banner:   &Banner{},
		Tags:     &Tags{},
		Media:    pager.New(LoaderMedia, s.pageSize, s.media, opts...),
		Undated:  pager.New(LoaderUndated, s.pageSize, s.undated, opts...),
		lastSeen: s.now(),
	}
}

// Create opens a session with a fresh ID.
func (s *Store) Create(actor string) (*Session, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	sess := s.newSession(id, actor)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	log.Debug().Str("session_id", id).Str("actor", actor).Msg("session opened")

	return sess, nil
}

// Get returns a live session and marks it as used.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok {
		return nil, false
	}

	sess.touch(s.now())

	return sess, true
}

// GetOrCreate returns the session for id, opening a new one when it has expired or never existed.
func (s *Store) GetOrCreate(id, actor string) (sess *Session, created bool, err error) {
	if sess, ok := s.Get(id); ok {
		return sess, false, nil
	}

	sess, err = s.Create(actor)
	if err != nil {
		return nil, false, err
	}

	return sess, true, nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the configured window and returns how many went.
func (s *Store) Sweep() int {
	if s.idle <= 0 {
		return 0
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0

	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.idle {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

// Run sweeps idle sessions until ctx is done.
func (s *Store) Run(ctx context.Context) {
	if s.idle <= 0 {
		return
	}

	interval := max(s.idle/2, minSweepInterval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Info().Int("removed", removed).Int("live", s.Len()).Msg("swept idle sessions")
			}
		}
	}
}
