package repositories

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
)

var (
	ErrPersistence   = errors.New("repositories: persistence failure")
	ErrSessionClosed = errors.New("repositories: session closed")
)

// Logger provides minimal logging required by the storage engine.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// Store is the backend-agnostic storage contract handed to services.
type Store interface {
	All(ctx context.Context, kind models.Kind) (map[string]models.Record, error)
	Get(ctx context.Context, kind models.Kind, id string) (models.Record, error)
	New(rec models.Record)
	Delete(rec models.Record)
	Save(ctx context.Context) error
	Count(ctx context.Context, kind models.Kind) (int, error)
	Close() error
}

type opKind int

const (
	opPut opKind = iota
	opDelete
)

type op struct {
	kind opKind
	rec  models.Record
}

// backend is implemented once per persistence mechanism. Records handed out
// by load and fetch are owned by the caller.
type backend interface {
	name() string
	load(ctx context.Context, kinds []models.Kind) (map[string]models.Record, error)
	fetch(ctx context.Context, kind models.Kind, id string) (models.Record, error)
	count(ctx context.Context, kinds []models.Kind) (int, error)
	commit(ctx context.Context, ops []op) error
	reload(ctx context.Context) error
	reset(ctx context.Context) error
	close() error
}

// Storage is a process-wide handle on one backend.
type Storage struct {
	backend backend
	logger  Logger
	now     func() time.Time
}

func newStorage(b backend, logger Logger) *Storage {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Storage{backend: b, logger: logger, now: time.Now}
}

// Backend names the active persistence mechanism.
func (s *Storage) Backend() string {
	return s.backend.name()
}

// Session opens a unit of work. Callers must Close it.
func (s *Storage) Session() *Session {
	return &Session{storage: s, staged: make(map[string]op)}
}

// Reload re-reads persisted state; only the file backend caches anything.
func (s *Storage) Reload(ctx context.Context) error {
	return s.backend.reload(ctx)
}

// Reset removes every persisted record.
func (s *Storage) Reset(ctx context.Context) error {
	if err := s.backend.reset(ctx); err != nil {
		return fmt.Errorf("%w: reset %s: %w", ErrPersistence, s.backend.name(), err)
	}
	s.logger.Infof("%s storage: reset", s.backend.name())
	return nil
}

func (s *Storage) Close() error {
	return s.backend.close()
}

// Session stages changes against a Storage until Save. Reads see staged
// changes ahead of committed state.
type Session struct {
	storage *Storage
	staged  map[string]op
	order   []string
	closed  bool
}

var _ Store = (*Session)(nil)

// kindsOf expands a class filter; "" selects every class.
func kindsOf(kind models.Kind) ([]models.Kind, error) {
	if kind == "" {
		return models.Kinds, nil
	}
	if !slices.Contains(models.Kinds, kind) {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownKind, kind)
	}
	return []models.Kind{kind}, nil
}

func (s *Session) All(ctx context.Context, kind models.Kind) (map[string]models.Record, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	kinds, err := kindsOf(kind)
	if err != nil {
		return nil, err
	}
	recs, err := s.storage.backend.load(ctx, kinds)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %w", ErrPersistence, err)
	}
	for key, o := range s.staged {
		if kind != "" && o.rec.Kind() != kind {
			continue
		}
		if o.kind == opDelete {
			delete(recs, key)
		} else {
			recs[key] = o.rec
		}
	}
	return recs, nil
}

// Get returns models.ErrNoRecord when no record of kind has id.
func (s *Session) Get(ctx context.Context, kind models.Kind, id string) (models.Record, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if kind == "" || !slices.Contains(models.Kinds, kind) {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownKind, kind)
	}
	if o, ok := s.staged[models.KeyOf(kind, id)]; ok {
		if o.kind == opDelete {
			return nil, models.ErrNoRecord
		}
		return o.rec, nil
	}
	rec, err := s.storage.backend.fetch(ctx, kind, id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: fetch %s: %w", ErrPersistence, models.KeyOf(kind, id), err)
	}
	return rec, nil
}

// New stages rec for insertion or update and stamps its timestamps.
func (s *Session) New(rec models.Record) {
	if rec == nil || s.closed {
		return
	}
	rec.Base().Touch(s.storage.now())
	s.stage(op{kind: opPut, rec: rec})
}

func (s *Session) Delete(rec models.Record) {
	if rec == nil || s.closed || rec.Base().ID == "" {
		return
	}
	s.stage(op{kind: opDelete, rec: rec})
}

func (s *Session) stage(o op) {
	key := models.Key(o.rec)
	if _, ok := s.staged[key]; !ok {
		s.order = append(s.order, key)
	}
	s.staged[key] = o
}

func (s *Session) Count(ctx context.Context, kind models.Kind) (int, error) {
	if s.closed {
		return 0, ErrSessionClosed
	}
	kinds, err := kindsOf(kind)
	if err != nil {
		return 0, err
	}
	for _, o := range s.staged {
		if kind == "" || o.rec.Kind() == kind {
			all, err := s.All(ctx, kind)
			if err != nil {
				return 0, err
			}
			return len(all), nil
		}
	}
	n, err := s.storage.backend.count(ctx, kinds)
	if err != nil {
		return 0, fmt.Errorf("%w: count: %w", ErrPersistence, err)
	}
	return n, nil
}

// Save commits the staged changes. Staged changes are dropped whether or
// not the commit succeeds.
func (s *Session) Save(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	ops := s.pending()
	s.discard()
	if len(ops) == 0 {
		return nil
	}
	if err := s.storage.backend.commit(ctx, ops); err != nil {
		s.storage.logger.Errorf("%s storage: commit of %d changes failed: %v", s.storage.backend.name(), len(ops), err)
		if errors.Is(err, ErrPersistence) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// Close releases the session and drops uncommitted changes.
func (s *Session) Close() error {
	s.discard()
	s.closed = true
	return nil
}

func (s *Session) discard() {
	clear(s.staged)
	s.order = s.order[:0]
}

var kindRank = func() map[models.Kind]int {
	m := make(map[models.Kind]int, len(models.Kinds))
	for i, k := range models.Kinds {
		m[k] = i
	}
	return m
}()

// pending orders staged changes for commit: writes parents first, then
// deletes children first.
func (s *Session) pending() []op {
	var puts, dels []op
	for _, key := range s.order {
		o := s.staged[key]
		if o.kind == opDelete {
			dels = append(dels, o)
		} else {
			puts = append(puts, o)
		}
	}
	slices.SortStableFunc(puts, func(a, b op) int {
		return kindRank[a.rec.Kind()] - kindRank[b.rec.Kind()]
	})
	slices.SortStableFunc(dels, func(a, b op) int {
		return kindRank[b.rec.Kind()] - kindRank[a.rec.Kind()]
	})
	return append(puts, dels...)
}

type sessionKey struct{}

// WithSession scopes sess to a request context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*Session)
	return sess, ok
}
