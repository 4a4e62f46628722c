package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"mixtape.GO/core/cache"
	"mixtape.GO/model/repository/storage"
)

// DefaultSessionTTL is how long an untouched session store stays in memory.
const DefaultSessionTTL = 30 * time.Minute

type SessionOptions struct {
	// TTL is the idle time after which a store is dropped from memory. The
	// persisted record is kept and reloaded on the next Get.
	TTL time.Duration
	Log *zap.Logger
	// Now is the clock used for expiry; nil means time.Now.
	Now func() time.Time
}

// Sessions hands out one loaded Store per session id and forgets stores
// that have been idle for longer than the TTL.
type Sessions struct {
	driver storage.Driver
	prefix string
	log    *zap.Logger
	ttl    time.Duration
	now    func() time.Time
	stores *cache.Cache
	loads  singleflight.Group

	mu        sync.Mutex
	lastPurge time.Time
}

func NewSessions(driver storage.Driver, prefix string, opts SessionOptions) *Sessions {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultSessionTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Sessions{
		driver:    driver,
		prefix:    prefix,
		log:       opts.Log,
		ttl:       opts.TTL,
		now:       opts.Now,
		stores:    cache.NewWithClock(opts.Now),
		lastPurge: opts.Now(),
	}
}

// Key is the storage key of a session's cart record.
func (s *Sessions) Key(sessionID string) string {
	if sessionID == "" {
		return s.prefix
	}
	return s.prefix + ":" + sessionID
}

// Get returns the session's store, loading it on first use. Every call
// restarts the idle timer. Concurrent first calls share one load.
func (s *Sessions) Get(ctx context.Context, sessionID string) *Store {
	if st, ok := s.touch(sessionID); ok {
		return st
	}
	v, _, _ := s.loads.Do(sessionID, func() (any, error) {
		if st, ok := s.touch(sessionID); ok {
			return st, nil
		}
		s.purgeIdle()
		st := NewStore(s.driver, s.Key(sessionID), s.log)
		// failures are logged by the store and leave it empty
		_ = st.Load(ctx)
		s.stores.Set(sessionID, st, s.ttl)
		return st, nil
	})
	return v.(*Store)
}

// View reads the session's cart without keeping a store in memory. A live
// store is read directly; otherwise the persisted record is loaded.
func (s *Sessions) View(ctx context.Context, sessionID string) Snapshot {
	if v, ok := s.stores.Get(sessionID); ok {
		return v.(*Store).Snapshot()
	}
	st := NewStore(s.driver, s.Key(sessionID), s.log)
	_ = st.Load(ctx)
	return st.Snapshot()
}

// Forget drops the in-memory store; the persisted record is kept.
func (s *Sessions) Forget(sessionID string) {
	s.stores.Delete(sessionID)
}

// Len counts stores currently held in memory.
func (s *Sessions) Len() int {
	return s.stores.Len()
}

func (s *Sessions) touch(sessionID string) (*Store, bool) {
	v, ok := s.stores.Get(sessionID)
	if !ok {
		return nil, false
	}
	st := v.(*Store)
	s.stores.Set(sessionID, st, s.ttl)
	return st, true
}

// purgeIdle sweeps expired stores at most once per TTL.
func (s *Sessions) purgeIdle() {
	s.mu.Lock()
	now := s.now()
	due := now.Sub(s.lastPurge) >= s.ttl
	if due {
		s.lastPurge = now
	}
	s.mu.Unlock()
	if !due {
		return
	}
	if n := s.stores.Purge(); n > 0 {
		s.log.Debug("idle cart sessions dropped", zap.Int("count", n))
	}
}
