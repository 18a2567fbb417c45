package memory

import (
	"sync"
	"time"

	"ai-bookrec-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds the per-user interview sessions in memory. Sessions
// do not survive a restart and are not shared across instances.
//
// Mutate serializes read-modify-write turns through a repository-level lock;
// callers running concurrent turns for the SAME user still need their own
// serialization for cross-turn ordering (documented caller obligation).
type SessionRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	// Sessions idle for a day are purged; an interview never lasts that long
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.UserID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(userID string) (*store.Session, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

// GetOrCreate returns the user's session, creating an empty one if absent
func (r *SessionRepository) GetOrCreate(userID string) *store.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getOrCreateLocked(userID)
}

// Mutate runs fn on the user's session under the repository lock and re-saves
// the result. The background classifier writes back through this same path,
// so late results land last-write-wins without clobbering concurrent turns.
func (r *SessionRepository) Mutate(userID string, fn func(*store.Session)) *store.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.getOrCreateLocked(userID)
	fn(session)
	r.cache.Set(userID, session, cache.DefaultExpiration)
	return session
}

func (r *SessionRepository) getOrCreateLocked(userID string) *store.Session {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Session)
	}
	session := store.NewSession(userID)
	r.cache.Set(userID, session, cache.DefaultExpiration)
	return session
}

func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}

// Clear drops every session. Test-isolation hook.
func (r *SessionRepository) Clear() {
	r.cache.Flush()
}
