package memory

import (
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// UserRepository is the in-memory user registry. Identifiers are generated
// uuid4 strings; existence here is the precondition for session operations.
type UserRepository struct {
	cache *cache.Cache
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Register creates a user with a fresh identifier and returns it
func (r *UserRepository) Register(name string) string {
	userID := uuid.NewString()
	r.cache.Set(userID, name, cache.NoExpiration)
	return userID
}

func (r *UserRepository) Exists(userID string) bool {
	_, found := r.cache.Get(userID)
	return found
}

func (r *UserRepository) GetName(userID string) (string, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(string), true
	}
	return "", false
}

// Clear drops every registered user. Test-isolation hook.
func (r *UserRepository) Clear() {
	r.cache.Flush()
}
