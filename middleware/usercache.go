package middleware

import (
	"sync"
	"time"

	"academy/models"
)

// userCache is a bounded, time-expiring cache of user records keyed by user
// id. It belongs to the session layer: the access engine never sees it, so
// engine tests stay deterministic. When full, the entry closest to expiry is
// evicted.
type userCache struct {
	mu      sync.Mutex
	entries map[uint]cacheEntry
	ttl     time.Duration
	maxSize int
}

type cacheEntry struct {
	user      models.User
	expiresAt time.Time
}

func newUserCache(ttl time.Duration, maxSize int) *userCache {
	return &userCache{
		entries: make(map[uint]cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

func (uc *userCache) get(id uint) (models.User, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	entry, ok := uc.entries[id]
	if !ok {
		return models.User{}, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(uc.entries, id)
		return models.User{}, false
	}
	return entry.user, true
}

func (uc *userCache) set(user models.User) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if len(uc.entries) >= uc.maxSize {
		uc.evictOldestLocked()
	}
	uc.entries[user.ID] = cacheEntry{user: user, expiresAt: time.Now().Add(uc.ttl)}
}

// invalidate drops one entry, e.g. after an admin flips the approval flag.
func (uc *userCache) invalidate(id uint) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.entries, id)
}

func (uc *userCache) evictOldestLocked() {
	var oldestID uint
	var oldestExpiry time.Time
	first := true
	for id, entry := range uc.entries {
		if first || entry.expiresAt.Before(oldestExpiry) {
			oldestID = id
			oldestExpiry = entry.expiresAt
			first = false
		}
	}
	if !first {
		delete(uc.entries, oldestID)
	}
}

// purgeExpired removes every expired entry. Called from the janitor.
func (uc *userCache) purgeExpired() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := time.Now()
	for id, entry := range uc.entries {
		if now.After(entry.expiresAt) {
			delete(uc.entries, id)
		}
	}
}

func (uc *userCache) startJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			uc.purgeExpired()
		}
	}()
}
