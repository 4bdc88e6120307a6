package middleware

import (
	"testing"
	"time"

	"academy/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

func TestUserCacheSetAndGet(t *testing.T) {
	cache := newUserCache(time.Minute, 10)

	cache.set(models.User{Model: gormModel(1), FullName: "Ana"})

	user, ok := cache.get(1)
	require.True(t, ok)
	require.Equal(t, "Ana", user.FullName)

	_, ok = cache.get(2)
	require.False(t, ok)
}

func TestUserCacheExpiresEntries(t *testing.T) {
	cache := newUserCache(10*time.Millisecond, 10)

	cache.set(models.User{Model: gormModel(1)})
	time.Sleep(20 * time.Millisecond)

	_, ok := cache.get(1)
	require.False(t, ok)
}

func TestUserCacheEvictsWhenFull(t *testing.T) {
	cache := newUserCache(time.Minute, 2)

	cache.set(models.User{Model: gormModel(1)})
	cache.set(models.User{Model: gormModel(2)})
	cache.set(models.User{Model: gormModel(3)})

	count := 0
	for _, id := range []uint{1, 2, 3} {
		if _, ok := cache.get(id); ok {
			count++
		}
	}
	require.Equal(t, 2, count)

	// The newest entry always survives
	_, ok := cache.get(3)
	require.True(t, ok)
}

func TestUserCacheInvalidate(t *testing.T) {
	cache := newUserCache(time.Minute, 10)

	cache.set(models.User{Model: gormModel(1)})
	cache.invalidate(1)

	_, ok := cache.get(1)
	require.False(t, ok)
}

func TestUserCachePurgeExpired(t *testing.T) {
	cache := newUserCache(10*time.Millisecond, 10)

	cache.set(models.User{Model: gormModel(1)})
	cache.set(models.User{Model: gormModel(2)})
	time.Sleep(20 * time.Millisecond)
	cache.purgeExpired()

	cache.mu.Lock()
	remaining := len(cache.entries)
	cache.mu.Unlock()
	require.Equal(t, 0, remaining)
}
