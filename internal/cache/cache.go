// Package cache provides the in-process read cache for per-owner
// collections. Entries are keyed (owner, collection) so a write to one
// collection invalidates exactly that owner's cached reads.
package cache

import "time"

// Cache is the generic read-cache interface.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Collection names used as cache key suffixes.
const (
	CollectionTransactions   = "transactions"
	CollectionCategories     = "categories"
	CollectionAccounts       = "accounts"
	CollectionBudgets        = "budgets"
	CollectionGoals          = "goals"
	CollectionPaymentMethods = "payment_methods"
)

const keySeparator = "\x00"

// Key builds the cache key for one owner's collection.
func Key(owner, collection string) string {
	return owner + keySeparator + collection
}

// OwnerPrefix is the key prefix matching every collection of an owner.
func OwnerPrefix(owner string) string {
	return owner + keySeparator
}

// Cleaner is implemented by caches that support expiry sweeps.
type Cleaner interface {
	CleanExpired() int
}

// Manager runs the periodic expiry sweep over registered caches.
type Manager struct {
	caches      []Cleaner
	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

// Register adds a cache to the sweep. Not safe to call after
// StartCleanup.
func (m *Manager) Register(cache Cleaner) {
	m.caches = append(m.caches, cache)
}

// StartCleanup begins the periodic sweep in a background goroutine.
func (m *Manager) StartCleanup(interval time.Duration) {
	go m.cleanup(interval)
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, cache := range m.caches {
				cache.CleanExpired()
			}
		case <-m.stopCleanup:
			return
		}
	}
}

// Stop halts the sweep and waits for it to finish.
func (m *Manager) Stop() {
	close(m.stopCleanup)
	<-m.cleanupDone
}
