package session

import "time"

type storeConfig struct {
	ttl             time.Duration
	cleanupInterval time.Duration
}

// StoreOption configures a MemoryStore.
type StoreOption func(*storeConfig)

// WithTTL gives every minted session a fixed lifetime. Zero disables expiry,
// which is the default.
func WithTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) { c.ttl = ttl }
}

// WithCleanupInterval starts a background sweep removing expired sessions.
// Zero disables the sweep; expired sessions are still dropped lazily on
// lookup.
func WithCleanupInterval(interval time.Duration) StoreOption {
	return func(c *storeConfig) { c.cleanupInterval = interval }
}

// ManagerOption configures a login Manager.
type ManagerOption func(*Manager)

// WithConfig replaces the default login cookie template.
func WithConfig(cfg Config) ManagerOption {
	return func(m *Manager) { m.config = cfg }
}
