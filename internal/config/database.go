package config

import "time"

// StoresConfig holds the connection settings for the two logical stores.
type StoresConfig struct {
	Low  StoreConfig
	High StoreConfig
}

// StoreConfig holds connection settings for one document store.
type StoreConfig struct {
	URI      string
	Database string
	Username string
	Password string
}

// Store I/O timeouts are fixed policy rather than tunables.
const (
	ConnectTimeout = 5 * time.Second
	SocketTimeout  = 30 * time.Second
)

// RedisConfig holds settings for the read-side cache.
type RedisConfig struct {
	Address         string
	Username        string
	Password        string
	Database        int
	CacheTTLSeconds int
}

// CacheTTL returns the projection cache TTL.
func (c *RedisConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
