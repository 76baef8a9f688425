package config

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string
	Port int
}
