package config

import (
	pkgconfig "github.com/SdAm1n/DashAnalytics-sub000/pkg/config"
)

const serviceName = "retail-analytics"

// Config holds all configuration for the retail analytics service.
type Config struct {
	Service   ServiceConfig
	Server    ServerConfig
	Stores    StoresConfig
	Redis     RedisConfig
	Ingest    IngestConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

// ServiceConfig identifies the service.
type ServiceConfig struct {
	Name    string
	Version string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// LoadConfig reads the service configuration through the shared loader.
func LoadConfig() (*Config, error) {
	cfg, err := pkgconfig.Load(serviceName)
	if err != nil {
		return nil, err
	}

	c := &Config{}

	c.Service.Name = cfg.GetString("service.name")
	c.Service.Version = cfg.GetString("service.version")

	c.Server.Host = cfg.GetString("server.host")
	c.Server.Port = cfg.GetInt("server.port")

	c.Stores.Low = loadStore(cfg, "stores.low")
	c.Stores.High = loadStore(cfg, "stores.high")

	c.Redis.Address = cfg.GetString("redis.address")
	c.Redis.Username = cfg.GetString("redis.username")
	c.Redis.Password = cfg.GetString("redis.password")
	c.Redis.Database = cfg.GetInt("redis.database")
	c.Redis.CacheTTLSeconds = cfg.GetInt("redis.cache_ttl_seconds")

	c.Ingest.ChunkSize = cfg.GetInt("ingest.chunk_size")
	c.Ingest.Workers = cfg.GetInt("ingest.workers")
	c.Ingest.applyDefaults()

	c.Analytics.ProfitMargin = cfg.GetFloat64("analytics.profit_margin")
	c.Analytics.TopN = cfg.GetInt("analytics.top_n")
	c.Analytics.applyDefaults()

	c.Log.Level = cfg.GetString("log.level")
	c.Log.Format = cfg.GetString("log.format")
	c.Log.Output = cfg.GetString("log.output")

	return c, nil
}

func loadStore(cfg pkgconfig.Config, prefix string) StoreConfig {
	return StoreConfig{
		URI:      cfg.GetString(prefix + ".uri"),
		Database: cfg.GetString(prefix + ".database"),
		Username: cfg.GetString(prefix + ".username"),
		Password: cfg.GetString(prefix + ".password"),
	}
}
