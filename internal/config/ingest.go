package config

// IngestConfig holds the chunking and concurrency settings for the bulk writer.
type IngestConfig struct {
	// ChunkSize is the number of frame rows per worker chunk.
	ChunkSize int
	// Workers is the maximum number of chunks processed concurrently.
	Workers int
}

func (c *IngestConfig) applyDefaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = 500
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
}

// AnalyticsConfig holds the materializer policy knobs.
type AnalyticsConfig struct {
	// ProfitMargin is the fixed margin applied to revenue.
	ProfitMargin float64
	// TopN is the size of the derived top/bottom projections.
	TopN int
}

func (c *AnalyticsConfig) applyDefaults() {
	if c.ProfitMargin <= 0 {
		c.ProfitMargin = 0.3
	}
	if c.TopN <= 0 {
		c.TopN = 10
	}
}
