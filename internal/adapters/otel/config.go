package otel

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// Active reports whether an exporter should be created for this config.
func (c Config) Active() bool {
	return c.Enabled && c.Endpoint != ""
}
