package careline

// Config holds the configuration for the support pipeline and its server.
type Config struct {
	// Server configures the HTTP agent server.
	Server ServerConfig `json:"server" yaml:"server"`
	// KB configures the knowledge corpus and retrieval.
	KB KBConfig `json:"kb" yaml:"kb"`
	// Links configures the outbound integration endpoints used by responders.
	Links LinksConfig `json:"links" yaml:"links"`
	// Style selects the styling policy for responder output.
	Style StyleConfig `json:"style" yaml:"style"`
	// Remote points at an external agent; when set, the server and CLI proxy
	// turns to it instead of running the in-process pipeline.
	Remote RemoteConfig `json:"remote,omitempty" yaml:"remote,omitempty"`
	// Transcript configures conversation persistence.
	Transcript TranscriptConfig `json:"transcript,omitempty" yaml:"transcript,omitempty"`
	// Recommend points at the suggested-question file.
	Recommend RecommendConfig `json:"recommend,omitempty" yaml:"recommend,omitempty"`
	// Plugins configuration (optional).
	Plugins []PluginConfig `json:"plugins,omitempty" yaml:"plugins,omitempty"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr      string          `json:"addr" yaml:"addr"`
	RateLimit RateLimitConfig `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

// RateLimitConfig bounds per-client request rates on the agent endpoint.
type RateLimitConfig struct {
	Enabled   bool    `json:"enabled" yaml:"enabled"`
	PerSecond float64 `json:"per_second" yaml:"per_second"`
	Burst     float64 `json:"burst,omitempty" yaml:"burst,omitempty"`
}

// KBConfig configures corpus loading and retrieval.
type KBConfig struct {
	// Dir is the corpus directory of *.txt documents. Created if missing.
	Dir string `json:"dir" yaml:"dir"`
	// TopK is the number of documents blended into one answer.
	TopK int `json:"top_k,omitempty" yaml:"top_k,omitempty"`
	// CacheSize enables the retrieval reply cache when > 0.
	CacheSize int `json:"cache_size,omitempty" yaml:"cache_size,omitempty"`
	// CacheTTL is a Go duration string, e.g. "5m".
	CacheTTL string `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`
}

// LinksConfig configures responder integration endpoints. Empty values fall
// back to the TELEPHONY_API_BASE / APP_DEEPLINK_BASE environment variables.
type LinksConfig struct {
	TelephonyBase string `json:"telephony_base,omitempty" yaml:"telephony_base,omitempty"`
	DeeplinkBase  string `json:"deeplink_base,omitempty" yaml:"deeplink_base,omitempty"`
}

// StyleMode selects the styling policy.
type StyleMode string

// StyleMode constants define the supported styling policies.
const (
	StyleAlways StyleMode = "always"
	StyleNever  StyleMode = "never"
)

// StyleConfig configures the style pass.
type StyleConfig struct {
	Mode StyleMode `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// RemoteConfig points at an external agent server.
type RemoteConfig struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
	// Timeout is a Go duration string; defaults to 30s.
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// TranscriptDriver selects the transcript backend.
type TranscriptDriver string

// TranscriptDriver constants define the supported backends.
const (
	TranscriptOff      TranscriptDriver = "off"
	TranscriptSQLite   TranscriptDriver = "sqlite"
	TranscriptPostgres TranscriptDriver = "postgres"
)

// TranscriptConfig configures conversation persistence.
type TranscriptConfig struct {
	Driver TranscriptDriver `json:"driver,omitempty" yaml:"driver,omitempty"`
	DSN    string           `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// RecommendConfig points at the suggested-question JSON file.
type RecommendConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// PluginConfig holds plugin configuration.
type PluginConfig struct {
	Name    string                 `json:"name" yaml:"name"`
	Type    string                 `json:"type" yaml:"type"`
	Stage   string                 `json:"stage" yaml:"stage"`
	Enabled bool                   `json:"enabled" yaml:"enabled"`
	Config  map[string]interface{} `json:"config" yaml:"config"`
}
