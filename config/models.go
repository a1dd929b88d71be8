package config

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Auth       AuthConfig       `mapstructure:"auth" yaml:"auth"`
	Checker    CheckerConfig    `mapstructure:"checker" yaml:"checker"`
	Correction CorrectionConfig `mapstructure:"correction" yaml:"correction"`
	Document   DocumentConfig   `mapstructure:"document" yaml:"document"`
	Storage    StorageConfig    `mapstructure:"storage" yaml:"storage"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type ServerConfig struct {
	Host       string `mapstructure:"host" yaml:"host"`
	Port       int    `mapstructure:"port" yaml:"port"`
	WebEnabled bool   `mapstructure:"web_enabled" yaml:"web_enabled"`
	// MaxUploadSize is the largest accepted document upload, in bytes.
	MaxUploadSize int64 `mapstructure:"max_upload_size" yaml:"max_upload_size"`
	// CustomHeaders are added to every response. A value of "env:NAME" is
	// read from the environment variable NAME.
	CustomHeaders map[string]string `mapstructure:"custom_headers" yaml:"custom_headers"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret" yaml:"-"`
	Required bool   `mapstructure:"required" yaml:"required"`
}

// CheckerConfig configures the LanguageTool-compatible grammar checking service.
type CheckerConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
	// Timeout in seconds for a single check call.
	Timeout     int  `mapstructure:"timeout" yaml:"timeout"`
	RetryMax    int  `mapstructure:"retry_max" yaml:"retry_max"`
	EnabledOnly bool `mapstructure:"enabled_only" yaml:"enabled_only"`
	// OffsetUnit is "rune" or "utf16", the unit the service reports offsets in.
	OffsetUnit string `mapstructure:"offset_unit" yaml:"offset_unit"`
	// RateLimitRetries is how often a rate limited (429) check is retried
	// with backoff. 0, the default, retries nothing.
	RateLimitRetries int `mapstructure:"rate_limit_retries" yaml:"rate_limit_retries"`
}

type CorrectionConfig struct {
	Language string `mapstructure:"language" yaml:"language"`
	// MaxWords bounds the words sent in one check call. 0 disables splitting.
	MaxWords      int    `mapstructure:"max_words" yaml:"max_words"`
	OverlapPolicy string `mapstructure:"overlap_policy" yaml:"overlap_policy"`
	// QuoteMode is one of mask, veto or off.
	QuoteMode   string   `mapstructure:"quote_mode" yaml:"quote_mode"`
	QuoteStyles []string `mapstructure:"quote_styles" yaml:"quote_styles"`
	Concurrency int      `mapstructure:"concurrency" yaml:"concurrency"`
}

type DocumentConfig struct {
	// RewriteUnchanged rewrites every non-empty paragraph, collapsing its runs,
	// even when the corrected text is identical to the original.
	RewriteUnchanged bool `mapstructure:"rewrite_unchanged" yaml:"rewrite_unchanged"`
}

type StorageConfig struct {
	Type  string             `mapstructure:"type" yaml:"type"`
	Local LocalStorageConfig `mapstructure:"local" yaml:"local"`
	S3    S3StorageConfig    `mapstructure:"s3" yaml:"s3"`
}

type LocalStorageConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type S3StorageConfig struct {
	Bucket string `mapstructure:"bucket" yaml:"bucket"`
	Region string `mapstructure:"region" yaml:"region"`
	// AccessKeyID and SecretAccessKey are loaded from ENV not config file.
	// When empty the default AWS credential chain is used.
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"-"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"-"`
}
