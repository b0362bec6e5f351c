package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// Env selects the deployment mode. "development" exposes detailed
	// error messages to clients; anything else suppresses them.
	Env string `mapstructure:"env" yaml:"env"`

	// ClientOrigin is the allowed CORS origin. Empty means any origin.
	ClientOrigin string `mapstructure:"client_origin" yaml:"client_origin"`

	// StaticDir, when set outside development, is served for routes that
	// do not match the API.
	StaticDir string `mapstructure:"static_dir" yaml:"static_dir"`

	MongoURI        string `mapstructure:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database" yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`

	SMTPHost     string `mapstructure:"smtp_host" yaml:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port" yaml:"smtp_port"`
	SMTPSecure   bool   `mapstructure:"smtp_secure" yaml:"smtp_secure"`
	SMTPUsername string `mapstructure:"smtp_username" yaml:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password" yaml:"smtp_password"`

	// MailFrom is the sending identity; MailTo receives the notifications.
	// MailTo falls back to MailFrom when unset.
	MailFrom string `mapstructure:"mail_from" yaml:"mail_from"`
	MailTo   string `mapstructure:"mail_to" yaml:"mail_to"`

	RedisAddr        string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	RateLimitEnabled bool          `mapstructure:"rate_limit_enabled" yaml:"rate_limit_enabled"`
	RateCapacity     int           `mapstructure:"rate_capacity" yaml:"rate_capacity"`
	RateWindow       time.Duration `mapstructure:"rate_window" yaml:"rate_window"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":5000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		Env:               "production",
		MongoURI:          "mongodb://localhost:27017",
		MongoDatabase:     "contact",
		MongoCollection:   "contacts",
		SMTPPort:          465,
		SMTPSecure:        true,
		RateLimitEnabled:  true,
		RateCapacity:      100,
		RateWindow:        15 * time.Minute,
	}
}

// Development reports whether detailed errors may be exposed to clients.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// NotifyTo resolves the notification recipient.
func (c *Config) NotifyTo() string {
	if c.MailTo != "" {
		return c.MailTo
	}
	return c.MailFrom
}
