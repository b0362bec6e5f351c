package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load builds configuration from defaults, an optional config file, and
// environment variables. Precedence: defaults < config file < env vars.
// A missing config file is not an error; env-only deployments are the norm.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("addr", cfg.Addr)
	v.SetDefault("read_header_timeout", cfg.ReadHeaderTimeout)
	v.SetDefault("shutdown_timeout", cfg.ShutdownTimeout)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("env", cfg.Env)
	v.SetDefault("client_origin", cfg.ClientOrigin)
	v.SetDefault("static_dir", cfg.StaticDir)
	v.SetDefault("mongo_uri", cfg.MongoURI)
	v.SetDefault("mongo_database", cfg.MongoDatabase)
	v.SetDefault("mongo_collection", cfg.MongoCollection)
	v.SetDefault("smtp_host", cfg.SMTPHost)
	v.SetDefault("smtp_port", cfg.SMTPPort)
	v.SetDefault("smtp_secure", cfg.SMTPSecure)
	v.SetDefault("smtp_username", cfg.SMTPUsername)
	v.SetDefault("smtp_password", cfg.SMTPPassword)
	v.SetDefault("mail_from", cfg.MailFrom)
	v.SetDefault("mail_to", cfg.MailTo)
	v.SetDefault("redis_addr", cfg.RedisAddr)
	v.SetDefault("rate_limit_enabled", cfg.RateLimitEnabled)
	v.SetDefault("rate_capacity", cfg.RateCapacity)
	v.SetDefault("rate_window", cfg.RateWindow)

	v.SetEnvPrefix("CONTACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigFile("config.yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MongoURI == "" {
		return errors.New("mongo_uri is required")
	}
	if c.RateLimitEnabled && c.RateCapacity <= 0 {
		return errors.New("rate_capacity must be positive when rate limiting is enabled")
	}
	return nil
}
