package config

import (
	"errors"
	"strings"

	"github.com/notaspie/notaspie/internal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

var defaults = map[string]any{
	"log.level":                  "info",
	"server.host":                "",
	"server.port":                8000,
	"server.web_enabled":         true,
	"server.max_upload_size":     20 << 20,
	"auth.required":              false,
	"checker.url":                "https://api.languagetool.org",
	"checker.timeout":            30,
	"checker.retry_max":          0,
	"checker.enabled_only":       false,
	"checker.offset_unit":        "utf16",
	"checker.rate_limit_retries": 0,
	"correction.language":        "es",
	"correction.max_words":       300,
	"correction.overlap_policy":  "last_write_wins",
	"correction.quote_mode":      "mask",
	"correction.quote_styles":    []string{`""`, `“”`, `«»`},
	"correction.concurrency":     1,
	"document.rewrite_unchanged": true,
	"storage.type":               "local",
	"storage.local.path":         "./storage/files",
	"storage.s3.region":          "us-east-1",
}

// LoadConfig loads the config file and ENV variables into a Config struct.
// A missing config file is not an error; defaults and ENV still apply.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	v.SetEnvPrefix("NOTASPIE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
		log.Debug("no config file found, using defaults and environment")
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	secrets := map[string]string{
		"auth.secret":                  "NOTASPIE_AUTH_SECRET",
		"storage.s3.access_key_id":     "AWS_ACCESS_KEY_ID",
		"storage.s3.secret_access_key": "AWS_SECRET_ACCESS_KEY",
	}
	for key, env := range secrets {
		if err := v.BindEnv(key, env); err != nil {
			log.Fatalf("Error binding environment variable: %s", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level := internal.ParseLevel(cfg.Log.Level)
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}
