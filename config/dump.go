package config

import (
	"gopkg.in/yaml.v3"
)

// Dump renders cfg as a YAML config file. Secrets are left out.
func Dump(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
