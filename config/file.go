package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the shape of the optional AGENTGATE_CONFIG YAML file: the
// handful of settings that don't fit naturally into a flat env var.
type fileConfig struct {
	TrustedProxies []string     `yaml:"trusted_proxies"`
	RequestTimeout yamlDuration `yaml:"request_timeout"`
}

// yamlDuration decodes a YAML scalar duration string (e.g. "30s") into a
// time.Duration. yaml.v3 has no built-in support for time.ParseDuration
// syntax since time.Duration is just an int64 underneath.
type yamlDuration time.Duration

func (d *yamlDuration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: request_timeout must be a duration string, got YAML kind %d", node.Kind)
	}

	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("config: request_timeout: %w", err)
	}

	*d = yamlDuration(parsed)

	return nil
}

func loadFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, err
	}

	return fc, nil
}
