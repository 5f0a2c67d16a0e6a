package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for the environment-variable settings, per the gateway's
// configuration table. CacheTTL is seconds-scale rather than the
// reference's millisecond default, to avoid hammering the key registry
// under load.
const (
	defaultListenPort     = 3001
	defaultCacheTTL       = 5 * time.Second
	defaultNonceTTL       = time.Hour
	defaultClockSkew      = 60 * time.Second
	defaultRequestTimeout = 30 * time.Second
)

// ErrMissingUpstream is returned when a required upstream URL env var is
// unset.
var ErrMissingUpstream = errors.New("config: upstream url must be set")

// Config is the gateway's full runtime configuration.
type Config struct {
	// ListenPort is the TCP port the gateway listens on. Env: LISTEN_PORT.
	ListenPort int

	// RegistryURL is the base URL of the key registry. Env: REGISTRY_URL.
	RegistryURL string

	// APIUpstreamURL receives requests under /api. Env: API_UPSTREAM_URL.
	APIUpstreamURL string

	// APPUpstreamURL receives all other requests. Env: APP_UPSTREAM_URL.
	APPUpstreamURL string

	// CacheTTL bounds how long a fetched key record is served from cache.
	// Env: CACHE_TTL_MS.
	CacheTTL time.Duration

	// NonceTTL bounds how long a nonce is retained for replay detection.
	// Env: NONCE_TTL_MS.
	NonceTTL time.Duration

	// ClockSkew bounds how far into the future a signature's created
	// timestamp may be. Env: CLOCK_SKEW_S.
	ClockSkew time.Duration

	// Debug enables verbose logging. Env: DEBUG.
	Debug bool

	// TrustedProxies is a list of IPs/CIDRs allowed to set forwarding
	// headers. Loaded only from the optional YAML file named by
	// AGENTGATE_CONFIG.
	TrustedProxies []string

	// RequestTimeout bounds how long a single request may take end to
	// end. Loaded only from the optional YAML file named by
	// AGENTGATE_CONFIG; defaults to defaultRequestTimeout.
	RequestTimeout time.Duration
}

// Load builds a Config from the process environment, then overlays an
// optional YAML file named by the AGENTGATE_CONFIG env var for the fields
// it covers. Env vars always take precedence over values loaded from the
// file.
func Load() (Config, error) {
	cfg := Config{
		ListenPort:     defaultListenPort,
		CacheTTL:       defaultCacheTTL,
		NonceTTL:       defaultNonceTTL,
		ClockSkew:      defaultClockSkew,
		RequestTimeout: defaultRequestTimeout,
	}

	if path := os.Getenv("AGENTGATE_CONFIG"); path != "" {
		file, err := loadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: loading %s: %w", path, err)
		}

		cfg.TrustedProxies = file.TrustedProxies
		if file.RequestTimeout > 0 {
			cfg.RequestTimeout = time.Duration(file.RequestTimeout)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	if v, ok := os.LookupEnv("LISTEN_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: LISTEN_PORT: %w", err)
		}

		cfg.ListenPort = port
	}

	cfg.RegistryURL = os.Getenv("REGISTRY_URL")
	cfg.APIUpstreamURL = os.Getenv("API_UPSTREAM_URL")
	cfg.APPUpstreamURL = os.Getenv("APP_UPSTREAM_URL")

	if cfg.APIUpstreamURL == "" || cfg.APPUpstreamURL == "" {
		return ErrMissingUpstream
	}

	if v, ok := os.LookupEnv("CACHE_TTL_MS"); ok {
		d, err := parseMillis(v)
		if err != nil {
			return fmt.Errorf("config: CACHE_TTL_MS: %w", err)
		}

		cfg.CacheTTL = d
	}

	if v, ok := os.LookupEnv("NONCE_TTL_MS"); ok {
		d, err := parseMillis(v)
		if err != nil {
			return fmt.Errorf("config: NONCE_TTL_MS: %w", err)
		}

		cfg.NonceTTL = d
	}

	if v, ok := os.LookupEnv("CLOCK_SKEW_S"); ok {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: CLOCK_SKEW_S: %w", err)
		}

		cfg.ClockSkew = time.Duration(secs) * time.Second
	}

	if v, ok := os.LookupEnv("DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: DEBUG: %w", err)
		}

		cfg.Debug = b
	}

	return nil
}

func parseMillis(v string) (time.Duration, error) {
	ms, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}

	return time.Duration(ms) * time.Millisecond, nil
}
