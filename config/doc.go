// Package config loads the gateway's runtime configuration from
// environment variables, plus an optional YAML file for settings that
// don't fit naturally into a flat env var.
//
// Load reads LISTEN_PORT, REGISTRY_URL, API_UPSTREAM_URL, APP_UPSTREAM_URL,
// CACHE_TTL_MS, NONCE_TTL_MS, CLOCK_SKEW_S, and DEBUG. If AGENTGATE_CONFIG
// names a file, it is parsed as YAML for TrustedProxies and RequestTimeout;
// an env var setting the same field always wins.
package config
