package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // requests per window
	Window time.Duration // refill window
	Burst  int           // burst capacity, Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig is enabled with 600 requests a minute per client
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// model calls and bulk writes
		{Path: "/spin", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/library/import", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},
		{Path: "/extract", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// library writes
		{Path: "/library", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/library/", Method: "PUT", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/library/", Method: "DELETE", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		for _, ip := range strings.Split(item, ",") {
			if ip = strings.TrimSpace(ip); ip != "" {
				result[ip] = true
			}
		}
	}
	return result
}
