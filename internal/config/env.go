// Package config loads host configuration from files and the environment.
package config

import "os"

// ConfigPathEnv names the variable holding an optional config file path.
const ConfigPathEnv = "BRAINROT_CONFIG"

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// LoadFromEnv loads the config file named by BRAINROT_CONFIG, or defaults if unset.
func LoadFromEnv() (*Config, error) {
	return Load(GetEnv(ConfigPathEnv, ""))
}
