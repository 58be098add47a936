package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays environment variables named by the `env` struct tags.
// Unset variables leave the current value untouched.
func parseEnv(cfg *Config) error {
	return cleanenv.ReadEnv(cfg)
}
