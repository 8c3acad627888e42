// Package config loads typed configuration structs from environment
// variables.
//
// Load parses env tags via github.com/caarlos0/env and caches the result per
// struct type, so every subsystem can ask for its own config without
// re-reading the environment. A .env file in the working directory is loaded
// once through github.com/joho/godotenv when present.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
package config
