// In file: cmd/engine/config.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dileep-u-k/pattern-engine/internal/pattern"
)

// AppConfig holds all configuration for the engine service, loaded from the
// environment and config.yaml.
type AppConfig struct {
	Port         string
	RedisAddr    string
	EngineConfig pattern.Config
}

// engineConfigFile is the optional YAML shape of config.yaml. Every field
// falls back to the engine's built-in defaults when absent.
type engineConfigFile struct {
	Engine pattern.Config `yaml:"engine"`
}

// LoadConfig loads all configuration from a .env file, environment variables,
// and an optional config.yaml.
func LoadConfig() (*AppConfig, error) {
	// Only load a .env file in local development. In containers, configuration
	// is provided directly as environment variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		Port:      os.Getenv("PORT"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	// config.yaml tunes the engine's rule tables; a missing file means
	// built-in defaults, any other read or parse failure is fatal.
	configPath := os.Getenv("ENGINE_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	raw, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No %s found, using built-in engine defaults.", configPath)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	var file engineConfigFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	cfg.EngineConfig = file.Engine
	return cfg, nil
}
