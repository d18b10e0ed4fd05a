package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel           string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort           string        `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	WebDir             string        `yaml:"web-dir" env:"WEB_DIR" env-default:"./web"`
	SessionIdleTimeout time.Duration `yaml:"session-idle-timeout" env:"SESSION_IDLE_TIMEOUT" env-default:"30m"`
	Telemetry          Telemetry     `yaml:"telemetry"`
}

type Telemetry struct {
	Enabled  bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	Endpoint string `yaml:"endpoint" env:"OTEL_ENDPOINT" env-default:"localhost:4317"`
}

// MustLoad reads the yaml config at path, falling back to environment
// variables alone when the file does not exist.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read config from environment: %w", err))
		}
		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}
