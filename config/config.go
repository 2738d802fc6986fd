package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port    string `yaml:"port"`
		GinMode string `yaml:"ginMode"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"` // sqlite or postgres
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret      string        `yaml:"jwtSecret"`
		TokenTTL       time.Duration `yaml:"tokenTTL"`
		SimulatedDelay time.Duration `yaml:"simulatedDelay"`
	} `yaml:"auth"`
	Geocode struct {
		BaseURL   string        `yaml:"baseURL"`
		UserAgent string        `yaml:"userAgent"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"geocode"`
	Logging struct {
		Level   string `yaml:"level"` // trace, debug, info, warn, error
		File    string `yaml:"file"`
		MaxSize int    `yaml:"maxSizeMB"`
	} `yaml:"logging"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	var c Config
	c.Server.Port = "8080"
	c.Server.GinMode = "debug"
	c.Database.Driver = "sqlite"
	c.Database.DSN = "superapp.db"
	c.Auth.JWTSecret = "domi_super_secret_2024"
	c.Auth.TokenTTL = 24 * time.Hour
	c.Geocode.BaseURL = "https://nominatim.openstreetmap.org"
	c.Geocode.UserAgent = "superapp-api/1.0"
	c.Geocode.Timeout = 5 * time.Second
	c.Logging.Level = "info"
	c.Logging.MaxSize = 32
	return c
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads path on top of the defaults, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	conf := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, &conf); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	conf.Server.Port = getEnv("PORT", conf.Server.Port)
	conf.Server.GinMode = getEnv("GIN_MODE", conf.Server.GinMode)
	conf.Database.Driver = getEnv("DB_DRIVER", conf.Database.Driver)
	conf.Database.DSN = getEnv("DB_DSN", conf.Database.DSN)
	conf.Auth.JWTSecret = getEnv("JWT_SECRET", conf.Auth.JWTSecret)
	conf.Logging.Level = getEnv("LOG_LEVEL", conf.Logging.Level)
	conf.Logging.File = getEnv("LOG_FILE", conf.Logging.File)

	return conf, Validate(conf)
}

func Validate(conf Config) error {
	switch strings.ToLower(conf.Database.Driver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database driver %q: must be sqlite or postgres", conf.Database.Driver)
	}
	switch conf.Server.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown gin mode %q", conf.Server.GinMode)
	}
	if conf.Database.DSN == "" {
		return errors.New("database dsn is empty")
	}
	if conf.Auth.JWTSecret == "" {
		return errors.New("jwt secret is empty")
	}
	if conf.Auth.TokenTTL <= 0 {
		return errors.New("token ttl must be > 0")
	}
	if conf.Auth.SimulatedDelay < 0 {
		return errors.New("simulated delay must be >= 0")
	}
	return nil
}
