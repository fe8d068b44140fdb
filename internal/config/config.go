package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

const defaultPort = "8080"
const defaultEntryCacheCapacity = 200
const defaultListCacheCapacity = 200
const defaultListRowTTL = 1 * time.Minute

type Config struct {
	port               string
	sentryDSN          string
	catalogURL         string
	catalogAPIKey      string
	googleCloudProject string
	otelEnabled        bool
	entryCacheCapacity int
	listCacheCapacity  int
	listRowTTL         time.Duration
	env                environment
}

func (c *Config) Port() string {
	return c.port
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) CatalogURL() string {
	return c.catalogURL
}

func (c *Config) CatalogAPIKey() string {
	return c.catalogAPIKey
}

func (c *Config) GoogleCloudProject() string {
	return c.googleCloudProject
}

func (c *Config) OTelEnabled() bool {
	return c.otelEnabled
}

func (c *Config) EntryCacheCapacity() int {
	return c.entryCacheCapacity
}

func (c *Config) ListCacheCapacity() int {
	return c.listCacheCapacity
}

func (c *Config) ListRowTTL() time.Duration {
	return c.listRowTTL
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, port: %s, entryCacheCapacity: %d, listCacheCapacity: %d, listRowTTL: %s, otelEnabled: %t, ...}",
		string(c.env),
		c.port,
		c.entryCacheCapacity,
		c.listCacheCapacity,
		c.listRowTTL,
		c.otelEnabled,
	)
}

func positiveIntFromEnv(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s (%s)", ErrInvalidValue, key, raw)
	}
	return value, nil
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("GAMESHELF_ENVIRONMENT")
	if !ok {
		return missingKey("GAMESHELF_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: GAMESHELF_ENVIRONMENT (%s)", ErrInvalidValue, rawEnv)
	}
	if string(env) == "" {
		panic("logic error: env is empty")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	catalogURL := os.Getenv("CATALOG_URL")
	catalogAPIKey := os.Getenv("CATALOG_API_KEY")
	googleCloudProject := os.Getenv("GOOGLE_CLOUD_PROJECT")
	otelEnabled := os.Getenv("OTEL_ENABLED") == "true"

	if env == production || env == staging {
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
		if catalogURL == "" {
			return missingKey("CATALOG_URL")
		}
		if catalogAPIKey == "" {
			return missingKey("CATALOG_API_KEY")
		}
	}

	entryCacheCapacity, err := positiveIntFromEnv("ENTRY_CACHE_CAPACITY", defaultEntryCacheCapacity)
	if err != nil {
		return Config{}, err
	}
	listCacheCapacity, err := positiveIntFromEnv("LIST_CACHE_CAPACITY", defaultListCacheCapacity)
	if err != nil {
		return Config{}, err
	}

	listRowTTL := defaultListRowTTL
	if rawTTL := os.Getenv("LIST_ROW_TTL"); rawTTL != "" {
		listRowTTL, err = time.ParseDuration(rawTTL)
		if err != nil || listRowTTL <= 0 {
			return Config{}, fmt.Errorf("%w: LIST_ROW_TTL (%s)", ErrInvalidValue, rawTTL)
		}
	}

	return Config{
		port:               port,
		sentryDSN:          sentryDSN,
		catalogURL:         catalogURL,
		catalogAPIKey:      catalogAPIKey,
		googleCloudProject: googleCloudProject,
		otelEnabled:        otelEnabled,
		entryCacheCapacity: entryCacheCapacity,
		listCacheCapacity:  listCacheCapacity,
		listRowTTL:         listRowTTL,
		env:                env,
	}, nil
}
