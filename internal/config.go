package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/silinternational/category-sync/alert"
)

const (
	AccessTokenEnv     = "HUBSPOT_ACCESS_TOKEN"
	ConfigPathEnv      = "CONFIG_PATH"
	DefaultConfigFile  = "./config.json"
	DefaultVerbosity   = VerbosityMedium
	DefaultBaseURL     = "https://api.hubapi.com"
	DefaultPageSize    = 100
	MaxPageSize        = 200
	DefaultTimeout     = 30
	DefaultMaxTries    = 3
	DefaultRetryMaxSec = 60
)

const (
	VerbosityLow    = 0
	VerbosityMedium = 5
	VerbosityHigh   = 10
)

type Config struct {
	Runtime RuntimeConfig
	HubSpot HubSpotConfig
	Objects ObjectConfig
	Alert   alert.Config
}

type RuntimeConfig struct {
	DryRunMode        bool
	AllowEmptyReplace bool
	Verbosity         int
}

type HubSpotConfig struct {
	AccessToken            string `json:"-"`
	BaseURL                string
	PageSize               int
	TimeoutSeconds         int
	MaxTries               uint
	RetryMaxElapsedSeconds int
}

// ObjectConfig names the objects and properties taking part in a sync
type ObjectConfig struct {
	ProductObjectType    string
	EnumerationProperty  string
	CategoryObjectName   string
	CategoryIDProperty   string
	CategoryNameProperty string
}

func NewConfig() Config {
	return Config{
		Runtime: RuntimeConfig{
			Verbosity: DefaultVerbosity,
		},
		HubSpot: HubSpotConfig{
			BaseURL:                DefaultBaseURL,
			PageSize:               DefaultPageSize,
			TimeoutSeconds:         DefaultTimeout,
			MaxTries:               DefaultMaxTries,
			RetryMaxElapsedSeconds: DefaultRetryMaxSec,
		},
		Objects: ObjectConfig{
			ProductObjectType:    "products",
			EnumerationProperty:  "product_category",
			CategoryObjectName:   "product_categories",
			CategoryIDProperty:   "product_category_id",
			CategoryNameProperty: "product_category",
		},
	}
}

// LoadConfig reads the config file if one is provided. Otherwise, it looks for
// a config file based on the CONFIG_PATH env var, and then for "./config.json".
// With no config file at all the defaults are used. The access token always
// comes from the environment, which may be populated from a .env file.
func LoadConfig(configFile string) (Config, error) {
	_ = godotenv.Load()

	config := NewConfig()

	if configFile == "" {
		configFile = os.Getenv(ConfigPathEnv)
	}
	if configFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			configFile = DefaultConfigFile
		}
	}

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return config, fmt.Errorf("unable to read application config file %s: %w", configFile, err)
		}
		if config, err = ReadConfig(data); err != nil {
			return config, err
		}
	}

	config.HubSpot.AccessToken = os.Getenv(AccessTokenEnv)

	return config, config.Validate()
}

// ReadConfig parses raw json config data on top of the defaults
func ReadConfig(data []byte) (Config, error) {
	config := NewConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("unable to unmarshal application configuration file data: %w", err)
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.HubSpot.AccessToken == "" {
		return fmt.Errorf("%s environment variable not set", AccessTokenEnv)
	}
	if c.HubSpot.BaseURL == "" {
		return errors.New("configuration appears to be missing a HubSpot BaseURL")
	}
	if c.HubSpot.PageSize < 1 || c.HubSpot.PageSize > MaxPageSize {
		return fmt.Errorf("HubSpot PageSize must be between 1 and %d, got %d", MaxPageSize, c.HubSpot.PageSize)
	}

	required := map[string]string{
		"ProductObjectType":    c.Objects.ProductObjectType,
		"EnumerationProperty":  c.Objects.EnumerationProperty,
		"CategoryObjectName":   c.Objects.CategoryObjectName,
		"CategoryIDProperty":   c.Objects.CategoryIDProperty,
		"CategoryNameProperty": c.Objects.CategoryNameProperty,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("configuration appears to be missing Objects.%s", name)
		}
	}

	return nil
}

func (h HubSpotConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

func (h HubSpotConfig) RetryMaxElapsed() time.Duration {
	return time.Duration(h.RetryMaxElapsedSeconds) * time.Second
}
