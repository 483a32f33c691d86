package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultAPIBaseURL is the public HunterPrice API
const DefaultAPIBaseURL = "https://api.hunterprice.online/api"

// Config represents the application configuration
type Config struct {
	APIBaseURL string `toml:"api_base_url" env:"API_BASE_URL" validate:"required,url"`
	PageSize   int    `toml:"page_size" env:"PAGE_SIZE" validate:"min=1,max=100"`
	LogLevel   string `toml:"log_level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error off"`
	LogFile    string `toml:"log_file" env:"LOG_FILE"`

	UI          UISettings         `toml:"ui" envPrefix:"UI_"`
	HTTP        HTTPSettings       `toml:"http" envPrefix:"HTTP_"`
	Suggestions SuggestionSettings `toml:"suggestions" envPrefix:"SUGGESTIONS_"`
	Location    LocationSettings   `toml:"location" envPrefix:"LOCATION_"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	// Debounce is the keystroke silence required before suggestions are fetched
	Debounce Duration `toml:"debounce" env:"DEBOUNCE" validate:"gt=0"`
	// ScrollThreshold is how many lines from the end of the list the next page is requested
	ScrollThreshold int `toml:"scroll_threshold" env:"SCROLL_THRESHOLD" validate:"min=0"`
	// FrameInterval rate-limits scroll proximity checks
	FrameInterval  Duration `toml:"frame_interval" env:"FRAME_INTERVAL" validate:"gt=0"`
	MouseSupport   bool     `toml:"mouse_support" env:"MOUSE_SUPPORT"`
	MaxSuggestions int      `toml:"max_suggestions" env:"MAX_SUGGESTIONS" validate:"min=1,max=50"`
}

// HTTPSettings configures the API client
type HTTPSettings struct {
	Timeout    Duration `toml:"timeout" env:"TIMEOUT" validate:"gt=0"`
	MaxRetries int      `toml:"max_retries" env:"MAX_RETRIES" validate:"min=0,max=5"`
	RetryDelay Duration `toml:"retry_delay" env:"RETRY_DELAY"`
	UserAgent  string   `toml:"user_agent" env:"USER_AGENT"`
}

// SuggestionSettings configures the autocomplete cache
type SuggestionSettings struct {
	CacheSize int      `toml:"cache_size" env:"CACHE_SIZE" validate:"min=0"`
	CacheTTL  Duration `toml:"cache_ttl" env:"CACHE_TTL"`
}

// LocationSettings is where the user is, used to find the closest store of
// each offer. Leave both at zero to skip the lookup.
type LocationSettings struct {
	Lat float64 `toml:"lat" env:"LAT" validate:"min=-90,max=90"`
	Lng float64 `toml:"lng" env:"LNG" validate:"min=-180,max=180"`
}

// Set reports whether a location was configured
func (l LocationSettings) Set() bool {
	return l.Lat != 0 || l.Lng != 0
}

// Duration is a time.Duration written as a string ("300ms") in TOML and env
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
	lookup   func() map[string]string
}

// NewConfigService creates a config service for the default config file
func NewConfigService() ConfigService {
	return &configService{filePath: filepath.Join(Dir(), "config.toml")}
}

// NewConfigServiceForPath creates a config service for a specific file
func NewConfigServiceForPath(path string) ConfigService {
	return &configService{filePath: path}
}

// Dir returns the directory holding config, session and log files
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "hunterprice")
}

// Path returns the config file this service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when
// the file does not exist, then applies .env and environment overrides
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	// A missing .env is normal outside development
	_ = godotenv.Load()

	if err := cs.applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *configService) applyEnv(cfg *Config) error {
	opts := env.Options{Prefix: "HUNTERPRICE_"}
	if cs.lookup != nil {
		opts.Environment = cs.lookup()
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Validate Duration fields as plain time.Duration values
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(Duration); ok {
			return d.Duration
		}
		return nil
	}, Duration{})
	return v
}

// Validate checks the configuration values
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LogFilePath returns the configured log file or the default one
func (c *Config) LogFilePath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(Dir(), "hunterprice.log")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL: DefaultAPIBaseURL,
		PageSize:   20,
		LogLevel:   "info",
		UI: UISettings{
			Debounce:        Duration{300 * time.Millisecond},
			ScrollThreshold: 5,
			FrameInterval:   Duration{16 * time.Millisecond},
			MouseSupport:    true,
			MaxSuggestions:  8,
		},
		HTTP: HTTPSettings{
			Timeout:    Duration{15 * time.Second},
			MaxRetries: 1,
			RetryDelay: Duration{250 * time.Millisecond},
			UserAgent:  "hunterprice-tui",
		},
		Suggestions: SuggestionSettings{
			CacheSize: 256,
			CacheTTL:  Duration{2 * time.Minute},
		},
	}
}
