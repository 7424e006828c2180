package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"autopick/internal/domain"
	"autopick/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version"`
	Timing  Timing          `toml:"timing"`
	Options []domain.Option `toml:"options"`
	Widgets []WidgetConfig  `toml:"widgets"`
}

// Timing holds the delays used by the widgets and the demo search
type Timing struct {
	InputDebounce   Duration `toml:"input_debounce"`
	SearchDebounce  Duration `toml:"search_debounce"`
	SearchDelay     Duration `toml:"search_delay"` // simulated remote latency
	NotificationTTL Duration `toml:"notification_ttl"`
	SearchCacheSize int      `toml:"search_cache_size"`
}

// WidgetConfig describes one autocomplete instance on the demo page
type WidgetConfig struct {
	Label       string   `toml:"label"`
	Description string   `toml:"description"`
	Placeholder string   `toml:"placeholder"`
	SearchMode  string   `toml:"search_mode"`
	Disabled    bool     `toml:"disabled,omitempty"`
	Loading     bool     `toml:"loading,omitempty"`
	Multiple    bool     `toml:"multiple,omitempty"`
	Value       []string `toml:"value,omitempty"` // initially selected option values
}

// Duration is a time.Duration stored as a Go duration string ("300ms")
type Duration time.Duration

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
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
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "autopick", "config.toml")
}

// NewConfigService creates a config service for the given file.
// An empty path selects DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file.
// A missing file yields DefaultConfig.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Parse decodes TOML, fills unset timing values from the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Timing.InputDebounce == 0 {
		c.Timing.InputDebounce = def.Timing.InputDebounce
	}
	if c.Timing.SearchDebounce == 0 {
		c.Timing.SearchDebounce = def.Timing.SearchDebounce
	}
	if c.Timing.SearchDelay == 0 {
		c.Timing.SearchDelay = def.Timing.SearchDelay
	}
	if c.Timing.NotificationTTL == 0 {
		c.Timing.NotificationTTL = def.Timing.NotificationTTL
	}
	if c.Timing.SearchCacheSize == 0 {
		c.Timing.SearchCacheSize = def.Timing.SearchCacheSize
	}
	if len(c.Options) == 0 {
		c.Options = def.Options
	}
	if len(c.Widgets) == 0 {
		c.Widgets = def.Widgets
	}
}

// Validate checks the configuration for values the widgets cannot use
func (c *Config) Validate() error {
	durations := map[string]Duration{
		"input_debounce":   c.Timing.InputDebounce,
		"search_debounce":  c.Timing.SearchDebounce,
		"search_delay":     c.Timing.SearchDelay,
		"notification_ttl": c.Timing.NotificationTTL,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("timing.%s must not be negative", name)
		}
	}
	if c.Timing.SearchCacheSize < 0 {
		return fmt.Errorf("timing.search_cache_size must not be negative")
	}

	seen := make(map[string]bool, len(c.Options))
	for i, opt := range c.Options {
		if opt.Value == "" {
			return fmt.Errorf("options[%d]: empty value", i)
		}
		if seen[opt.Value] {
			return fmt.Errorf("options[%d]: duplicate value %q", i, opt.Value)
		}
		seen[opt.Value] = true
	}

	for i, w := range c.Widgets {
		if _, err := domain.ParseSearchMode(w.SearchMode); err != nil {
			return fmt.Errorf("widgets[%d]: %w", i, err)
		}
		for _, v := range w.Value {
			if !seen[v] {
				return fmt.Errorf("widgets[%d]: initial value %q is not in the catalog", i, v)
			}
		}
	}
	return nil
}

// InitialOptions resolves a widget's initial values against the catalog
func (c *Config) InitialOptions(w WidgetConfig) []domain.Option {
	byValue := make(map[string]domain.Option, len(c.Options))
	for _, opt := range c.Options {
		byValue[opt.Value] = opt
	}
	initial := make([]domain.Option, 0, len(w.Value))
	for _, v := range w.Value {
		if opt, ok := byValue[v]; ok {
			initial = append(initial, opt)
		}
	}
	return initial
}

// DefaultConfig returns the default configuration: the currency catalog and
// the two demo widgets
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Timing: Timing{
			InputDebounce:   Duration(300 * time.Millisecond),
			SearchDebounce:  Duration(300 * time.Millisecond),
			SearchDelay:     Duration(time.Second),
			NotificationTTL: Duration(3 * time.Second),
			SearchCacheSize: 64,
		},
		Options: []domain.Option{
			{Value: "usd", Label: "USD - United States Dollar"},
			{Value: "eur", Label: "EUR - Euro"},
			{Value: "gbp", Label: "GBP - British Pound Sterling"},
			{Value: "jpy", Label: "JPY - Japanese Yen"},
			{Value: "cad", Label: "CAD - Canadian Dollar"},
			{Value: "aud", Label: "AUD - Australian Dollar"},
			{Value: "chf", Label: "CHF - Swiss Franc"},
			{Value: "cny", Label: "CNY - Chinese Yuan"},
			{Value: "sek", Label: "SEK - Swedish Krona"},
			{Value: "sgd", Label: "SGD - Singapore Dollar"},
		},
		Widgets: []WidgetConfig{
			{
				Label:       "Synchronous Search",
				Description: "With default display and search on focus",
				Placeholder: "Search...",
				SearchMode:  string(domain.SearchModeLocal),
			},
			{
				Label:       "Asynchronous Search",
				Description: "With description and custom results display",
				Placeholder: "Start typing for results...",
				SearchMode:  string(domain.SearchModeAsync),
			},
		},
	}
}
