package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/hire/internal/command"
)

// Config represents the root configuration structure
type Config struct {
	Debug   bool           `mapstructure:"debug"`
	LogFile string         `mapstructure:"log_file"`
	Options OptionsConfig  `mapstructure:"options"`
	UI      UIConfig       `mapstructure:"ui"`
	Keymap  []command.Spec `mapstructure:"keymap"`

	// File is the config file that was read, empty when running on defaults
	File string `mapstructure:"-"`
}

// OptionsConfig holds editing behaviour
type OptionsConfig struct {
	TabIndent  bool   `mapstructure:"tab_indent" yaml:"tab_indent"`
	TabWidth   int    `mapstructure:"tab_width" yaml:"tab_width"`
	ConfirmKey string `mapstructure:"confirm_key" yaml:"confirm_key"`
}

// UIConfig holds user interface preferences
type UIConfig struct {
	Theme           string        `mapstructure:"theme"`
	SyntaxTheme     string        `mapstructure:"syntax_theme"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// Themes lists the accepted ui.theme values
var Themes = []string{"dark", "light"}

// Load reads the config from path, or from the standard locations when path
// is empty. A missing file in the standard locations is not an error.
func Load(path string) (*Config, error) {
	return LoadFs(nil, path)
}

// LoadFs is Load over the given filesystem. A nil fs is the OS filesystem.
func LoadFs(fs afero.Fs, path string) (*Config, error) {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "hire"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "hire"))
		}
		v.AddConfigPath(".")
	}

	// Environment variable support: HIRE_OPTIONS_TAB_WIDTH=8
	v.SetEnvPrefix("HIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used without a config file
func Default() *Config {
	v := viper.New()
	applyDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("default config: %v", err))
	}
	return &cfg
}

// Validate checks every value and compiles the keymap
func (c *Config) Validate() error {
	if c.Options.TabWidth < 1 || c.Options.TabWidth > 16 {
		return fmt.Errorf("options.tab_width must be between 1 and 16, got %d", c.Options.TabWidth)
	}

	if utf8.RuneCountInString(c.Options.ConfirmKey) != 1 {
		return fmt.Errorf("options.confirm_key must be a single character, got %q", c.Options.ConfirmKey)
	}
	if key, err := command.ParseKey(c.Options.ConfirmKey); err != nil || !key.IsChar() {
		return fmt.Errorf("options.confirm_key must be printable, got %q", c.Options.ConfirmKey)
	}

	if !slices.Contains(Themes, c.UI.Theme) {
		return fmt.Errorf("ui.theme must be one of: %v, got %s", Themes, c.UI.Theme)
	}
	if c.UI.SyntaxTheme == "" {
		return fmt.Errorf("ui.syntax_theme cannot be empty")
	}
	if c.UI.RefreshInterval < 10*time.Millisecond || c.UI.RefreshInterval > time.Second {
		return fmt.Errorf("ui.refresh_interval must be between 10ms and 1s, got %v", c.UI.RefreshInterval)
	}

	if _, err := c.Table(); err != nil {
		return fmt.Errorf("keymap: %w", err)
	}
	return nil
}

// Bindings returns the default keymap followed by the configured entries,
// so configured keys override the defaults.
func (c *Config) Bindings() []command.Spec {
	return append(command.DefaultSpecs(), c.Keymap...)
}

// Table compiles Bindings into the binding table
func (c *Config) Table() (*command.Table, error) {
	return command.Compile(c.Bindings())
}

// ConfirmRune returns the quit confirmation key
func (c *Config) ConfirmRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Options.ConfirmKey)
	return r
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_file", "")

	// Editing defaults
	v.SetDefault("options.tab_indent", false)
	v.SetDefault("options.tab_width", 4)
	v.SetDefault("options.confirm_key", "y")

	// UI defaults
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.syntax_theme", "base16-snazzy")
	v.SetDefault("ui.refresh_interval", "50ms")
}

// document is the on-disk layout written by DefaultYAML
type document struct {
	Debug   bool           `yaml:"debug"`
	LogFile string         `yaml:"log_file"`
	Options OptionsConfig  `yaml:"options"`
	UI      uiDocument     `yaml:"ui"`
	Keymap  []command.Spec `yaml:"keymap"`
}

type uiDocument struct {
	Theme           string `yaml:"theme"`
	SyntaxTheme     string `yaml:"syntax_theme"`
	RefreshInterval string `yaml:"refresh_interval"`
}

// DefaultYAML renders the default configuration, keymap included
func DefaultYAML() ([]byte, error) {
	cfg := Default()
	doc := document{
		Debug:   cfg.Debug,
		LogFile: cfg.LogFile,
		Options: cfg.Options,
		UI: uiDocument{
			Theme:           cfg.UI.Theme,
			SyntaxTheme:     cfg.UI.SyntaxTheme,
			RefreshInterval: cfg.UI.RefreshInterval.String(),
		},
		Keymap: command.DefaultSpecs(),
	}
	return yaml.Marshal(&doc)
}

// DefaultPath is where `hire config init` writes: <user config dir>/hire/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hire", "config.yaml"), nil
}

// WriteDefault writes DefaultYAML to path. An existing file is kept unless
// force is set.
func WriteDefault(fs afero.Fs, path string, force bool) error {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if exists, err := afero.Exists(fs, path); err != nil {
		return err
	} else if exists && !force {
		return fmt.Errorf("%s already exists", path)
	}

	data, err := DefaultYAML()
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0644)
}
