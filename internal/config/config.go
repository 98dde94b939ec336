package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultAppName is the application name used for the per-user directory and
// the settings file name.
const DefaultAppName = "PasswordHashTool"

// Options represents the tool configuration
type Options struct {
	App       AppConfig       `yaml:"app" json:"app"`
	Digest    DigestConfig    `yaml:"digest" json:"digest"`
	Clipboard ClipboardConfig `yaml:"clipboard" json:"clipboard"`
	Notify    NotifyConfig    `yaml:"notify" json:"notify"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
}

// AppConfig identifies the application and where its per-user files live
type AppConfig struct {
	Name    string `yaml:"name" json:"name" validate:"required,excludesall=/\\"`
	HomeDir string `yaml:"home_dir" json:"home_dir" validate:"required"`
}

// DigestConfig selects the digest algorithm
type DigestConfig struct {
	Algorithm string `yaml:"algorithm" json:"algorithm" validate:"required,oneof=sha256 sha3-256 blake2b-256"`
}

// ClipboardConfig controls clipboard output
type ClipboardConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// NotifyConfig controls the desktop notification shown after a copy
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Timeout int    `yaml:"timeout_ms" json:"timeout_ms" validate:"gte=-1,lte=600000"`
	Icon    string `yaml:"icon" json:"icon"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `yaml:"format" json:"format" validate:"omitempty,oneof=json text"`
	File       string `yaml:"file" json:"file"`
	MaxSize    int    `yaml:"max_size" json:"max_size" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups" validate:"gte=0"`
	MaxAge     int    `yaml:"max_age" json:"max_age" validate:"gte=0"`
}

// Paths holds the per-user locations derived from AppConfig. It is computed
// once at start and handed to the components that need it.
type Paths struct {
	Dir          string
	SettingsFile string
	OptionsFile  string
	LogFile      string
}

// Default returns the built-in options for the given home directory
func Default(home string) *Options {
	return &Options{
		App: AppConfig{
			Name:    DefaultAppName,
			HomeDir: home,
		},
		Digest: DigestConfig{
			Algorithm: "sha256",
		},
		Clipboard: ClipboardConfig{
			Enabled: true,
		},
		Notify: NotifyConfig{
			Enabled: false,
			Timeout: 4000,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			File:       "",
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     30,
		},
	}
}

// Load builds the options from defaults, the optional YAML file and
// environment variables. A missing default options file is not an error; a
// path given through the argument or PWHASH_CONFIG must exist.
func Load(path string) (*Options, error) {
	home, err := resolveHome()
	if err != nil {
		return nil, err
	}
	opts := Default(home)

	if path == "" {
		path = os.Getenv("PWHASH_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		path = opts.Paths().OptionsFile
	}

	if _, err := os.Stat(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read options file: %w", err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read options file: %w", err)
		}

		if err := yaml.Unmarshal(data, opts); err != nil {
			return nil, fmt.Errorf("failed to parse options file: %w", err)
		}
	}

	// Override with environment variables
	if h := os.Getenv("PWHASH_HOME"); h != "" {
		opts.App.HomeDir = h
	}

	if algo := os.Getenv("PWHASH_ALGO"); algo != "" {
		opts.Digest.Algorithm = algo
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		opts.Logging.Level = logLevel
	}

	opts.normalize()

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return opts, nil
}

var validate = validator.New()

// Validate checks if the options are valid
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}

// Paths derives the per-user file locations:
// <home>/.<appname-lowercase>/<AppName>.config.json and friends.
func (o *Options) Paths() Paths {
	dir := filepath.Join(o.App.HomeDir, "."+strings.ToLower(o.App.Name))
	logFile := o.Logging.File
	if strings.TrimSpace(logFile) == "" {
		logFile = filepath.Join(dir, "logs", strings.ToLower(o.App.Name)+".log")
	}
	return Paths{
		Dir:          dir,
		SettingsFile: filepath.Join(dir, o.App.Name+".config.json"),
		OptionsFile:  filepath.Join(dir, "config.yaml"),
		LogFile:      logFile,
	}
}

// Save writes the options back to disk
func Save(opts *Options, path string) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create options directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write options: %w", err)
	}
	return nil
}

func (o *Options) normalize() {
	o.App.Name = strings.TrimSpace(o.App.Name)
	if o.App.Name == "" {
		o.App.Name = DefaultAppName
	}
	o.Digest.Algorithm = strings.ToLower(strings.TrimSpace(o.Digest.Algorithm))
	o.Logging.Level = strings.ToLower(strings.TrimSpace(o.Logging.Level))
	o.Logging.Format = strings.ToLower(strings.TrimSpace(o.Logging.Format))

	if home := strings.TrimSpace(o.App.HomeDir); home != "" && !filepath.IsAbs(home) {
		if abs, err := filepath.Abs(home); err == nil {
			o.App.HomeDir = abs
		}
	}
	if f := strings.TrimSpace(o.Logging.File); f != "" && !filepath.IsAbs(f) {
		o.Logging.File = filepath.Join(o.App.HomeDir, "."+strings.ToLower(o.App.Name), f)
	}
}

func resolveHome() (string, error) {
	if h := os.Getenv("PWHASH_HOME"); h != "" {
		return h, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return home, nil
}
