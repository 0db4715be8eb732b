// Package config loads the aisurvival configuration from an optional YAML
// file and AISURVIVAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/aisurvival/internal/apperr"
	"github.com/abhisek/aisurvival/internal/diagnosis"
	"github.com/abhisek/aisurvival/internal/llm"
	"github.com/abhisek/aisurvival/internal/refdoc"
)

// DefaultDPI is the resolution the reference document is read at.
const DefaultDPI = 600

// Config is the full application configuration.
type Config struct {
	LLM      llm.Config       `yaml:"llm"`
	Document DocumentConfig   `yaml:"document"`
	Assets   AssetsConfig     `yaml:"assets"`
	Store    StoreConfig      `yaml:"store"`
	Log      LogConfig        `yaml:"log"`
	Report   diagnosis.Config `yaml:"report"`
	Display  DisplayConfig    `yaml:"display"`
}

// DocumentConfig locates the reference document.
type DocumentConfig struct {
	Path         string `yaml:"path"`
	DPI          int    `yaml:"dpi"`
	MaxImageEdge int    `yaml:"max_image_edge"`

	// Pdftoppm overrides the pdftoppm binary looked up on PATH.
	Pdftoppm string `yaml:"pdftoppm"`
}

// AssetsConfig locates the static course images.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// StoreConfig locates the SQLite database. Empty means the XDG default.
type StoreConfig struct {
	DB string `yaml:"db"`
}

// LogConfig selects the logger mode: "dev", "prod" or "quiet".
type LogConfig struct {
	Mode string `yaml:"mode"`
}

// DisplayConfig controls terminal rendering of the report.
type DisplayConfig struct {
	// Style is a glamour style name ("auto", "dark", "light", "notty", ...)
	// or a path to a JSON style file.
	Style string `yaml:"style"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Document: DocumentConfig{
			Path:         filepath.Join("assets", "survival-guide.pdf"),
			DPI:          DefaultDPI,
			MaxImageEdge: refdoc.DefaultMaxImageEdge,
		},
		Assets:  AssetsConfig{Dir: "assets"},
		Log:     LogConfig{Mode: "quiet"},
		Report:  diagnosis.DefaultConfig(),
		Display: DisplayConfig{Style: "auto"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/aisurvival/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "aisurvival", "config.yaml"), nil
}

// Load reads path over the defaults, then applies the environment. An empty
// path reads the default location and tolerates it being absent; an explicit
// path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, &Error{Field: "file", Err: fmt.Errorf("parse %s: %w", path, err)}
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, &Error{Field: "file", Err: err}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if discovered, ok := llm.DiscoverConfig(cfg.LLM); ok {
		cfg.LLM = discovered
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with AISURVIVAL_* environment variables.
func (c *Config) ApplyEnv() error {
	c.LLM.ApplyEnv()

	setFromEnv(&c.Document.Path, "AISURVIVAL_DOCUMENT")
	setFromEnv(&c.Assets.Dir, "AISURVIVAL_ASSETS_DIR")
	setFromEnv(&c.Store.DB, "AISURVIVAL_DB")
	setFromEnv(&c.Log.Mode, "AISURVIVAL_LOG")
	setFromEnv(&c.Report.Language, "AISURVIVAL_LANGUAGE")
	setFromEnv(&c.Display.Style, "AISURVIVAL_STYLE")

	if v := os.Getenv("AISURVIVAL_DOCUMENT_DPI"); v != "" {
		dpi, err := strconv.Atoi(v)
		if err != nil {
			return &Error{Field: "document.dpi", Err: fmt.Errorf("AISURVIVAL_DOCUMENT_DPI: %w", err)}
		}
		c.Document.DPI = dpi
	}
	return nil
}

// Validate checks credentials and resource paths. Every error it returns
// matches apperr.ErrConfiguration.
func (c Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return &Error{Field: "llm", Err: err}
	}
	if err := c.ValidateResources(); err != nil {
		return err
	}
	if c.Report.Narrate.MaxTokens <= 0 || c.Report.Classify.MaxTokens <= 0 || c.Report.Recommend.MaxTokens <= 0 {
		return &Error{Field: "report", Err: errors.New("max_tokens must be positive")}
	}
	return nil
}

// ValidateResources checks only the document and asset settings, for
// commands that never reach the generation service.
func (c Config) ValidateResources() error {
	if c.Document.Path == "" {
		return &Error{Field: "document.path", Err: errors.New("not set")}
	}
	if st, err := os.Stat(c.Document.Path); err != nil {
		return &Error{Field: "document.path", Err: err}
	} else if st.IsDir() {
		return &Error{Field: "document.path", Err: fmt.Errorf("%s is a directory", c.Document.Path)}
	}
	if c.Document.DPI <= 0 {
		return &Error{Field: "document.dpi", Err: fmt.Errorf("must be positive, got %d", c.Document.DPI)}
	}
	if c.Document.MaxImageEdge < 0 {
		return &Error{Field: "document.max_image_edge", Err: fmt.Errorf("must not be negative, got %d", c.Document.MaxImageEdge)}
	}
	if c.Assets.Dir == "" {
		return &Error{Field: "assets.dir", Err: errors.New("not set")}
	}
	if st, err := os.Stat(c.Assets.Dir); err != nil {
		return &Error{Field: "assets.dir", Err: err}
	} else if !st.IsDir() {
		return &Error{Field: "assets.dir", Err: fmt.Errorf("%s is not a directory", c.Assets.Dir)}
	}
	return nil
}

// Error is a configuration problem with one field.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error        { return e.Err }
func (e *Error) Is(target error) bool { return target == apperr.ErrConfiguration }

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
