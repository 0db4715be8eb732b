package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aisurvival/internal/apperr"
)

// clearEnv blanks every variable Load consults so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"AISURVIVAL_LLM_PROVIDER", "AISURVIVAL_OPENAI_API_KEY", "AISURVIVAL_OPENAI_MODEL",
		"AISURVIVAL_OPENAI_BASE_URL", "AISURVIVAL_ANTHROPIC_API_KEY", "AISURVIVAL_ANTHROPIC_MODEL",
		"AISURVIVAL_GEMINI_API_KEY", "AISURVIVAL_GEMINI_MODEL", "AISURVIVAL_GEMINI_BASE_URL",
		"AISURVIVAL_OPENROUTER_API_KEY",
		"AISURVIVAL_OPENROUTER_MODEL", "AISURVIVAL_DOCUMENT", "AISURVIVAL_DOCUMENT_DPI",
		"AISURVIVAL_ASSETS_DIR", "AISURVIVAL_DB", "AISURVIVAL_LOG", "AISURVIVAL_LANGUAGE",
		"AISURVIVAL_STYLE",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 600, cfg.Document.DPI)
	assert.Equal(t, 2048, cfg.Document.MaxImageEdge)
	assert.Equal(t, "Japanese", cfg.Report.Language)
	assert.Equal(t, "auto", cfg.Display.Style)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConfiguration))
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
llm:
  provider: anthropic
  anthropic:
    api_key: sk-ant-test
document:
  path: /srv/guide.pdf
  dpi: 300
assets:
  dir: /srv/assets
report:
  language: English
  narrate:
    max_tokens: 2000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant-test", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model, "unset fields keep defaults")
	assert.Equal(t, "/srv/guide.pdf", cfg.Document.Path)
	assert.Equal(t, 300, cfg.Document.DPI)
	assert.Equal(t, 2048, cfg.Document.MaxImageEdge)
	assert.Equal(t, "English", cfg.Report.Language)
	assert.Equal(t, 2000, cfg.Report.Narrate.MaxTokens)
	assert.Equal(t, 256, cfg.Report.Classify.MaxTokens)
}

func TestLoad_DefaultLocation(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "aisurvival", "config.yaml"), "log:\n  mode: prod\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Log.Mode)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "llm: [unclosed\n")

	_, err := Load(path)
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "file", cerr.Field)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "document:\n  path: /from/file.pdf\n")
	t.Setenv("AISURVIVAL_DOCUMENT", "/from/env.pdf")
	t.Setenv("AISURVIVAL_DOCUMENT_DPI", "150")
	t.Setenv("AISURVIVAL_LANGUAGE", "English")
	t.Setenv("AISURVIVAL_DB", "/tmp/x.db")
	t.Setenv("AISURVIVAL_STYLE", "light")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.pdf", cfg.Document.Path)
	assert.Equal(t, 150, cfg.Document.DPI)
	assert.Equal(t, "English", cfg.Report.Language)
	assert.Equal(t, "/tmp/x.db", cfg.Store.DB)
	assert.Equal(t, "light", cfg.Display.Style)
}

func TestLoad_BadDPIEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AISURVIVAL_DOCUMENT_DPI", "high")

	_, err := Load("")
	assert.True(t, errors.Is(err, apperr.ErrConfiguration))
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("AISURVIVAL_GEMINI_BASE_URL", "http://127.0.0.1:8089")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "http://127.0.0.1:8089", cfg.LLM.Gemini.BaseURL)
}

func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	doc := filepath.Join(dir, "guide.pdf")
	writeFile(t, doc, "%PDF-1.4")

	cfg := Default()
	cfg.LLM.Provider = "mock"
	cfg.Document.Path = doc
	cfg.Assets.Dir = dir
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing key", func(c *Config) { c.LLM.Provider = "openai" }, "llm"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "acme" }, "llm"},
		{"no document", func(c *Config) { c.Document.Path = "" }, "document.path"},
		{"document missing", func(c *Config) { c.Document.Path += ".missing" }, "document.path"},
		{"document is dir", func(c *Config) { c.Document.Path = c.Assets.Dir }, "document.path"},
		{"zero dpi", func(c *Config) { c.Document.DPI = 0 }, "document.dpi"},
		{"negative edge", func(c *Config) { c.Document.MaxImageEdge = -1 }, "document.max_image_edge"},
		{"assets missing", func(c *Config) { c.Assets.Dir = filepath.Join(c.Assets.Dir, "nope") }, "assets.dir"},
		{"assets is file", func(c *Config) { c.Assets.Dir = c.Document.Path }, "assets.dir"},
		{"zero tokens", func(c *Config) { c.Report.Narrate.MaxTokens = 0 }, "report"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.edit(&cfg)

			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() = %v, want *Error", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("field = %q, want %q", cerr.Field, tt.field)
			}
			if !errors.Is(err, apperr.ErrConfiguration) {
				t.Errorf("error %v does not match ErrConfiguration", err)
			}
		})
	}
}
