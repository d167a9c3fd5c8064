package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/mgavril/shopscope/internal/search"
)

//go:embed config.toml.sample
var configTemplate string

// Config is the application configuration, loaded from a TOML file.
type Config struct {
	// Catalog is the product catalog JSON path. Empty selects the embedded
	// demo catalog.
	Catalog string `toml:"catalog"`

	// HistoryDB is the SQLite file holding recent searches.
	HistoryDB string `toml:"history_db"`

	// Locale drives locale-aware name ordering (BCP 47 tag).
	Locale string `toml:"locale"`

	Debounce        Duration `toml:"debounce"`
	ResultLimit     int      `toml:"result_limit"`
	SuggestionLimit int      `toml:"suggestion_limit"`
	HistoryLimit    int      `toml:"history_limit"`

	Voice VoiceConfig `toml:"voice"`

	// Vocabulary is the curated suggestion list shown as "popular
	// searches" and matched against typed prefixes.
	Vocabulary []VocabEntry `toml:"vocabulary"`
}

// VoiceConfig wires an external speech-to-text command. An empty command
// leaves voice input unsupported.
type VoiceConfig struct {
	Language string   `toml:"language"`
	Command  []string `toml:"command"`
}

// VocabEntry is one curated suggestion.
type VocabEntry struct {
	Text string `toml:"text"`
	Type string `toml:"type"`
	Icon string `toml:"icon"`
}

// Duration wraps time.Duration for TOML ("300ms", "1s").
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

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Locale:          "en",
		Debounce:        Duration{300 * time.Millisecond},
		ResultLimit:     50,
		SuggestionLimit: 5,
		HistoryLimit:    5,
		Voice:           VoiceConfig{Language: "en-US"},
		Vocabulary: []VocabEntry{
			{Text: "lipstick", Type: "product", Icon: "sparkle"},
			{Text: "serum", Type: "product", Icon: "sparkle"},
			{Text: "night cream", Type: "product", Icon: "sparkle"},
			{Text: "Make Up", Type: "category", Icon: "tag"},
			{Text: "Skin care", Type: "category", Icon: "tag"},
			{Text: "Fragrance", Type: "category", Icon: "tag"},
		},
	}
}

// Load reads the config at path, falling back to defaults when the file
// does not exist. Zero-valued fields are backfilled with defaults so a
// partial file stays valid.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	def := Default()
	if cfg.Locale == "" {
		cfg.Locale = def.Locale
	}
	if cfg.Debounce.Duration == 0 {
		cfg.Debounce = def.Debounce
	}
	if cfg.ResultLimit == 0 {
		cfg.ResultLimit = def.ResultLimit
	}
	if cfg.SuggestionLimit == 0 {
		cfg.SuggestionLimit = def.SuggestionLimit
	}
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = def.HistoryLimit
	}
	if cfg.Voice.Language == "" {
		cfg.Voice.Language = def.Voice.Language
	}
	if cfg.Vocabulary == nil {
		cfg.Vocabulary = def.Vocabulary
	}
	return &cfg, nil
}

// SaveTemplate writes the annotated sample config to path.
func SaveTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config directory: %w", err)
	}
	return filepath.Join(dir, "shopscope", "config.toml"), nil
}

// DefaultHistoryPath returns the per-user history database location, used
// when history_db is not configured.
func DefaultHistoryPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config directory: %w", err)
	}
	return filepath.Join(dir, "shopscope", "history.db"), nil
}

// SuggestionVocabulary converts the configured vocabulary into suggestion
// items.
func (c *Config) SuggestionVocabulary() []search.Suggestion {
	vocab := make([]search.Suggestion, 0, len(c.Vocabulary))
	for _, v := range c.Vocabulary {
		t := search.SuggestionType(v.Type)
		switch t {
		case search.SuggestionProduct, search.SuggestionCategory:
		default:
			t = search.SuggestionProduct
		}
		vocab = append(vocab, search.Suggestion{Text: v.Text, Type: t, Icon: v.Icon})
	}
	return vocab
}
