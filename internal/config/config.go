package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the similarity provider.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// SegmenterConfig selects and configures the segmentation provider.
type SegmenterConfig struct {
	Type string `yaml:"type"`
	// W is the TextTiling pseudo-sentence size in tokens.
	W int `yaml:"w"`
	// K is the TextTiling block size in pseudo-sentences.
	K                    int `yaml:"k"`
	ParagraphsPerSegment int `yaml:"paragraphs_per_segment"`
}

// ReducerConfig holds the selection and context-expansion knobs shared by
// the two reduction strategies.
type ReducerConfig struct {
	TopK          int `yaml:"top_k"`
	ContextBefore int `yaml:"context_before"`
	ContextAfter  int `yaml:"context_after"`
	MaxSegments   int `yaml:"max_segments"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Reducer   ReducerConfig   `yaml:"reducer"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/ctxreduce/config.yaml.
// If neither exists, it writes defaults to ~/.config/ctxreduce/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ctxreduce", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Embedder:  EmbedderConfig{Type: "tfidf"},
		Segmenter: SegmenterConfig{Type: "texttiling", W: 20, K: 10, ParagraphsPerSegment: 4},
		Reducer:   ReducerConfig{TopK: 5, ContextBefore: 2, ContextAfter: 2, MaxSegments: 3},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Segmenter.W == 0 {
		cfg.Segmenter.W = 20
	}
	if cfg.Segmenter.K == 0 {
		cfg.Segmenter.K = 10
	}
	if cfg.Segmenter.ParagraphsPerSegment == 0 {
		cfg.Segmenter.ParagraphsPerSegment = 4
	}
	if cfg.Reducer.TopK == 0 {
		cfg.Reducer.TopK = 5
	}
	if cfg.Reducer.MaxSegments == 0 {
		cfg.Reducer.MaxSegments = 3
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
}
