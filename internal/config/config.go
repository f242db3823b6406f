// Package config loads the per-repo .cortexast.json configuration and the
// optional user-level YAML override layer, the way the teacher layers
// .amanmcp.yaml over a user config before applying environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the complete engine configuration, read from
// <repo_root>/.cortexast.json per call.
type Config struct {
	OutputDir    string             `json:"output_dir" yaml:"output_dir"`
	SkeletonMode string             `json:"skeleton_mode" yaml:"skeleton_mode"`
	Scan         ScanConfig         `json:"scan" yaml:"scan"`
	VectorSearch VectorSearchConfig `json:"vector_search" yaml:"vector_search"`
	TokenEstim   TokenEstimConfig   `json:"token_estimator" yaml:"token_estimator"`
}

// ScanConfig configures the Scanner's exclusion behavior.
type ScanConfig struct {
	ExcludeDirNames []string `json:"exclude_dir_names" yaml:"exclude_dir_names"`
	IncludeSubmodules bool   `json:"include_submodules" yaml:"include_submodules"`
}

// VectorSearchConfig configures the Vector Store.
type VectorSearchConfig struct {
	Model             string `json:"model" yaml:"model"`
	ChunkLines        int    `json:"chunk_lines" yaml:"chunk_lines"`
	DefaultQueryLimit int    `json:"default_query_limit" yaml:"default_query_limit"`
}

// TokenEstimConfig configures the coarse chars/token proxy.
type TokenEstimConfig struct {
	CharsPerToken int   `json:"chars_per_token" yaml:"chars_per_token"`
	MaxFileBytes  int64 `json:"max_file_bytes" yaml:"max_file_bytes"`
}

// defaultExcludeDirNames are always pruned regardless of .gitignore, the
// high-noise directories any repo tends to accumulate.
var defaultExcludeDirNames = []string{
	"node_modules", ".git", "vendor", "__pycache__", "dist", "build",
	".venv", "venv", "target", ".cortexast",
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		OutputDir:    ".cortexast",
		SkeletonMode: "auto",
		Scan: ScanConfig{
			ExcludeDirNames:   append([]string(nil), defaultExcludeDirNames...),
			IncludeSubmodules: false,
		},
		VectorSearch: VectorSearchConfig{
			Model:             "default",
			ChunkLines:        40,
			DefaultQueryLimit: 10,
		},
		TokenEstim: TokenEstimConfig{
			CharsPerToken: 4,
			MaxFileBytes:  1024 * 1024,
		},
	}
}

// Load reads the per-repo config, layered over the user-level override and
// the builtin defaults: defaults -> user config -> project config.
func Load(repoRoot string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, fmt.Errorf("load user config: %w", err)
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := cfg.loadFromFile(repoRoot); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFromFile merges <repoRoot>/.cortexast.json into cfg, if present.
func (c *Config) loadFromFile(repoRoot string) error {
	path := filepath.Join(repoRoot, ".cortexast.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var parsed Config
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	c.mergeWith(&parsed)
	return nil
}

// UserConfigPath returns the optional ~/.config/cortexast/config.yaml
// personal-defaults override path.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cortexast", "config.yaml")
}

func loadUserConfig() (*Config, error) {
	path := UserConfigPath()
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse user config %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeWith overlays non-zero fields of other onto c.
func (c *Config) mergeWith(other *Config) {
	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}
	if other.SkeletonMode != "" {
		c.SkeletonMode = other.SkeletonMode
	}
	if len(other.Scan.ExcludeDirNames) > 0 {
		c.Scan.ExcludeDirNames = other.Scan.ExcludeDirNames
	}
	if other.Scan.IncludeSubmodules {
		c.Scan.IncludeSubmodules = true
	}
	if other.VectorSearch.Model != "" {
		c.VectorSearch.Model = other.VectorSearch.Model
	}
	if other.VectorSearch.ChunkLines != 0 {
		c.VectorSearch.ChunkLines = other.VectorSearch.ChunkLines
	}
	if other.VectorSearch.DefaultQueryLimit != 0 {
		c.VectorSearch.DefaultQueryLimit = other.VectorSearch.DefaultQueryLimit
	}
	if other.TokenEstim.CharsPerToken != 0 {
		c.TokenEstim.CharsPerToken = other.TokenEstim.CharsPerToken
	}
	if other.TokenEstim.MaxFileBytes != 0 {
		c.TokenEstim.MaxFileBytes = other.TokenEstim.MaxFileBytes
	}
}

// Validate rejects configurations the engine cannot safely run with.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.VectorSearch.ChunkLines <= 0 {
		return fmt.Errorf("vector_search.chunk_lines must be positive")
	}
	if c.TokenEstim.CharsPerToken <= 0 {
		return fmt.Errorf("token_estimator.chars_per_token must be positive")
	}
	return nil
}
