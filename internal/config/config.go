// Package config handles cordx configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/cordx/internal/wordcloud"
)

// Config holds every setting cordx reads from config.yml.
type Config struct {
	DataPath       string            `yaml:"data_path,omitempty" json:"data_path"`
	DBPath         string            `yaml:"db_path,omitempty" json:"db_path"`
	YearMin        int               `yaml:"year_min,omitempty" json:"year_min"`
	YearMax        int               `yaml:"year_max,omitempty" json:"year_max"`
	TopN           int               `yaml:"top_n,omitempty" json:"top_n"`
	PreviewRows    int               `yaml:"preview_rows,omitempty" json:"preview_rows"`
	IncludeUnknown bool              `yaml:"include_unknown,omitempty" json:"include_unknown"`
	ListenAddr     string            `yaml:"listen_addr,omitempty" json:"listen_addr"`
	RateLimit      float64           `yaml:"rate_limit,omitempty" json:"rate_limit"` // Requests per second for serve
	RateBurst      int               `yaml:"rate_burst,omitempty" json:"rate_burst"`
	WordCloud      wordcloud.Options `yaml:"wordcloud,omitempty" json:"wordcloud"`
}

// Defaults: metadata_sample.csv, a 2020-2021 range, top 10 lists and an
// 800x400 white word cloud.
const (
	DefaultDataPath    = "data/metadata_sample.csv"
	DefaultYearMin     = 2020
	DefaultYearMax     = 2021
	DefaultTopN        = 10
	DefaultPreviewRows = 5
	DefaultListenAddr  = "127.0.0.1:8501"
	DefaultRateLimit   = 20
	DefaultRateBurst   = 40

	// DataPathEnv overrides data_path when set.
	DataPathEnv = "CORDX_DATA"

	DBFile = "cordx.db"
)

// Default returns a Config with every field set to its default.
func Default() *Config {
	return &Config{
		DataPath:    DefaultDataPath,
		YearMin:     DefaultYearMin,
		YearMax:     DefaultYearMax,
		TopN:        DefaultTopN,
		PreviewRows: DefaultPreviewRows,
		ListenAddr:  DefaultListenAddr,
		RateLimit:   DefaultRateLimit,
		RateBurst:   DefaultRateBurst,
		WordCloud:   wordcloud.DefaultOptions(),
	}
}

// applyDefaults fills unset fields from Default. A zero top_n or
// preview_rows is unset; hiding the lists is a per-run choice (--top 0).
func (c *Config) applyDefaults() {
	d := Default()
	if c.DataPath == "" {
		c.DataPath = d.DataPath
	}
	if c.YearMin == 0 && c.YearMax == 0 {
		c.YearMin, c.YearMax = d.YearMin, d.YearMax
	}
	if c.TopN == 0 {
		c.TopN = d.TopN
	}
	if c.PreviewRows == 0 {
		c.PreviewRows = d.PreviewRows
	}
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.RateLimit == 0 {
		c.RateLimit = d.RateLimit
	}
	if c.RateBurst == 0 {
		c.RateBurst = d.RateBurst
	}
	w := &c.WordCloud
	if w.Width == 0 {
		w.Width = d.WordCloud.Width
	}
	if w.Height == 0 {
		w.Height = d.WordCloud.Height
	}
	if w.Background == "" {
		w.Background = d.WordCloud.Background
	}
	if w.Font == "" {
		w.Font = d.WordCloud.Font
	}
	if w.MaxWords == 0 {
		w.MaxWords = d.WordCloud.MaxWords
	}
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if c.TopN < 0 {
		return fmt.Errorf("invalid top_n: %d (must be >= 1; 0 or unset means %d)", c.TopN, DefaultTopN)
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("invalid preview_rows: %d (must be >= 1; 0 or unset means %d)", c.PreviewRows, DefaultPreviewRows)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate_limit: %v (must be >= 0)", c.RateLimit)
	}
	if c.WordCloud.Width < 0 || c.WordCloud.Height < 0 {
		return fmt.Errorf("invalid wordcloud size: %dx%d", c.WordCloud.Width, c.WordCloud.Height)
	}
	return nil
}

// ResolvedDBPath returns db_path, or cordx.db next to the data file.
func (c *Config) ResolvedDBPath() string {
	if c.DBPath != "" {
		return ExpandPath(c.DBPath)
	}
	return filepath.Join(filepath.Dir(ExpandPath(c.DataPath)), DBFile)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
