package cmd

import (
	"runtime"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/pagerank"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

// Config holds the settings shared by all subcommands. Values are populated
// from .pagerank.yaml, PAGERANK_* env vars and CLI flags, in increasing order
// of precedence.
type Config struct {
	Alpha      float64 `mapstructure:"alpha"`
	MaxIter    int     `mapstructure:"max_iter"`
	Tol        float64 `mapstructure:"tol"`
	WeightKey  string  `mapstructure:"weight_key"`
	Undirected bool    `mapstructure:"undirected"`

	GraphURI       string        `mapstructure:"graph_uri"`
	ScoreStoreURI  string        `mapstructure:"score_store_uri"`
	UpdateInterval time.Duration `mapstructure:"update_interval"`
	ScoreWriters   int           `mapstructure:"score_writers"`

	LogLevel string `mapstructure:"log_level"`
}

// loadConfig reads configuration from viper, applying built-in defaults for
// any values not set by the config file or the environment.
func loadConfig() (Config, error) {
	viper.SetDefault("alpha", pagerank.DefaultAlpha)
	viper.SetDefault("max_iter", pagerank.DefaultMaxIter)
	viper.SetDefault("tol", pagerank.DefaultTol)
	viper.SetDefault("weight_key", pagerank.DefaultWeightKey)
	viper.SetDefault("undirected", false)
	viper.SetDefault("graph_uri", "in-memory://")
	viper.SetDefault("score_store_uri", "in-memory://")
	viper.SetDefault("update_interval", time.Hour)
	viper.SetDefault("score_writers", runtime.NumCPU())
	viper.SetDefault("log_level", "info")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, xerrors.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// pageRankConfig maps the engine-related settings onto a pagerank.Config.
func (cfg Config) pageRankConfig() pagerank.Config {
	prCfg := pagerank.DefaultConfig()
	prCfg.Alpha = cfg.Alpha
	prCfg.MaxIter = cfg.MaxIter
	prCfg.Tol = cfg.Tol
	prCfg.WeightKey = cfg.WeightKey
	return prCfg
}
