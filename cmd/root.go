package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

var (
	appName = "pagerank"
	appSha  = ""
)

var rootCmd = &cobra.Command{
	Use:   "pagerank",
	Short: "Rank the nodes of a directed graph with PageRank",
	Long: `pagerank scores every node of a directed graph by the probability that a
random surfer ends up there. The surfer follows an outgoing edge with
probability alpha (picking edges in proportion to their weight) and
teleports to a node drawn from the personalization vector otherwise.
Surfers stuck on a node without outgoing edges jump according to the
dangling vector.

Scores are computed by power iteration and always sum to 1.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits with a non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .pagerank.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".pagerank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PAGERANK")
	viper.AutomaticEnv()

	// No config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}

// commandConfig loads the configuration and applies the flag overrides of
// the running command.
func commandConfig(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return Config{}, err
	}
	applyFlagOverrides(cmd, &cfg)
	return cfg, nil
}

// applyFlagOverrides copies every explicitly set flag onto cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("alpha") {
		cfg.Alpha, _ = flags.GetFloat64("alpha")
	}
	if flags.Changed("max-iter") {
		cfg.MaxIter, _ = flags.GetInt("max-iter")
	}
	if flags.Changed("tol") {
		cfg.Tol, _ = flags.GetFloat64("tol")
	}
	if flags.Changed("weight-key") {
		cfg.WeightKey, _ = flags.GetString("weight-key")
	}
	if flags.Changed("undirected") {
		cfg.Undirected, _ = flags.GetBool("undirected")
	}
	if flags.Changed("graph-uri") {
		cfg.GraphURI, _ = flags.GetString("graph-uri")
	}
	if flags.Changed("score-store-uri") {
		cfg.ScoreStoreURI, _ = flags.GetString("score-store-uri")
	}
	if flags.Changed("update-interval") {
		cfg.UpdateInterval, _ = flags.GetDuration("update-interval")
	}
	if flags.Changed("score-writers") {
		cfg.ScoreWriters, _ = flags.GetInt("score-writers")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
}

// newLogger builds the root logger. Logs go to stderr so that command output
// on stdout stays machine readable.
func newLogger(level string) (*logrus.Entry, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, xerrors.Errorf("invalid log level: %w", err)
	}

	rootLogger := logrus.New()
	rootLogger.SetOutput(os.Stderr)
	rootLogger.SetLevel(lvl)

	host, _ := os.Hostname()
	return rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	}), nil
}

// addEngineFlags registers the flags that tune the PageRank engine.
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("alpha", 0, "damping factor (default 0.85)")
	cmd.Flags().Int("max-iter", 0, "maximum number of power iterations (default 100)")
	cmd.Flags().Float64("tol", 0, "convergence tolerance per node (default 1e-6)")
	cmd.Flags().String("weight-key", "", `edge attribute holding the weight; "" treats every edge as 1 (default "weight")`)
}
