package cmd

import (
	"fmt"
	"io"

	"github.com/Ahmed-Sermani/go-pagerank/graph/store/memory"
	"github.com/Ahmed-Sermani/go-pagerank/scores"
	"github.com/Ahmed-Sermani/go-pagerank/service/ranker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the scores kept in a score store",
	Long: `Print the scores persisted in the store behind --score-store-uri as
"node<TAB>score" lines, highest score first. Equal scores are ordered by
node ID.

With --graph-file or --ba-nodes the graph is ranked once and its scores
are written to the store before they are printed. This is the only way to
populate an in-memory:// store, which lives as long as the command.

--node prints the score of a single node instead of the ranking.`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	addGraphSourceFlags(scoresCmd)
	addEngineFlags(scoresCmd)
	scoresCmd.Flags().String("score-store-uri", "", `score store URI (default "in-memory://")`)
	scoresCmd.Flags().Int("score-writers", 0, "number of workers writing scores (defaults to number of CPUs)")
	scoresCmd.Flags().Int("top", 10, "number of scores to print (0 prints all)")
	scoresCmd.Flags().Uint64("offset", 0, "number of highest ranked scores to skip")
	scoresCmd.Flags().String("node", "", "print only the score of this node")

	rootCmd.AddCommand(scoresCmd)
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	store, err := openScoreStore(cfg.ScoreStoreURI, logger)
	if err != nil {
		return err
	}
	defer closeIfCloser(store, logger)

	graphFile, _ := cmd.Flags().GetString("graph-file")
	baNodes, _ := cmd.Flags().GetInt("ba-nodes")
	if graphFile != "" || baNodes != 0 {
		g, err := loadGraph(cmd, cfg)
		if err != nil {
			return err
		}
		if err = rankInto(cmd, store, g, cfg, logger); err != nil {
			return err
		}
	}

	var (
		top, _    = cmd.Flags().GetInt("top")
		offset, _ = cmd.Flags().GetUint64("offset")
		nodeID, _ = cmd.Flags().GetString("node")
	)
	return writeStoredScores(cmd.OutOrStdout(), store, offset, top, nodeID, logger)
}

// rankInto runs a single ranking pass over g and persists the scores.
func rankInto(cmd *cobra.Command, store scores.Store, g *memory.InMemoryGraph, cfg Config, logger *logrus.Entry) error {
	prCfg := cfg.pageRankConfig()
	svc, err := ranker.NewService(ranker.Config{
		GraphAPI:       g,
		ScoreAPI:       store,
		UpdateInterval: cfg.UpdateInterval,
		ScoreWriters:   cfg.ScoreWriters,
		PageRank:       &prCfg,
		Logger:         logger.WithField("service", "ranker"),
	})
	if err != nil {
		return err
	}
	return svc.UpdateScores(cmd.Context())
}

// writeStoredScores prints up to top scores after skipping the offset
// highest ranked ones. A non-empty nodeID prints that node's score only.
func writeStoredScores(w io.Writer, store scores.Store, offset uint64, top int, nodeID string, logger *logrus.Entry) error {
	if nodeID != "" {
		score, err := store.FindByID(nodeID)
		if err != nil {
			return xerrors.Errorf("node %q: %w", nodeID, err)
		}
		_, err = fmt.Fprintf(w, "%s\t%g\n", score.NodeID, score.Value)
		return err
	}

	it, err := store.Top(offset)
	if err != nil {
		return xerrors.Errorf("list scores: %w", err)
	}
	defer func() { _ = it.Close() }()
	logger.WithField("total", it.TotalCount()).Debug("listing scores")

	for printed := 0; (top <= 0 || printed < top) && it.Next(); printed++ {
		score := it.Score()
		if _, err = fmt.Fprintf(w, "%s\t%g\n", score.NodeID, score.Value); err != nil {
			return err
		}
	}
	if err = it.Error(); err != nil {
		return xerrors.Errorf("list scores: %w", err)
	}
	return nil
}
