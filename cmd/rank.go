package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Ahmed-Sermani/go-pagerank/graph/edgelist"
	"github.com/Ahmed-Sermani/go-pagerank/graph/generator"
	"github.com/Ahmed-Sermani/go-pagerank/graph/store/memory"
	"github.com/Ahmed-Sermani/go-pagerank/pagerank"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Compute PageRank scores for a graph",
	Long: `Compute PageRank scores for a graph read from an edge list file or
generated with the Barabási–Albert preferential attachment model.

Edge list files hold one "src dst [weight]" entry per line. A line with a
single token declares an isolated node and lines starting with # are
ignored.

The --personalization, --start and --dangling flags take JSON files mapping
every node to a non-negative weight, e.g. {"a": 1, "b": 3}. Weights are
normalized to sum to 1. A file that leaves out a node is rejected.

Scores are printed as "node<TAB>score" lines, highest score first.`,
	Args: cobra.NoArgs,
	RunE: runRank,
}

func init() {
	addGraphSourceFlags(rankCmd)
	addEngineFlags(rankCmd)
	rankCmd.Flags().String("personalization", "", "JSON file with the teleport distribution")
	rankCmd.Flags().String("start", "", "JSON file with the initial score vector")
	rankCmd.Flags().String("dangling", "", "JSON file with the distribution used for nodes without out-edges")
	rankCmd.Flags().Int("top", 0, "print only the N highest ranked nodes (0 prints all)")

	rootCmd.AddCommand(rankCmd)
}

// addGraphSourceFlags registers the flags used to load or generate a graph.
func addGraphSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("graph-file", "", "edge list file to read the graph from")
	cmd.Flags().Bool("undirected", false, "treat every edge of --graph-file as undirected")
	cmd.Flags().Int("ba-nodes", 0, "generate a Barabási–Albert graph with this many nodes")
	cmd.Flags().Int("ba-edges", 1, "edges attached from each new node of a generated graph")
	cmd.Flags().Int64("seed", 0, "seed for the graph generator")
}

func runRank(cmd *cobra.Command, _ []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	g, err := loadGraph(cmd, cfg)
	if err != nil {
		return err
	}

	prCfg := cfg.pageRankConfig()
	vectors := []struct {
		flag string
		dst  *map[string]float64
	}{
		{"personalization", &prCfg.Personalization},
		{"start", &prCfg.Start},
		{"dangling", &prCfg.Dangling},
	}
	for _, v := range vectors {
		path, _ := cmd.Flags().GetString(v.flag)
		if *v.dst, err = readVector(path); err != nil {
			return xerrors.Errorf("--%s: %w", v.flag, err)
		}
	}

	res, err := pagerank.Run(g, prCfg)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"nodes":      g.NumNodes(),
		"edges":      g.NumEdges(),
		"iterations": res.Iterations,
		"l1_err":     res.Err,
	}).Debug("power iteration converged")

	top, _ := cmd.Flags().GetInt("top")
	return writeRanking(cmd.OutOrStdout(), g.Nodes(), res.Scores, top)
}

// loadGraph reads --graph-file or, failing that, generates a random graph.
func loadGraph(cmd *cobra.Command, cfg Config) (*memory.InMemoryGraph, error) {
	if path, _ := cmd.Flags().GetString("graph-file"); path != "" {
		return readGraphFile(path, cfg)
	}

	n, _ := cmd.Flags().GetInt("ba-nodes")
	if n == 0 {
		return nil, xerrors.New("either --graph-file or --ba-nodes must be specified")
	}
	m, _ := cmd.Flags().GetInt("ba-edges")
	seed, _ := cmd.Flags().GetInt64("seed")
	return generator.BarabasiAlbert(n, m, seed)
}

func readGraphFile(path string, cfg Config) (*memory.InMemoryGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	g, err := edgelist.Read(f, edgelist.Options{Undirected: cfg.Undirected, WeightKey: cfg.WeightKey})
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// readVector decodes a JSON object of node weights. An empty path yields a
// nil map so the engine falls back to its default.
func readVector(path string) (map[string]float64, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var vec map[string]float64
	if err = json.NewDecoder(f).Decode(&vec); err != nil {
		return nil, xerrors.Errorf("decode %s: %w", path, err)
	}
	if vec == nil {
		vec = make(map[string]float64)
	}
	return vec, nil
}

// writeRanking prints "node<TAB>score" lines by descending score. Equal
// scores keep graph order.
func writeRanking(w io.Writer, nodes []string, scores pagerank.Scores, top int) error {
	ranked := append([]string(nil), nodes...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	if top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}
	for _, id := range ranked {
		if _, err := fmt.Fprintf(w, "%s\t%g\n", id, scores[id]); err != nil {
			return err
		}
	}
	return nil
}
