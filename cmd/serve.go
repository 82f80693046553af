package cmd

import (
	"context"
	"io"
	"net/url"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Ahmed-Sermani/go-pagerank/graph"
	"github.com/Ahmed-Sermani/go-pagerank/graph/store/cdb"
	memgraph "github.com/Ahmed-Sermani/go-pagerank/graph/store/memory"
	"github.com/Ahmed-Sermani/go-pagerank/scores"
	"github.com/Ahmed-Sermani/go-pagerank/scores/store/es"
	memscores "github.com/Ahmed-Sermani/go-pagerank/scores/store/memory"
	"github.com/Ahmed-Sermani/go-pagerank/service"
	"github.com/Ahmed-Sermani/go-pagerank/service/ranker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Periodically rank a stored graph and persist the scores",
	Long: `Run the ranker service. Every --update-interval the graph behind
--graph-uri is snapshotted, ranked and the scores are written to the store
behind --score-store-uri.

Supported graph URIs:   in-memory://, postgresql://user@host:26257/graph?sslmode=disable
Supported score URIs:   in-memory://, es://node1:9200,...,nodeN:9200

--graph-file loads an edge list into the graph store before the service
starts.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addEngineFlags(serveCmd)
	serveCmd.Flags().String("graph-uri", "", `graph store URI (default "in-memory://")`)
	serveCmd.Flags().String("score-store-uri", "", `score store URI (default "in-memory://")`)
	serveCmd.Flags().Duration("update-interval", 0, "time between ranking passes (default 1h)")
	serveCmd.Flags().Int("score-writers", 0, "number of workers writing scores (defaults to number of CPUs)")
	serveCmd.Flags().String("graph-file", "", "edge list file to load into the graph store on startup")
	serveCmd.Flags().Bool("undirected", false, "treat every edge of --graph-file as undirected")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	graphStore, err := openGraphStore(cfg.GraphURI, logger)
	if err != nil {
		return err
	}
	defer closeIfCloser(graphStore, logger)

	if path, _ := cmd.Flags().GetString("graph-file"); path != "" {
		src, err := readGraphFile(path, cfg)
		if err != nil {
			return err
		}
		if err = importGraph(graphStore, src); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"file":  path,
			"nodes": src.NumNodes(),
			"edges": src.NumEdges(),
		}).Info("imported graph")
	}

	scoreStore, err := openScoreStore(cfg.ScoreStoreURI, logger)
	if err != nil {
		return err
	}
	defer closeIfCloser(scoreStore, logger)

	prCfg := cfg.pageRankConfig()
	svc, err := ranker.NewService(ranker.Config{
		GraphAPI:       graphStore,
		ScoreAPI:       scoreStore,
		UpdateInterval: cfg.UpdateInterval,
		ScoreWriters:   cfg.ScoreWriters,
		PageRank:       &prCfg,
		Logger:         logger.WithField("service", "ranker"),
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	defer cancel()

	if err = (service.ServiceGroup{svc}).Run(ctx); err != nil {
		logger.WithError(err).Error("shutting down due to error")
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

func openGraphStore(graphURI string, logger *logrus.Entry) (graph.Store, error) {
	if graphURI == "" {
		return nil, xerrors.Errorf("graph URI must be specified with --graph-uri")
	}

	uri, err := url.Parse(graphURI)
	if err != nil {
		return nil, xerrors.Errorf("could not parse graph URI: %w", err)
	}

	switch uri.Scheme {
	case "in-memory":
		logger.Info("using in-memory graph")
		return memgraph.NewInMemoryGraph(), nil
	case "postgresql":
		logger.Info("using CDB graph")
		return cdb.NewCockroachDBGraph(graphURI)
	default:
		return nil, xerrors.Errorf("unsupported graph URI scheme: %q", uri.Scheme)
	}
}

func openScoreStore(scoreStoreURI string, logger *logrus.Entry) (scores.Store, error) {
	if scoreStoreURI == "" {
		return nil, xerrors.Errorf("score store URI must be specified with --score-store-uri")
	}

	uri, err := url.Parse(scoreStoreURI)
	if err != nil {
		return nil, xerrors.Errorf("could not parse score store URI: %w", err)
	}

	switch uri.Scheme {
	case "in-memory":
		logger.Info("using in-memory score store")
		return memscores.NewInMemoryScoreStore()
	case "es":
		nodes := strings.Split(uri.Host, ",")
		for i := 0; i < len(nodes); i++ {
			nodes[i] = "http://" + nodes[i]
		}
		logger.Info("using ES score store")
		return es.NewESScoreStore(nodes, false)
	default:
		return nil, xerrors.Errorf("unsupported score store URI scheme: %q", uri.Scheme)
	}
}

// importGraph copies every node and edge of src into dst.
func importGraph(dst graph.Store, src memgraph.Source) error {
	nodeIt, err := src.AllNodes()
	if err != nil {
		return xerrors.Errorf("import graph: %w", err)
	}
	defer func() { _ = nodeIt.Close() }()
	for nodeIt.Next() {
		if err = dst.UpsertNode(nodeIt.Node()); err != nil {
			return xerrors.Errorf("import graph: %w", err)
		}
	}
	if err = nodeIt.Error(); err != nil {
		return xerrors.Errorf("import graph: %w", err)
	}

	edgeIt, err := src.AllEdges()
	if err != nil {
		return xerrors.Errorf("import graph: %w", err)
	}
	defer func() { _ = edgeIt.Close() }()
	for edgeIt.Next() {
		if err = dst.UpsertEdge(edgeIt.Edge()); err != nil {
			return xerrors.Errorf("import graph: %w", err)
		}
	}
	if err = edgeIt.Error(); err != nil {
		return xerrors.Errorf("import graph: %w", err)
	}
	return nil
}

func closeIfCloser(v interface{}, logger *logrus.Entry) {
	if c, ok := v.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.WithError(err).Warn("close failed")
		}
	}
}
