package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/graph"
	memgraph "github.com/Ahmed-Sermani/go-pagerank/graph/store/memory"
	"github.com/Ahmed-Sermani/go-pagerank/pagerank"
	"github.com/Ahmed-Sermani/go-pagerank/scores"
	memscores "github.com/Ahmed-Sermani/go-pagerank/scores/store/memory"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(CmdTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type CmdTestSuite struct {
	logger *logrus.Entry
}

func (s *CmdTestSuite) SetUpTest(c *gc.C) {
	viper.Reset()
	s.logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})

	// Commands are package globals; flags set by an earlier Execute stick.
	resetFlags(rootCmd.PersistentFlags())
	for _, cmd := range rootCmd.Commands() {
		resetFlags(cmd.Flags())
	}
	rootCmd.SetOut(nil)
}

func (s *CmdTestSuite) TestLoadConfigDefaults(c *gc.C) {
	cfg, err := loadConfig()
	c.Assert(err, gc.IsNil)
	c.Assert(cfg.Alpha, gc.Equals, pagerank.DefaultAlpha)
	c.Assert(cfg.MaxIter, gc.Equals, pagerank.DefaultMaxIter)
	c.Assert(cfg.Tol, gc.Equals, pagerank.DefaultTol)
	c.Assert(cfg.WeightKey, gc.Equals, pagerank.DefaultWeightKey)
	c.Assert(cfg.GraphURI, gc.Equals, "in-memory://")
	c.Assert(cfg.ScoreStoreURI, gc.Equals, "in-memory://")
	c.Assert(cfg.UpdateInterval, gc.Equals, time.Hour)
	c.Assert(cfg.ScoreWriters > 0, gc.Equals, true)
}

func (s *CmdTestSuite) TestLoadConfigFromEnv(c *gc.C) {
	env := map[string]string{
		"PAGERANK_ALPHA":           "0.5",
		"PAGERANK_MAX_ITER":        "42",
		"PAGERANK_UPDATE_INTERVAL": "5m",
	}
	for k, v := range env {
		c.Assert(os.Setenv(k, v), gc.IsNil)
	}
	defer func() {
		for k := range env {
			_ = os.Unsetenv(k)
		}
	}()

	viper.SetEnvPrefix("PAGERANK")
	viper.AutomaticEnv()
	cfg, err := loadConfig()
	c.Assert(err, gc.IsNil)
	c.Assert(cfg.Alpha, gc.Equals, 0.5)
	c.Assert(cfg.MaxIter, gc.Equals, 42)
	c.Assert(cfg.UpdateInterval, gc.Equals, 5*time.Minute)
}

func (s *CmdTestSuite) TestFlagsOverrideConfig(c *gc.C) {
	cmd := &cobra.Command{Use: "test"}
	addEngineFlags(cmd)
	c.Assert(cmd.Flags().Set("alpha", "0.7"), gc.IsNil)
	c.Assert(cmd.Flags().Set("weight-key", ""), gc.IsNil)

	cfg, err := loadConfig()
	c.Assert(err, gc.IsNil)
	applyFlagOverrides(cmd, &cfg)
	c.Assert(cfg.Alpha, gc.Equals, 0.7)
	c.Assert(cfg.WeightKey, gc.Equals, "")
	c.Assert(cfg.MaxIter, gc.Equals, pagerank.DefaultMaxIter)

	prCfg := cfg.pageRankConfig()
	c.Assert(prCfg.Alpha, gc.Equals, 0.7)
	c.Assert(prCfg.WeightKey, gc.Equals, "")
}

func (s *CmdTestSuite) TestReadVector(c *gc.C) {
	vec, err := readVector("")
	c.Assert(err, gc.IsNil)
	c.Assert(vec, gc.IsNil)

	path := writeFile(c, "p.json", `{"a": 1, "b": 3}`)
	vec, err = readVector(path)
	c.Assert(err, gc.IsNil)
	c.Assert(vec, gc.DeepEquals, map[string]float64{"a": 1, "b": 3})

	path = writeFile(c, "bad.json", `{"a": "x"}`)
	_, err = readVector(path)
	c.Assert(err, gc.ErrorMatches, "decode .*bad.json: .*")
}

func (s *CmdTestSuite) TestWriteRanking(c *gc.C) {
	scores := pagerank.Scores{"a": 0.2, "b": 0.5, "c": 0.2, "d": 0.1}
	var buf bytes.Buffer
	c.Assert(writeRanking(&buf, []string{"a", "b", "c", "d"}, scores, 0), gc.IsNil)
	c.Assert(buf.String(), gc.Equals, "b\t0.5\na\t0.2\nc\t0.2\nd\t0.1\n")

	buf.Reset()
	c.Assert(writeRanking(&buf, []string{"a", "b", "c", "d"}, scores, 2), gc.IsNil)
	c.Assert(buf.String(), gc.Equals, "b\t0.5\na\t0.2\n")
}

func (s *CmdTestSuite) TestOpenStores(c *gc.C) {
	g, err := openGraphStore("in-memory://", s.logger)
	c.Assert(err, gc.IsNil)
	c.Assert(g, gc.FitsTypeOf, &memgraph.InMemoryGraph{})

	_, err = openGraphStore("bolt://x", s.logger)
	c.Assert(err, gc.ErrorMatches, `unsupported graph URI scheme: "bolt"`)

	_, err = openGraphStore("", s.logger)
	c.Assert(err, gc.ErrorMatches, "graph URI must be specified.*")

	store, err := openScoreStore("in-memory://", s.logger)
	c.Assert(err, gc.IsNil)
	closeIfCloser(store, s.logger)

	_, err = openScoreStore("redis://x", s.logger)
	c.Assert(err, gc.ErrorMatches, `unsupported score store URI scheme: "redis"`)
}

func (s *CmdTestSuite) TestImportGraph(c *gc.C) {
	src := memgraph.NewInMemoryGraph()
	c.Assert(src.UpsertNode("a"), gc.IsNil)
	c.Assert(src.UpsertNode("b"), gc.IsNil)
	c.Assert(src.UpsertNode("lonely"), gc.IsNil)
	c.Assert(src.UpsertEdge(&graph.Edge{Src: "a", Dst: "b", Attrs: map[string]float64{"weight": 2}}), gc.IsNil)

	dst := memgraph.NewInMemoryGraph()
	c.Assert(importGraph(dst, src), gc.IsNil)
	c.Assert(dst.Nodes(), gc.DeepEquals, []string{"a", "b", "lonely"})
	c.Assert(dst.Neighbors("a", "weight"), gc.DeepEquals, []graph.Neighbor{{ID: "b", Weight: 2}})
}

func (s *CmdTestSuite) TestRankCommand(c *gc.C) {
	path := writeFile(c, "cycle.txt", "a b\nb c\nc a\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"rank", "--graph-file", path, "--top", "2", "--log-level", "error"})
	defer rootCmd.SetArgs(nil)
	c.Assert(rootCmd.Execute(), gc.IsNil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	c.Assert(lines, gc.HasLen, 2)
	c.Assert(strings.HasPrefix(lines[0], "a\t0.333"), gc.Equals, true, gc.Commentf("got %q", lines[0]))
	c.Assert(strings.HasPrefix(lines[1], "b\t0.333"), gc.Equals, true, gc.Commentf("got %q", lines[1]))
}

func (s *CmdTestSuite) TestGenerateCommand(c *gc.C) {
	path := filepath.Join(c.MkDir(), "ba.txt")
	rootCmd.SetArgs([]string{"generate", "--ba-nodes", "10", "--ba-edges", "2", "--seed", "7", "-o", path})
	defer rootCmd.SetArgs(nil)
	c.Assert(rootCmd.Execute(), gc.IsNil)

	data, err := os.ReadFile(path)
	c.Assert(err, gc.IsNil)
	// 10 node lines and 2*(10-2) undirected edges, written once per
	// direction.
	c.Assert(strings.Count(string(data), "\n"), gc.Equals, 10+32)
}

func (s *CmdTestSuite) TestGeneratedGraphRanksLikeInlineGraph(c *gc.C) {
	path := filepath.Join(c.MkDir(), "ba.txt")
	c.Assert(execute(c, "generate", "--ba-nodes", "40", "--ba-edges", "3", "--seed", "11", "-o", path), gc.Equals, "")

	inline := execute(c, "rank", "--ba-nodes", "40", "--ba-edges", "3", "--seed", "11", "--log-level", "error")
	fromFile := execute(c, "rank", "--graph-file", path, "--log-level", "error")
	c.Assert(strings.Count(inline, "\n"), gc.Equals, 40)
	c.Assert(fromFile, gc.Equals, inline)
}

func (s *CmdTestSuite) TestScoresCommand(c *gc.C) {
	path := writeFile(c, "star.txt", "a hub\nb hub\nc hub\nhub a\n")

	out := execute(c, "scores", "--graph-file", path, "--top", "2", "--log-level", "error")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	c.Assert(lines, gc.HasLen, 2)
	c.Assert(strings.HasPrefix(lines[0], "hub\t"), gc.Equals, true, gc.Commentf("got %q", lines[0]))
	c.Assert(strings.HasPrefix(lines[1], "a\t"), gc.Equals, true, gc.Commentf("got %q", lines[1]))

	out = execute(c, "scores", "--graph-file", path, "--node", "b", "--log-level", "error")
	c.Assert(strings.HasPrefix(out, "b\t"), gc.Equals, true, gc.Commentf("got %q", out))
	c.Assert(strings.Count(out, "\n"), gc.Equals, 1)
}

func (s *CmdTestSuite) TestWriteStoredScores(c *gc.C) {
	store, err := memscores.NewInMemoryScoreStore()
	c.Assert(err, gc.IsNil)
	defer func() { _ = store.Close() }()
	for id, v := range map[string]float64{"x": 0.5, "y": 0.2, "z": 0.2, "w": 0.1} {
		c.Assert(store.UpdateScore(&scores.Score{NodeID: id, Value: v}), gc.IsNil)
	}

	cases := []struct {
		offset uint64
		top    int
		exp    string
	}{
		{offset: 0, top: 0, exp: "x\t0.5\ny\t0.2\nz\t0.2\nw\t0.1\n"},
		{offset: 0, top: 2, exp: "x\t0.5\ny\t0.2\n"},
		{offset: 2, top: 1, exp: "z\t0.2\n"},
		{offset: 4, top: 0, exp: ""},
	}
	for caseIndex, tc := range cases {
		c.Logf("[case %d] offset %d top %d", caseIndex, tc.offset, tc.top)
		var buf bytes.Buffer
		c.Assert(writeStoredScores(&buf, store, tc.offset, tc.top, "", s.logger), gc.IsNil)
		c.Assert(buf.String(), gc.Equals, tc.exp)
	}

	var buf bytes.Buffer
	c.Assert(writeStoredScores(&buf, store, 0, 0, "y", s.logger), gc.IsNil)
	c.Assert(buf.String(), gc.Equals, "y\t0.2\n")

	err = writeStoredScores(&buf, store, 0, 0, "missing", s.logger)
	c.Assert(xerrors.Is(err, scores.ErrNotFound), gc.Equals, true)
}

// execute runs the root command with args and returns what it printed.
func execute(c *gc.C, args ...string) string {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	c.Assert(rootCmd.Execute(), gc.IsNil)

	resetFlags(rootCmd.PersistentFlags())
	for _, cmd := range rootCmd.Commands() {
		resetFlags(cmd.Flags())
	}
	return out.String()
}

func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func writeFile(c *gc.C, name, content string) string {
	path := filepath.Join(c.MkDir(), name)
	c.Assert(os.WriteFile(path, []byte(content), 0o644), gc.IsNil)
	return path
}
