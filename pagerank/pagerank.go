/*
   Implements the PageRank algorithm https://en.wikipedia.org/wiki/PageRank
   as a damped power iteration over a directed, weighted graph.
*/
package pagerank

import (
	"math"

	"github.com/Ahmed-Sermani/go-pagerank/graph"
)

/*
   PageRank models a random surfer walking the graph. At every step the
   surfer either follows one of the outgoing edges of the current node, with
   probability alpha and in proportion to the edge weights, or teleports to a
   node drawn from the personalization distribution. A surfer stuck on a
   dangling node (no outgoing weight) jumps according to the dangling
   distribution instead of being lost.

   The score of a node is the stationary probability of finding the surfer
   there. It is approximated by repeatedly applying

       next = alpha * (prev * W + danglingMass * dangling) + (1 - alpha) * personalization

   where W is the right-stochastic transition matrix, until the L1 distance
   between two successive vectors falls below N * tol. Since every term
   preserves probability mass the scores keep summing to 1.
*/

// Scores maps every node of a graph to its PageRank score.
type Scores map[string]float64

// Result holds the outcome of a converged computation.
type Result struct {
	Scores Scores

	// Iterations is the number of power iterations that were performed.
	Iterations int

	// Err is the L1 error of the final iteration.
	Err float64
}

// Compute returns the PageRank score of every node in g. It fails with a
// *ValidationError if a supplied distribution does not match the node set
// and with a *ConvergenceError if cfg.MaxIter iterations are not enough to
// converge.
func Compute(g graph.Model, cfg Config) (Scores, error) {
	res, err := Run(g, cfg)
	if err != nil {
		return nil, err
	}
	return res.Scores, nil
}

// Run is like Compute but also reports the number of iterations performed
// and the final L1 error.
//
// Run is deterministic: nodes are visited in the order returned by
// g.Nodes() and edges in the order returned by g.Neighbors(), so identical
// inputs always produce bit-identical scores.
func Run(g graph.Model, cfg Config) (*Result, error) {
	t, err := normalize(g, cfg.WeightKey)
	if err != nil {
		return nil, err
	}

	n := t.numNodes()
	if n == 0 {
		return &Result{Scores: Scores{}}, nil
	}

	personalization, err := resolveDistribution(t, VectorPersonalization, cfg.Personalization, uniform(n))
	if err != nil {
		return nil, err
	}
	dangling, err := resolveDistribution(t, VectorDangling, cfg.Dangling, personalization)
	if err != nil {
		return nil, err
	}
	prev, err := resolveDistribution(t, VectorStart, cfg.Start, uniform(n))
	if err != nil {
		return nil, err
	}

	var (
		alpha     = cfg.Alpha
		threshold = float64(n) * cfg.Tol
		next      = make([]float64, n)
		lastErr   = math.Inf(1)
	)
	for iter := 1; iter <= cfg.MaxIter; iter++ {
		for i := range next {
			next[i] = 0
		}

		var danglingSum float64
		for _, d := range t.dangling {
			danglingSum += prev[d]
		}
		danglingSum *= alpha

		// Left-multiply the score row vector by the transition matrix.
		// Only prev is read here; next is write-only until the loop ends.
		for i := 0; i < n; i++ {
			share := alpha * prev[i]
			for k := t.offsets[i]; k < t.offsets[i+1]; k++ {
				next[t.targets[k]] += share * t.weights[k]
			}
		}

		for i := 0; i < n; i++ {
			next[i] += danglingSum*dangling[i] + (1.0-alpha)*personalization[i]
		}

		lastErr = 0
		for i := 0; i < n; i++ {
			lastErr += math.Abs(next[i] - prev[i])
		}
		if lastErr < threshold {
			return &Result{
				Scores:     t.scores(next),
				Iterations: iter,
				Err:        lastErr,
			}, nil
		}

		prev, next = next, prev
	}

	return nil, &ConvergenceError{MaxIter: cfg.MaxIter, Err: lastErr}
}

func (t *transitions) scores(vec []float64) Scores {
	res := make(Scores, len(vec))
	for i, v := range vec {
		res[t.ids[i]] = v
	}
	return res
}
