package pagerank

import (
	"fmt"
	"sort"
)

// uniform returns the distribution assigning 1/n to each of n nodes.
func uniform(n int) []float64 {
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = 1.0 / float64(n)
	}
	return dist
}

// resolveDistribution maps a caller-supplied distribution onto node indices
// and normalizes it so that it sums to 1. A nil supplied map yields a copy
// of def. Every node must have a value; keys that are not nodes, negative
// values and a non-positive total are rejected as well.
func resolveDistribution(t *transitions, name string, supplied map[string]float64, def []float64) ([]float64, error) {
	if supplied == nil {
		dist := make([]float64, len(def))
		copy(dist, def)
		return dist, nil
	}

	var (
		dist  = make([]float64, t.numNodes())
		vErr  = &ValidationError{Vector: name}
		total float64
	)
	for i, id := range t.ids {
		v, found := supplied[id]
		if !found {
			vErr.Missing = append(vErr.Missing, id)
			continue
		}
		if v < 0 && vErr.Reason == "" {
			vErr.Reason = fmt.Sprintf("negative value %g for node %q", v, id)
		}
		dist[i] = v
	}
	for id := range supplied {
		if _, known := t.index[id]; !known {
			vErr.Unknown = append(vErr.Unknown, id)
		}
	}
	sort.Strings(vErr.Unknown)

	if len(vErr.Missing) != 0 || len(vErr.Unknown) != 0 || vErr.Reason != "" {
		return nil, vErr
	}

	// Sum in node index order so the normalization is reproducible.
	for _, v := range dist {
		total += v
	}
	if !(total > 0) {
		vErr.Reason = fmt.Sprintf("values must sum to a positive number, got %g", total)
		return nil, vErr
	}
	for i := range dist {
		dist[i] /= total
	}
	return dist, nil
}
