package pagerank

// Default values used by DefaultConfig.
const (
	DefaultAlpha     = 0.85
	DefaultMaxIter   = 100
	DefaultTol       = 1.0e-6
	DefaultWeightKey = "weight"
)

// Config encapsulates the parameters of a single PageRank computation.
//
// A nil distribution map means "not supplied" and selects the documented
// default; a non-nil map must provide a value for every node in the graph.
type Config struct {
	// Alpha is the damping factor: the probability that a random surfer
	// follows one of the outgoing edges of the current node instead of
	// teleporting according to the personalization vector. Values outside
	// [0, 1) are not rejected.
	Alpha float64

	// Personalization is the teleportation distribution. Defaults to the
	// uniform distribution.
	Personalization map[string]float64

	// MaxIter bounds the number of power iterations.
	MaxIter int

	// Tol is the per-node error tolerance; the iteration converges once the
	// L1 distance between successive score vectors drops below N*Tol.
	Tol float64

	// Start is the initial score vector. Defaults to the uniform
	// distribution.
	Start map[string]float64

	// WeightKey selects the edge attribute used as the edge weight. Edges
	// without that attribute, or all edges if WeightKey is empty, weigh 1.
	WeightKey string

	// Dangling distributes the score of nodes without outgoing edges.
	// Defaults to the resolved personalization vector.
	Dangling map[string]float64
}

// DefaultConfig returns a Config populated with the conventional PageRank
// parameters and no supplied distributions.
func DefaultConfig() Config {
	return Config{
		Alpha:     DefaultAlpha,
		MaxIter:   DefaultMaxIter,
		Tol:       DefaultTol,
		WeightKey: DefaultWeightKey,
	}
}
