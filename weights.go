package perceptron

import (
	"math/rand"
	"strings"

	. "github.com/stevegt/goadapt"
	"gonum.org/v1/gonum/floats"
)

// Weights holds one value per connection of a network: the weights
// themselves, or the derivatives of the error with regard to them.
type Weights struct {
	topo   *Topology
	values []float64
}

// NewWeights returns a zeroed weight store shaped by topo.
func NewWeights(topo *Topology) (w *Weights) {
	w = &Weights{
		topo:   topo,
		values: make([]float64, topo.NumWeights()),
	}
	return
}

// Topology returns the index model of the store.
func (w *Weights) Topology() *Topology {
	return w.topo
}

// Len returns the number of connections.
func (w *Weights) Len() int {
	return len(w.values)
}

// Get returns weight (i, j, g).  It panics if there is no such
// connection.
func (w *Weights) Get(i, j, g int) float64 {
	Assert(w.topo.hasWeight(i, j, g), "weight (%d, %d, %d) out of range", i, j, g)
	return w.values[w.topo.weightPos(i, j, g)]
}

// Set sets weight (i, j, g).  It panics if there is no such
// connection.
func (w *Weights) Set(i, j, g int, value float64) {
	Assert(w.topo.hasWeight(i, j, g), "weight (%d, %d, %d) out of range", i, j, g)
	w.values[w.topo.weightPos(i, j, g)] = value
}

// RandomInitialize draws every weight independently from [0, 1).
func (w *Weights) RandomInitialize(rng *rand.Rand) {
	for k := range w.values {
		w.values[k] = rng.Float64()
	}
}

// At returns the k-th weight in canonical order along with its index.
func (w *Weights) At(k int) (value float64, idx WeightIndex) {
	Assert(k >= 0 && k < len(w.values), "weight position %d out of range", k)
	return w.values[k], w.topo.weightIndex[k]
}

// Each calls fn for every connection in increasing (i, j, g) order.
func (w *Weights) Each(fn func(value float64, i, j, g int)) {
	for k, v := range w.values {
		idx := w.topo.weightIndex[k]
		fn(v, idx.I, idx.J, idx.G)
	}
}

// EachReverse calls fn for every connection in decreasing (i, j, g)
// order, the exact reverse of Each.
func (w *Weights) EachReverse(fn func(value float64, i, j, g int)) {
	for k := len(w.values) - 1; k >= 0; k-- {
		idx := w.topo.weightIndex[k]
		fn(w.values[k], idx.I, idx.J, idx.G)
	}
}

// Clone returns a deep copy sharing only the immutable topology.
func (w *Weights) Clone() (c *Weights) {
	c = &Weights{
		topo:   w.topo,
		values: make([]float64, len(w.values)),
	}
	copy(c.values, w.values)
	return
}

// Values returns a copy of all weights in canonical order.
func (w *Weights) Values() (values []float64) {
	values = make([]float64, len(w.values))
	copy(values, w.values)
	return
}

// SetValues replaces all weights with values given in canonical order.
func (w *Weights) SetValues(values []float64) {
	Assert(len(values) == len(w.values), "expected %d weights, got %d", len(w.values), len(values))
	copy(w.values, values)
}

// AddScaled adds alpha*d to every weight.  d must share the topology
// of w.
func (w *Weights) AddScaled(alpha float64, d *Weights) {
	Assert(len(d.values) == len(w.values), "expected %d weights, got %d", len(w.values), len(d.values))
	floats.AddScaled(w.values, alpha, d.values)
}

// String renders the store one destination unit per line, grouped by
// layer.
func (w *Weights) String() string {
	var buf strings.Builder
	lastI, lastJ := 0, 0
	w.Each(func(v float64, i, j, g int) {
		if i != lastI {
			if lastI != 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(Spf("  Layer#%d\n", i))
		} else if j != lastJ {
			buf.WriteString("\n")
		}
		if i != lastI || j != lastJ {
			buf.WriteString(Spf("Unit#%d-%d:  ", i, j))
		}
		lastI, lastJ = i, j
		buf.WriteString(Spf("W#%d-%d-%d=%-10.5f ", i, j, g, v))
	})
	buf.WriteString("\n")
	return buf.String()
}
