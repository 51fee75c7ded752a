// Package perceptron implements a small feed-forward multilayer
// perceptron: forward propagation, squared error, gradients by
// backpropagation checked against central differences, and training
// by stochastic gradient descent.
//
// Indexing follows one scheme throughout:
//
//   - i is a layer, 0 the input layer and N the output layer.
//   - j is a unit on layer i; unit 0 of every layer but the output
//     layer is the bias unit, whose value is always 1.
//   - g is a unit on layer i-1, the source of a connection into (i, j).
//   - q is a unit on layer i+1.
package perceptron

import (
	"math/rand"
	"slices"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Sample is one training case: inputs X and targets T.
type Sample struct {
	X []float64
	T []float64
}

// DataSet is a collection of samples.
type DataSet []Sample

// Pairs converts [x, t] scalar pairs into one-input, one-output
// samples.
func Pairs(pairs [][2]float64) (data DataSet) {
	for _, p := range pairs {
		data = append(data, Sample{X: []float64{p[0]}, T: []float64{p[1]}})
	}
	return
}

// DefaultEpsilon is the perturbation used by NumericalGradient.
const DefaultEpsilon = 1e-10

// Network is a multilayer perceptron.  The weight store is owned by
// the network and mutated in place by training.
type Network struct {
	cfg     Configuration
	topo    *Topology
	w       *Weights
	rng     *rand.Rand
	epsilon float64
	lock    sync.Mutex
}

// NewNetwork creates a network for cfg with randomly initialized
// weights.  It returns a configuration error, wrapping ErrConfig, if
// cfg is invalid.
func NewNetwork(cfg Configuration) (n *Network, err error) {
	return NewSeededNetwork(cfg, time.Now().UnixNano())
}

// NewSeededNetwork is like NewNetwork, but draws the initial weights
// and the training sample order from a source seeded with seed.
func NewSeededNetwork(cfg Configuration, seed int64) (n *Network, err error) {
	topo, err := NewTopology(cfg)
	if err != nil {
		return
	}
	n = &Network{
		cfg:     cfg.clone(),
		topo:    topo,
		w:       NewWeights(topo),
		rng:     rand.New(rand.NewSource(seed)),
		epsilon: DefaultEpsilon,
	}
	n.w.RandomInitialize(n.rng)
	return
}

// Configuration returns a copy of the configuration the network was
// built from.
func (n *Network) Configuration() Configuration {
	return n.cfg.clone()
}

// Topology returns the network's index model.
func (n *Network) Topology() *Topology {
	return n.topo
}

// Weights returns a copy of the current weights.
func (n *Network) Weights() *Weights {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.w.Clone()
}

// SetWeights replaces the network's weights with a copy of w, which
// must have been shaped by an identical configuration.
func (n *Network) SetWeights(w *Weights) (err error) {
	n.lock.Lock()
	defer n.lock.Unlock()
	if !slices.Equal(w.topo.LayerSizes(), n.topo.LayerSizes()) {
		return shapeErrorf("expected layer sizes %v, got %v", n.topo.LayerSizes(), w.topo.LayerSizes())
	}
	n.w.SetValues(w.values)
	return nil
}

// SetEpsilon sets the perturbation used by NumericalGradient.
func (n *Network) SetEpsilon(epsilon float64) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.epsilon = epsilon
}

// Clone returns an independent copy of the network with its own
// weights and random source.
func (n *Network) Clone() (c *Network) {
	n.lock.Lock()
	defer n.lock.Unlock()
	c = &Network{
		cfg:     n.cfg.clone(),
		topo:    n.topo,
		w:       n.w.Clone(),
		rng:     rand.New(rand.NewSource(n.rng.Int63())),
		epsilon: n.epsilon,
	}
	return
}

// Forward propagates x through the network and returns the value of
// every unit.
func (n *Network) Forward(x []float64) (z *Units, err error) {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.forward(x, n.w)
}

// Process returns the output of the network for x.
func (n *Network) Process(x []float64) (y []float64, err error) {
	n.lock.Lock()
	defer n.lock.Unlock()
	z, err := n.forward(x, n.w)
	if err != nil {
		return
	}
	return z.OutputLayer(), nil
}

// forward propagates x using weights w, which need not be the
// network's own.
func (n *Network) forward(x []float64, w *Weights) (z *Units, err error) {
	z = NewUnits(n.topo)
	err = z.SetInputLayer(x)
	if err != nil {
		return nil, err
	}
	z.InitBiasUnits()
	for i := 1; i < n.topo.NumLayers(); i++ {
		h := n.topo.Activation(i)
		for j := 1; j <= n.topo.Units(i); j++ {
			a := 0.0
			for g := 0; g <= n.topo.Units(i-1); g++ {
				a += z.Get(i-1, g) * w.Get(i, j, g)
			}
			z.Set(i, j, h.Func(a))
		}
	}
	return
}

// ErrorFunction returns the squared error 0.5*sum((y_k - t_k)^2) of
// the network on sample s.
func (n *Network) ErrorFunction(s Sample) (e float64, err error) {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.sampleError(s, n.w)
}

// GeneralErrorFunction returns the sum of ErrorFunction over data.
func (n *Network) GeneralErrorFunction(data DataSet) (e float64, err error) {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.generalError(data, n.w)
}

func (n *Network) generalError(data DataSet, w *Weights) (e float64, err error) {
	for k, s := range data {
		var se float64
		se, err = n.sampleError(s, w)
		if err != nil {
			return 0, shapeErrorf("sample %d: %v", k, err)
		}
		e += se
	}
	return
}

func (n *Network) sampleError(s Sample, w *Weights) (e float64, err error) {
	err = n.checkTargets(s)
	if err != nil {
		return
	}
	z, err := n.forward(s.X, w)
	if err != nil {
		return
	}
	y := z.OutputLayer()
	d := floats.SubTo(y, y, s.T)
	e = 0.5 * floats.Dot(d, d)
	return
}

// checkTargets returns a shape error if s.T does not have one value
// per output unit.
func (n *Network) checkTargets(s Sample) (err error) {
	m := n.topo.Units(n.topo.OutputLayer())
	if len(s.T) != m {
		return shapeErrorf("output layer has %d units, got %d targets", m, len(s.T))
	}
	return nil
}

// checkSample returns a shape error if s does not fit the network.
func (n *Network) checkSample(s Sample) (err error) {
	m := n.topo.Units(0)
	if len(s.X) != m {
		return shapeErrorf("input layer has %d units, got %d inputs", m, len(s.X))
	}
	return n.checkTargets(s)
}
