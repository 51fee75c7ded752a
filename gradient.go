package perceptron

import (
	. "github.com/stevegt/goadapt"
	"gonum.org/v1/gonum/diff/fd"
)

// Gradient returns the derivatives of the error on s with regard to
// every weight, computed by backpropagation.
func (n *Network) Gradient(s Sample) (d *Weights, err error) {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.gradient(s)
}

func (n *Network) gradient(s Sample) (d *Weights, err error) {
	err = n.checkSample(s)
	if err != nil {
		return
	}

	// activations
	z, err := n.forward(s.X, n.w)
	if err != nil {
		return
	}

	// backpropagation coefficients, output layer first
	out := n.topo.OutputLayer()
	b := NewUnits(n.topo)
	z.EachReverse(func(zv float64, i, j int) {
		if i == 0 || j == 0 {
			return
		}
		deriv := n.topo.Activation(i).Deriv
		if i == out {
			b.Set(i, j, (zv-s.T[j-1])*deriv(zv))
			return
		}
		// q starts at 1: bias units on layer i+1 have no incoming
		// weight from (i, j)
		sum := 0.0
		for q := 1; q <= n.topo.Units(i+1); q++ {
			sum += n.w.Get(i+1, q, j) * b.Get(i+1, q)
		}
		b.Set(i, j, deriv(zv)*sum)
	})

	// derivatives: destination coefficient times source value
	d = NewWeights(n.topo)
	for k, idx := range n.topo.weightIndex {
		d.values[k] = b.Get(idx.I, idx.J) * z.Get(idx.I-1, idx.G)
	}
	return
}

// NumericalGradient estimates the same derivatives as Gradient by
// central differences, perturbing each weight of a private copy of the
// weight store by ±epsilon.  It costs two forward passes per weight
// and exists to verify Gradient.
func (n *Network) NumericalGradient(s Sample) (d *Weights, err error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	err = n.checkSample(s)
	if err != nil {
		return
	}

	perturbed := n.w.Clone()
	f := func(values []float64) float64 {
		perturbed.SetValues(values)
		e, err := n.sampleError(s, perturbed)
		// the sample was checked above
		Ck(err)
		return e
	}

	d = NewWeights(n.topo)
	fd.Gradient(d.values, f, n.w.Values(), &fd.Settings{
		Formula: fd.Central,
		Step:    n.epsilon,
	})
	return
}
