package perceptron

import (
	"strings"

	. "github.com/stevegt/goadapt"
)

// Units holds one value per unit of a network: activations during a
// forward pass, or backpropagation coefficients during a backward
// pass.  A Units is created for one pass and then discarded.
type Units struct {
	topo   *Topology
	values []float64
}

// NewUnits returns a zeroed unit store shaped by topo.  Bias units are
// not set; call InitBiasUnits before using it for activations.
func NewUnits(topo *Topology) (u *Units) {
	u = &Units{
		topo:   topo,
		values: make([]float64, topo.NumUnitValues()),
	}
	return
}

// Topology returns the index model of the store.
func (u *Units) Topology() *Topology {
	return u.topo
}

// Len returns the number of addressable units.
func (u *Units) Len() int {
	return len(u.values)
}

// Has reports whether (i, j) is addressable.  The output layer has no
// bias unit, so Has(N, 0) is false.
func (u *Units) Has(i, j int) bool {
	return u.topo.hasUnit(i, j)
}

// Get returns the value of unit (i, j).  It panics if (i, j) is not
// addressable.
func (u *Units) Get(i, j int) float64 {
	Assert(u.topo.hasUnit(i, j), "unit (%d, %d) out of range", i, j)
	return u.values[u.topo.unitPos(i, j)]
}

// Set sets the value of unit (i, j).  It panics if (i, j) is not
// addressable or is a bias unit.
func (u *Units) Set(i, j int, value float64) {
	Assert(j != 0, "unit (%d, %d) is a bias unit", i, j)
	Assert(u.topo.hasUnit(i, j), "unit (%d, %d) out of range", i, j)
	u.values[u.topo.unitPos(i, j)] = value
}

// InitBiasUnits sets unit 0 of every layer except the output layer
// to 1.
func (u *Units) InitBiasUnits() {
	for i := 0; i < u.topo.OutputLayer(); i++ {
		u.values[u.topo.unitPos(i, 0)] = 1
	}
}

// At returns the k-th unit in canonical order along with its index.
func (u *Units) At(k int) (value float64, idx UnitIndex) {
	Assert(k >= 0 && k < len(u.values), "unit position %d out of range", k)
	return u.values[k], u.topo.unitIndex[k]
}

// Each calls fn for every addressable unit in increasing (i, j) order.
func (u *Units) Each(fn func(value float64, i, j int)) {
	for k, v := range u.values {
		idx := u.topo.unitIndex[k]
		fn(v, idx.I, idx.J)
	}
}

// EachReverse calls fn for every addressable unit in decreasing
// (i, j) order, the exact reverse of Each.
func (u *Units) EachReverse(fn func(value float64, i, j int)) {
	for k := len(u.values) - 1; k >= 0; k-- {
		idx := u.topo.unitIndex[k]
		fn(u.values[k], idx.I, idx.J)
	}
}

// layer returns a copy of the non-bias values of layer i.
func (u *Units) layer(i int) (values []float64) {
	start := u.topo.unitPos(i, 1)
	values = make([]float64, u.topo.Units(i))
	copy(values, u.values[start:start+len(values)])
	return
}

// setLayer copies values into the non-bias units of layer i.
func (u *Units) setLayer(i int, values []float64) (err error) {
	m := u.topo.Units(i)
	if len(values) != m {
		return shapeErrorf("layer %d has %d units, got %d values", i, m, len(values))
	}
	start := u.topo.unitPos(i, 1)
	copy(u.values[start:start+m], values)
	return nil
}

// InputLayer returns the values of the input units, bias excluded.
func (u *Units) InputLayer() []float64 {
	return u.layer(0)
}

// SetInputLayer sets the input units from x, which must have exactly
// one value per input unit.
func (u *Units) SetInputLayer(x []float64) error {
	return u.setLayer(0, x)
}

// OutputLayer returns the values of the output units.
func (u *Units) OutputLayer() []float64 {
	return u.layer(u.topo.OutputLayer())
}

// SetOutputLayer sets the output units from y, which must have
// exactly one value per output unit.
func (u *Units) SetOutputLayer(y []float64) error {
	return u.setLayer(u.topo.OutputLayer(), y)
}

// String renders the store one layer per line.
func (u *Units) String() string {
	var buf strings.Builder
	last := -1
	u.Each(func(v float64, i, j int) {
		if i != last && last >= 0 {
			buf.WriteString("\n")
		}
		last = i
		buf.WriteString(Spf("U#%d-%d=%-10.5f ", i, j, v))
	})
	buf.WriteString("\n")
	return buf.String()
}
