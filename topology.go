package perceptron

import "github.com/pkg/errors"

// LayerInfo describes one non-input layer.
type LayerInfo struct {
	NumberOfUnits      int    `json:"NumberOfUnits"`
	ActivationFunction string `json:"ActivationFunction"`
}

// Configuration declares the shape of a network.  The last entry of
// LayersInfo is the output layer.
type Configuration struct {
	NumberOfInputUnits int         `json:"NumberOfInputUnits"`
	LayersInfo         []LayerInfo `json:"LayersInfo"`
}

// Validate returns a configuration error if the configuration cannot
// describe a network.
func (c Configuration) Validate() (err error) {
	if c.NumberOfInputUnits <= 0 {
		return configErrorf("NumberOfInputUnits must be positive, got %d", c.NumberOfInputUnits)
	}
	if len(c.LayersInfo) == 0 {
		return configErrorf("LayersInfo must contain at least the output layer")
	}
	for i, info := range c.LayersInfo {
		if info.NumberOfUnits <= 0 {
			return configErrorf("layer %d: NumberOfUnits must be positive, got %d", i+1, info.NumberOfUnits)
		}
		_, err = LookupActivation(info.ActivationFunction)
		if err != nil {
			return errors.Wrapf(err, "layer %d", i+1)
		}
	}
	return nil
}

// clone returns a deep copy of the configuration.
func (c Configuration) clone() Configuration {
	c.LayersInfo = append([]LayerInfo(nil), c.LayersInfo...)
	return c
}

// UnitIndex addresses unit J on layer I.
type UnitIndex struct {
	I, J int
}

// WeightIndex addresses the weight from unit G on layer I-1 to unit J
// on layer I.
type WeightIndex struct {
	I, J, G int
}

// Topology is the index model derived from a Configuration.  It holds
// the per-layer unit counts, activation lookups, and the offset tables
// that map (i, j) and (i, j, g) onto the flat slices used by Units and
// Weights.  A Topology is immutable and may be shared by any number of
// stores.
type Topology struct {
	units       []int         // m_i, declared unit count per layer
	activations []*Activation // nil for the input layer

	// unitOffsets[i] is the flat position of (i, 0); for the output
	// layer, which has no bias slot, it is the position of (N, 1).
	unitOffsets []int
	// weightOffsets[i] is the flat position of (i, 1, 0); entry 0 is
	// unused.
	weightOffsets []int

	unitIndex   []UnitIndex
	weightIndex []WeightIndex
}

// NewTopology validates cfg and derives its index model.
func NewTopology(cfg Configuration) (t *Topology, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}
	t = &Topology{}
	t.units = append(t.units, cfg.NumberOfInputUnits)
	t.activations = append(t.activations, nil)
	for _, info := range cfg.LayersInfo {
		t.units = append(t.units, info.NumberOfUnits)
		// already validated
		t.activations = append(t.activations, Activations[info.ActivationFunction])
	}

	n := t.OutputLayer()
	idx := 0
	for i, m := range t.units {
		t.unitOffsets = append(t.unitOffsets, idx)
		for j := 0; j <= m; j++ {
			if i == n && j == 0 {
				continue
			}
			t.unitIndex = append(t.unitIndex, UnitIndex{i, j})
			idx++
		}
	}

	idx = 0
	t.weightOffsets = append(t.weightOffsets, 0)
	for i := 1; i <= n; i++ {
		t.weightOffsets = append(t.weightOffsets, idx)
		for j := 1; j <= t.units[i]; j++ {
			for g := 0; g <= t.units[i-1]; g++ {
				t.weightIndex = append(t.weightIndex, WeightIndex{i, j, g})
				idx++
			}
		}
	}
	return
}

// NumLayers returns the number of layers, input and output included.
func (t *Topology) NumLayers() int {
	return len(t.units)
}

// OutputLayer returns N, the index of the output layer.
func (t *Topology) OutputLayer() int {
	return len(t.units) - 1
}

// Units returns m_i, the configured number of units on layer i, not
// counting the bias unit.
func (t *Topology) Units(i int) int {
	return t.units[i]
}

// LayerSizes returns m_i+1 for every layer.  The output layer's size
// also counts the bias slot even though that slot never holds a value.
func (t *Topology) LayerSizes() (sizes []int) {
	for _, m := range t.units {
		sizes = append(sizes, m+1)
	}
	return
}

// Activation returns the activation of layer i, or nil for the input
// layer.
func (t *Topology) Activation(i int) *Activation {
	return t.activations[i]
}

// NumUnitValues returns the number of addressable units: every unit
// including bias units, except the output layer's bias slot.
func (t *Topology) NumUnitValues() int {
	return len(t.unitIndex)
}

// NumWeights returns the number of connections.
func (t *Topology) NumWeights() int {
	return len(t.weightIndex)
}

// hasUnit reports whether (i, j) is an addressable unit.
func (t *Topology) hasUnit(i, j int) bool {
	if i < 0 || i >= len(t.units) {
		return false
	}
	if j < 0 || j > t.units[i] {
		return false
	}
	return !(i == t.OutputLayer() && j == 0)
}

// unitPos returns the flat position of unit (i, j), which must be
// addressable.
func (t *Topology) unitPos(i, j int) int {
	if i == t.OutputLayer() {
		return t.unitOffsets[i] + j - 1
	}
	return t.unitOffsets[i] + j
}

// hasWeight reports whether (i, j, g) is a connection.
func (t *Topology) hasWeight(i, j, g int) bool {
	if i < 1 || i >= len(t.units) {
		return false
	}
	if j < 1 || j > t.units[i] {
		return false
	}
	return g >= 0 && g <= t.units[i-1]
}

// weightPos returns the flat position of weight (i, j, g), which must
// exist.
func (t *Topology) weightPos(i, j, g int) int {
	return t.weightOffsets[i] + (j-1)*(t.units[i-1]+1) + g
}
