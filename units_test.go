package perceptron

import (
	"testing"

	. "github.com/stevegt/goadapt"
	"github.com/stretchr/testify/require"
)

func newCurveUnits(t *testing.T) *Units {
	topo, err := NewTopology(curveConfig())
	require.NoError(t, err)
	return NewUnits(topo)
}

func TestUnitsGetSet(t *testing.T) {
	u := newCurveUnits(t)
	Tassert(t, u.Len() == 9, u.Len())
	u.Set(1, 1, 42)
	Tassert(t, u.Get(1, 1) == 42, u.Get(1, 1))
	u.Set(3, 1, -7)
	Tassert(t, u.Get(3, 1) == -7, u.Get(3, 1))
}

func TestUnitsIteration(t *testing.T) {
	u := newCurveUnits(t)
	want := []UnitIndex{
		{0, 0}, {0, 1},
		{1, 0}, {1, 1}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
		{3, 1},
	}
	for k := range want {
		_, idx := u.At(k)
		Tassert(t, idx == want[k], k, idx, want[k])
	}

	var forward []UnitIndex
	u.Each(func(_ float64, i, j int) {
		forward = append(forward, UnitIndex{i, j})
	})
	require.Equal(t, want, forward)

	// restartable
	var again []UnitIndex
	u.Each(func(_ float64, i, j int) {
		again = append(again, UnitIndex{i, j})
	})
	require.Equal(t, forward, again)

	var reverse []UnitIndex
	u.EachReverse(func(_ float64, i, j int) {
		reverse = append(reverse, UnitIndex{i, j})
	})
	Tassert(t, len(reverse) == len(want), reverse)
	for k := range reverse {
		Tassert(t, reverse[k] == want[len(want)-1-k], k, reverse[k])
	}
}

func TestUnitsBias(t *testing.T) {
	u := newCurveUnits(t)
	u.InitBiasUnits()
	n := u.Topology().OutputLayer()
	for i := 0; i < n; i++ {
		Tassert(t, u.Has(i, 0), i)
		Tassert(t, u.Get(i, 0) == 1, i, u.Get(i, 0))
	}
	Tassert(t, !u.Has(n, 0))
	require.Panics(t, func() { u.Get(n, 0) })
}

func TestUnitsAssertions(t *testing.T) {
	u := newCurveUnits(t)
	// bias writes
	require.Panics(t, func() { u.Set(0, 0, 3) })
	require.Panics(t, func() { u.Set(1, 0, 3) })
	require.Panics(t, func() { u.Set(3, 0, 3) })
	// out of range
	require.Panics(t, func() { u.Get(4, 1) })
	require.Panics(t, func() { u.Get(-1, 0) })
	require.Panics(t, func() { u.Get(1, 3) })
	require.Panics(t, func() { u.Set(0, 2, 1) })
	require.Panics(t, func() { u.At(9) })
}

func TestUnitsInputOutputLayers(t *testing.T) {
	u := newCurveUnits(t)

	err := u.SetInputLayer([]float64{0.1, 0.2})
	require.ErrorIs(t, err, ErrShape)
	err = u.SetInputLayer(nil)
	require.ErrorIs(t, err, ErrShape)

	err = u.SetInputLayer([]float64{0.25})
	require.NoError(t, err)
	require.Equal(t, []float64{0.25}, u.InputLayer())

	err = u.SetOutputLayer([]float64{1, 2})
	require.ErrorIs(t, err, ErrShape)
	err = u.SetOutputLayer([]float64{-0.75})
	require.NoError(t, err)
	require.Equal(t, []float64{-0.75}, u.OutputLayer())

	// views are copies
	in := u.InputLayer()
	in[0] = 99
	Tassert(t, u.Get(0, 1) == 0.25, u.Get(0, 1))
}

func TestUnitsString(t *testing.T) {
	u := newCurveUnits(t)
	u.InitBiasUnits()
	u.Set(3, 1, 0.5)
	s := u.String()
	require.Contains(t, s, "U#0-0=1.00000")
	require.Contains(t, s, "U#3-1=0.50000")
	require.NotContains(t, s, "U#3-0")
}
