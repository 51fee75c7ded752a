package perceptron

import (
	"math"
	"math/rand"
	"testing"

	. "github.com/stevegt/goadapt"
	"github.com/stretchr/testify/require"
)

func newCurveWeights(t *testing.T) *Weights {
	topo, err := NewTopology(curveConfig())
	require.NoError(t, err)
	return NewWeights(topo)
}

func TestWeightsGetSet(t *testing.T) {
	w := newCurveWeights(t)
	Tassert(t, w.Len() == 13, w.Len())
	w.Set(1, 1, 1, 42)
	Tassert(t, w.Get(1, 1, 1) == 42, w.Get(1, 1, 1))
	w.Set(3, 1, 2, -1.5)
	Tassert(t, w.Get(3, 1, 2) == -1.5, w.Get(3, 1, 2))

	require.Panics(t, func() { w.Get(0, 1, 0) })
	require.Panics(t, func() { w.Get(1, 0, 0) })
	require.Panics(t, func() { w.Get(1, 3, 0) })
	require.Panics(t, func() { w.Get(1, 1, 2) })
	require.Panics(t, func() { w.Get(4, 1, 0) })
	require.Panics(t, func() { w.Set(3, 2, 0, 1) })
	require.Panics(t, func() { w.Set(2, 1, -1, 1) })
}

func TestWeightsIteration(t *testing.T) {
	w := newCurveWeights(t)
	want := []WeightIndex{
		{1, 1, 0}, {1, 1, 1},
		{1, 2, 0}, {1, 2, 1},
		{2, 1, 0}, {2, 1, 1}, {2, 1, 2},
		{2, 2, 0}, {2, 2, 1}, {2, 2, 2},
		{3, 1, 0}, {3, 1, 1}, {3, 1, 2},
	}
	// give each weight its position so values can be checked too
	for k, idx := range want {
		w.Set(idx.I, idx.J, idx.G, float64(k))
	}

	var forward []WeightIndex
	w.Each(func(v float64, i, j, g int) {
		Tassert(t, v == float64(len(forward)), v, i, j, g)
		forward = append(forward, WeightIndex{i, j, g})
	})
	require.Equal(t, want, forward)

	var reverse []WeightIndex
	w.EachReverse(func(v float64, i, j, g int) {
		reverse = append(reverse, WeightIndex{i, j, g})
	})
	Tassert(t, len(reverse) == len(want))
	for k := range reverse {
		Tassert(t, reverse[k] == want[len(want)-1-k], k, reverse[k])
	}

	for k := range want {
		v, idx := w.At(k)
		Tassert(t, idx == want[k] && v == float64(k), k, idx, v)
	}
}

func TestWeightsRandomInitialize(t *testing.T) {
	w := newCurveWeights(t)
	rng := rand.New(rand.NewSource(1))
	w.RandomInitialize(rng)
	seen := make(map[float64]bool)
	w.Each(func(v float64, i, j, g int) {
		Tassert(t, !math.IsNaN(v) && !math.IsInf(v, 0), v)
		Tassert(t, v >= 0 && v < 1, v)
		Tassert(t, !seen[v], "duplicate weight", v)
		seen[v] = true
	})
	first := w.Values()

	w.RandomInitialize(rng)
	second := w.Values()
	require.NotEqual(t, first, second)
}

func TestWeightsCloneAndAddScaled(t *testing.T) {
	w := newCurveWeights(t)
	w.RandomInitialize(rand.New(rand.NewSource(2)))
	c := w.Clone()
	require.Equal(t, w.Values(), c.Values())

	c.Set(2, 2, 1, 100)
	Tassert(t, w.Get(2, 2, 1) != 100, "clone shares storage")

	d := NewWeights(w.Topology())
	d.Set(1, 1, 0, 2)
	d.Set(3, 1, 2, -4)
	before := w.Values()
	w.AddScaled(-0.5, d)
	after := w.Values()
	for k := range before {
		_, idx := w.At(k)
		switch idx {
		case WeightIndex{1, 1, 0}:
			require.InDelta(t, before[k]-1, after[k], 1e-12)
		case WeightIndex{3, 1, 2}:
			require.InDelta(t, before[k]+2, after[k], 1e-12)
		default:
			Tassert(t, before[k] == after[k], idx)
		}
	}

	require.Panics(t, func() { w.SetValues([]float64{1, 2}) })
}

func TestWeightsString(t *testing.T) {
	w := newCurveWeights(t)
	w.Set(2, 1, 2, 0.25)
	s := w.String()
	require.Contains(t, s, "  Layer#1\n")
	require.Contains(t, s, "  Layer#3\n")
	require.Contains(t, s, "Unit#2-1:  ")
	require.Contains(t, s, "W#2-1-2=0.25000")
}
