package perceptron

import (
	"math"
	"sort"
)

// Activation is a named activation function together with its
// derivative.  Deriv takes the function's own output, not the net
// input.
type Activation struct {
	Name  string
	Func  func(float64) float64
	Deriv func(float64) float64
}

// sigmoid activation function
func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// sigmoid derivative in terms of z = sigmoid(x)
func sigmoidD1(z float64) float64 {
	return z * (1 - z)
}

// tanh derivative in terms of z = tanh(x)
func tanhD1(z float64) float64 {
	return 1 - z*z
}

func linear(x float64) float64 {
	return x
}

func linearD1(z float64) float64 {
	return 1
}

// Activations maps activation names to functions.  It must not be
// modified.
var Activations = map[string]*Activation{
	"linear":  {Name: "linear", Func: linear, Deriv: linearD1},
	"sigmoid": {Name: "sigmoid", Func: sigmoid, Deriv: sigmoidD1},
	"tanh":    {Name: "tanh", Func: math.Tanh, Deriv: tanhD1},
}

// ActivationNames returns the recognized activation names, sorted.
func ActivationNames() (names []string) {
	for name := range Activations {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// LookupActivation returns the activation with the given name, or a
// configuration error if there is none.
func LookupActivation(name string) (act *Activation, err error) {
	act, ok := Activations[name]
	if !ok {
		return nil, configErrorf("unknown activation function %q, want one of %v", name, ActivationNames())
	}
	return act, nil
}
