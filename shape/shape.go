// Package shape reads and writes network configurations as
// s-expressions:
//
//	(curve 1 (tanh 2) (tanh 2) (linear 1))
//
// The first word names the network.  Inputs are either a count or a
// list of input names, and each following expression is a layer: an
// activation function name and either a unit count or, for the output
// layer, a list of output names.
//
//	(xor a b (sigmoid 2) (sigmoid y))
package shape

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	. "github.com/stevegt/goadapt"
	"github.com/stevegt/perceptron"
	"github.com/xiam/sexpr/ast"
	"github.com/xiam/sexpr/parser"
)

// Shape is a representation of the network's shape.
type Shape struct {
	Name        string
	Inputs      int
	InputNames  []string
	OutputNames []string
	Layers      []*LayerShape
}

// LayerShape is one non-input layer.
type LayerShape struct {
	ActivationName string
	Units          int
}

func (s *Shape) String() (out string) {
	parts := []string{s.Name}
	if len(s.InputNames) > 0 {
		parts = append(parts, s.InputNames...)
	} else {
		parts = append(parts, strconv.Itoa(s.Inputs))
	}
	for k, layer := range s.Layers {
		if k == len(s.Layers)-1 && len(s.OutputNames) > 0 {
			parts = append(parts, Spf("(%s %s)", layer.ActivationName, strings.Join(s.OutputNames, " ")))
			continue
		}
		parts = append(parts, layer.String())
	}
	out = Spf("(%s)", strings.Join(parts, " "))
	return
}

func (l *LayerShape) String() string {
	return Spf("(%s %d)", l.ActivationName, l.Units)
}

// Configuration returns the network configuration described by s.
func (s *Shape) Configuration() (cfg perceptron.Configuration, err error) {
	cfg.NumberOfInputUnits = s.Inputs
	for _, layer := range s.Layers {
		cfg.LayersInfo = append(cfg.LayersInfo, perceptron.LayerInfo{
			NumberOfUnits:      layer.Units,
			ActivationFunction: layer.ActivationName,
		})
	}
	err = cfg.Validate()
	if err != nil {
		return perceptron.Configuration{}, errors.Wrapf(err, "shape %s", s.Name)
	}
	return
}

// FromConfiguration returns the shape of cfg under the given name.
func FromConfiguration(name string, cfg perceptron.Configuration) (s *Shape, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}
	Assert(name != "" && !strings.ContainsAny(name, " ()\t\n"), "bad shape name %q", name)
	s = &Shape{Name: name, Inputs: cfg.NumberOfInputUnits}
	for _, info := range cfg.LayersInfo {
		s.Layers = append(s.Layers, &LayerShape{
			ActivationName: info.ActivationFunction,
			Units:          info.NumberOfUnits,
		})
	}
	return
}

// SyntaxError is a syntax error.
type SyntaxError struct {
	msg  string
	node *ast.Node
}

func (e *SyntaxError) Error() string {
	tok := e.node.Token()
	if tok == nil {
		return Spf("[shape] %s: %s", e.msg, e.node.Encode())
	}
	return Spf("[shape:%s] %s: %s", tok.Pos, e.msg, e.node.Encode())
}

// synck raises a syntax err if cond is false.
func synck(node *ast.Node, cond bool, args ...interface{}) {
	if !cond {
		msg := FormatArgs(args...)
		panic(&SyntaxError{msg, node})
	}
}

// Parse parses a shape expression.
func Parse(txt string) (s *Shape, err error) {
	defer Return(&err)
	// synck panics with a *SyntaxError
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		synErr, ok := r.(*SyntaxError)
		if !ok {
			panic(r)
		}
		s, err = nil, synErr
	}()
	root, err := parser.Parse([]byte(txt))
	Ck(err)

	// root is a list
	synck(root, root.Type() == ast.NodeTypeList, "root is not a list")
	// root has one child
	children := root.List()
	synck(root, len(children) == 1, "root has %d children", len(children))
	// root's child is an expression
	expr := children[0]
	synck(expr, expr.Type() == ast.NodeTypeExpression, "root's child is not an expression")
	s = parseShape(expr)
	return
}

func parseShape(n *ast.Node) (s *Shape) {
	s = &Shape{}
	children := n.List()
	synck(n, len(children) > 0, "missing network name")
	synck(children[0], children[0].Type() == ast.NodeTypeSymbol, "network name is not a symbol")
	s.Name = children[0].Encode()

	// inputs run up to the first layer expression
	k := 1
	for ; k < len(children); k++ {
		child := children[k]
		if child.Type() == ast.NodeTypeExpression {
			break
		}
		switch child.Type() {
		case ast.NodeTypeInt:
			synck(child, k == 1 && s.Inputs == 0, "input count mixed with other inputs")
			s.Inputs = count(child)
		case ast.NodeTypeSymbol:
			synck(child, s.Inputs == len(s.InputNames), "input name mixed with input count")
			s.InputNames = append(s.InputNames, child.Encode())
			s.Inputs++
		default:
			synck(child, false, "input is neither a count nor a name")
		}
	}
	synck(n, s.Inputs > 0, "missing inputs")

	synck(n, k < len(children), "missing layers")
	for ; k < len(children); k++ {
		child := children[k]
		synck(child, child.Type() == ast.NodeTypeExpression, "layer is not an expression")
		last := k == len(children)-1
		s.Layers = append(s.Layers, parseLayer(s, child, last))
	}
	return
}

func parseLayer(s *Shape, n *ast.Node, last bool) (layer *LayerShape) {
	children := n.List()
	synck(n, len(children) > 1, "layer needs an activation and units")
	act := children[0]
	synck(act, act.Type() == ast.NodeTypeSymbol, "activation name is not a symbol")
	_, err := perceptron.LookupActivation(act.Encode())
	synck(act, err == nil, "unknown activation function %s", act.Encode())
	layer = &LayerShape{ActivationName: act.Encode()}

	units := children[1]
	if units.Type() == ast.NodeTypeInt {
		synck(n, len(children) == 2, "too many children")
		layer.Units = count(units)
		return
	}
	// named units are outputs
	synck(n, last, "only the output layer may name its units")
	for _, child := range children[1:] {
		synck(child, child.Type() == ast.NodeTypeSymbol, "output name is not a symbol")
		s.OutputNames = append(s.OutputNames, child.Encode())
	}
	layer.Units = len(s.OutputNames)
	return
}

// count returns the positive integer held by n.
func count(n *ast.Node) int {
	c, err := strconv.Atoi(n.Encode())
	synck(n, err == nil, "bad count")
	synck(n, c > 0, "count is not positive")
	return c
}
