package perceptron

import (
	"github.com/emicklei/dot"
	. "github.com/stevegt/goadapt"
)

// Dot returns a graphviz rendering of the network: one cluster per
// layer, one node per unit, and one edge per connection labelled
// with its weight.  Bias units are drawn as boxes.
func (n *Network) Dot() string {
	n.lock.Lock()
	defer n.lock.Unlock()

	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")

	nodes := make(map[UnitIndex]dot.Node)
	out := n.topo.OutputLayer()
	for i := 0; i <= out; i++ {
		var name string
		switch i {
		case 0:
			name = "input"
		case out:
			name = Spf("output (%s)", n.topo.Activation(i).Name)
		default:
			name = Spf("hidden %d (%s)", i, n.topo.Activation(i).Name)
		}
		layer := g.Subgraph(name, dot.ClusterOption{})
		for j := 0; j <= n.topo.Units(i); j++ {
			if !n.topo.hasUnit(i, j) {
				continue
			}
			node := layer.Node(Spf("u%d_%d", i, j))
			if j == 0 {
				node.Label("1").Attr("shape", "box")
			} else {
				node.Label(Spf("%d-%d", i, j))
			}
			nodes[UnitIndex{i, j}] = node
		}
	}

	n.w.Each(func(v float64, i, j, gi int) {
		from := nodes[UnitIndex{i - 1, gi}]
		to := nodes[UnitIndex{i, j}]
		g.Edge(from, to, Spf("%.4f", v))
	})
	return g.String()
}
