// Command perceptron trains a multilayer perceptron on a set of
// (x, t) samples and prints the training report along with the
// trained network's curve over [-1, 1].
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	. "github.com/stevegt/goadapt"
	"github.com/stevegt/perceptron"
	"github.com/stevegt/perceptron/loader"
	"github.com/stevegt/perceptron/shape"
)

// defaultShape is used when no configuration file is given.
const defaultShape = "(curve 1 (tanh 2) (tanh 2) (linear 1))"

// defaultPoints are used when no training data file is given.
var defaultPoints = [][2]float64{{-0.5, -0.5}, {0.5, 0.5}}

type options struct {
	configPath string
	dataPath   string
	reportPath string
	dotPath    string
	seed       int64
	chains     int
	workers    int
	grid       int
	parms      perceptron.TrainingParms
}

func parseArgs(args []string) (opts *options, err error) {
	opts = &options{}
	def := perceptron.DefaultTrainingParms()
	fs := flag.NewFlagSet("perceptron", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "network configuration, JSON or "+loader.ShapeExt+" (default "+defaultShape+")")
	fs.StringVar(&opts.dataPath, "data", "", `training data, {"Data": [[x, t], ...]} (default two points on y=x)`)
	fs.StringVar(&opts.reportPath, "report", "", "write the training report to this file instead of stdout")
	fs.StringVar(&opts.dotPath, "dot", "", "write a graphviz rendering of the trained network to this file")
	fs.Int64Var(&opts.seed, "seed", 1, "random seed; chain k uses seed+k")
	fs.IntVar(&opts.chains, "chains", 1, "number of independent training chains")
	fs.IntVar(&opts.workers, "workers", 0, "chains trained at once (default one per chain)")
	fs.IntVar(&opts.grid, "grid", 21, "number of points of the printed curve")
	fs.Float64Var(&opts.parms.LearningRate, "rate", def.LearningRate, "learning rate")
	fs.IntVar(&opts.parms.MaxIterations, "iterations", def.MaxIterations, "iteration limit")
	fs.IntVar(&opts.parms.CheckpointInterval, "checkpoint", def.CheckpointInterval, "iterations between convergence checks")
	fs.Float64Var(&opts.parms.MinImprovement, "threshold", def.MinImprovement, "smallest relative improvement per checkpoint")
	fs.BoolVar(&opts.parms.Verbose, "verbose", false, "include gradients and weights in the report")
	err = fs.Parse(args)
	if err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.grid < 2 {
		return nil, errors.Errorf("grid needs at least 2 points, got %d", opts.grid)
	}
	err = opts.parms.Validate()
	return
}

func (opts *options) load() (cfg perceptron.Configuration, data perceptron.DataSet, err error) {
	defer Return(&err)
	if opts.configPath == "" {
		var s *shape.Shape
		s, err = shape.Parse(defaultShape)
		Ck(err)
		cfg, err = s.Configuration()
		Ck(err)
	} else {
		cfg, err = loader.LoadConfiguration(opts.configPath)
		Ck(err)
	}
	if opts.dataPath == "" {
		data = perceptron.Pairs(defaultPoints)
	} else {
		data, err = loader.LoadTrainData(opts.dataPath)
		Ck(err)
	}
	return
}

// curve returns the network's output at points evenly spaced over
// [-1, 1].
func curve(n *perceptron.Network, points int) (xy [][2]float64, err error) {
	for k := 0; k < points; k++ {
		x := -1 + 2*float64(k)/float64(points-1)
		var y []float64
		y, err = n.Process([]float64{x})
		if err != nil {
			return nil, err
		}
		xy = append(xy, [2]float64{x, y[0]})
	}
	return
}

func run(args []string) (err error) {
	defer Return(&err)
	opts, err := parseArgs(args)
	Ck(err)
	cfg, data, err := opts.load()
	Ck(err)
	Debug("config %+v, %d samples\n", cfg, len(data))

	chains, best, err := perceptron.TrainChains(cfg, data, opts.parms, opts.chains, opts.workers, opts.seed)
	Ck(err)
	for k, c := range chains {
		if c.Err != nil {
			Pf("chain %d (seed %d): %v\n", k, c.Seed, c.Err)
			continue
		}
		Pf("chain %d (seed %d): final general error %.6f\n", k, c.Seed, c.Error)
	}
	winner := chains[best]
	Pf("best chain: %d\n", best)

	if opts.reportPath == "" {
		Pl(winner.Report)
	} else {
		err = os.WriteFile(opts.reportPath, []byte(winner.Report), 0644)
		Ck(err)
		Pf("report written to %s\n", opts.reportPath)
	}

	if opts.dotPath != "" {
		err = os.WriteFile(opts.dotPath, []byte(winner.Net.Dot()), 0644)
		Ck(err)
		Pf("graph written to %s\n", opts.dotPath)
	}

	// the curve is only meaningful for one input and one output
	if cfg.NumberOfInputUnits == 1 && cfg.LayersInfo[len(cfg.LayersInfo)-1].NumberOfUnits == 1 {
		xy, err := curve(winner.Net, opts.grid)
		Ck(err)
		Pl("x\ty")
		for _, p := range xy {
			Pf("%.4f\t%.6f\n", p[0], p[1])
		}
	}
	return
}

func main() {
	err := run(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "perceptron:", err)
		os.Exit(1)
	}
}
