package perceptron

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	. "github.com/stevegt/goadapt"
)

// TrainingParms contains the parameters for training a network by
// stochastic gradient descent.
type TrainingParms struct {
	// LearningRate is the fixed step size.
	LearningRate float64
	// MaxIterations bounds the number of SGD steps.
	MaxIterations int
	// CheckpointInterval is the number of iterations between
	// convergence checks.
	CheckpointInterval int
	// MinImprovement is the smallest relative decrease of the general
	// error over one checkpoint window that keeps training going.
	MinImprovement float64
	// Verbose adds the gradient and the weights of every iteration to
	// the report.
	Verbose bool
}

// DefaultTrainingParms returns the reference training parameters.
func DefaultTrainingParms() TrainingParms {
	return TrainingParms{
		LearningRate:       0.1,
		MaxIterations:      50000,
		CheckpointInterval: 5000,
		MinImprovement:     0.0001,
	}
}

// Validate returns an error if the parameters cannot drive training.
func (p TrainingParms) Validate() (err error) {
	switch {
	case p.LearningRate <= 0 || math.IsNaN(p.LearningRate) || math.IsInf(p.LearningRate, 0):
		return errors.Errorf("learning rate must be a positive number, got %v", p.LearningRate)
	case p.MaxIterations <= 0:
		return errors.Errorf("max iterations must be positive, got %d", p.MaxIterations)
	case p.CheckpointInterval <= 0:
		return errors.Errorf("checkpoint interval must be positive, got %d", p.CheckpointInterval)
	}
	return nil
}

// Train trains the network on data with the reference parameters and
// returns a human-readable report of the run.
func (n *Network) Train(data DataSet) (report string, err error) {
	return n.TrainWith(data, DefaultTrainingParms())
}

// TrainWith trains the network on data by stochastic gradient descent.
// Each iteration picks one sample at random, steps every weight
// against its backpropagated derivative, and recomputes the general
// error.  Every CheckpointInterval iterations the relative improvement
// since the previous checkpoint is compared to MinImprovement, and
// training stops once it falls below.  The report is returned even
// when err is not nil.
func (n *Network) TrainWith(data DataSet, parms TrainingParms) (report string, err error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	var buf strings.Builder
	defer func() {
		report = buf.String()
	}()

	err = parms.Validate()
	if err != nil {
		return
	}
	if len(data) == 0 {
		err = errors.New("no training data")
		return
	}
	for k, s := range data {
		err = n.checkSample(s)
		if err != nil {
			err = errors.Wrapf(err, "sample %d", k)
			return
		}
	}

	gErr, err := n.generalError(data, n.w)
	if err != nil {
		return
	}
	checkpointErr := gErr
	buf.WriteString("Network training by SGD:\n")
	buf.WriteString(Spf("Initial state: g_err=%v\n", gErr))
	if parms.Verbose {
		buf.WriteString("Initial weights:\n")
		buf.WriteString(n.w.String())
	}
	buf.WriteString("\n")

	iteration := 0
	stop := "iteration limit reached"
	for ; iteration < parms.MaxIterations; iteration++ {
		s := data[n.rng.Intn(len(data))]
		var grad *Weights
		grad, err = n.gradient(s)
		if err != nil {
			return
		}
		n.w.AddScaled(-parms.LearningRate, grad)

		prevErr := gErr
		gErr, err = n.generalError(data, n.w)
		if err != nil {
			return
		}
		buf.WriteString(Spf("Iteration #%d: general error=%.6f, improvement=%.6f\n",
			iteration, gErr, improvement(prevErr, gErr)))
		if parms.Verbose {
			buf.WriteString("Gradient:\n")
			buf.WriteString(grad.String())
			buf.WriteString("Recalculated weights:\n")
			buf.WriteString(n.w.String())
		}

		if iteration == 0 || iteration%parms.CheckpointInterval != 0 {
			continue
		}
		impr := improvement(checkpointErr, gErr)
		checkpointErr = gErr
		buf.WriteString(" * * *\n")
		buf.WriteString(Spf("Checkpoint on iteration #%d: general error=%.6f, checkpoint improvement=%.6f\n",
			iteration, gErr, impr))
		if impr < parms.MinImprovement {
			stop = "further training is unreasonable"
			iteration++
			break
		}
	}

	buf.WriteString(Spf("\nStopped after %d iterations: %s.\n", iteration, stop))
	buf.WriteString(Spf("Final state: g_err=%v\n", gErr))
	if parms.Verbose {
		buf.WriteString("Final weights:\n")
		buf.WriteString(n.w.String())
	}
	return
}

// improvement returns the relative decrease from prev to cur.  A
// perfect previous fit cannot improve.
func improvement(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	return 1 - cur/prev
}
