package perceptron

import (
	"math"
	"sync"

	"github.com/pkg/errors"
)

// Chain is the outcome of one independent training run.
type Chain struct {
	Seed   int64
	Net    *Network
	Report string
	Error  float64 // general error after training
	Err    error
}

// workRequest is a unit of work handed to a worker.
type workRequest struct {
	work func()
}

// startWorker starts a worker that runs requests from work until the
// channel is closed.
func startWorker(work chan *workRequest, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()
		for req := range work {
			req.work()
		}
	}()
}

// TrainChains trains count networks built from cfg, each seeded from
// seed+k and each owning its own weights, on at most workers
// goroutines.  It returns every chain in seed order and the index of
// the chain with the lowest final general error.
func TrainChains(cfg Configuration, data DataSet, parms TrainingParms, count, workers int, seed int64) (chains []*Chain, best int, err error) {
	if count <= 0 {
		return nil, -1, errors.Errorf("chain count must be positive, got %d", count)
	}
	err = cfg.Validate()
	if err != nil {
		return nil, -1, err
	}
	if workers <= 0 || workers > count {
		workers = count
	}

	chains = make([]*Chain, count)
	work := make(chan *workRequest)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		startWorker(work, &wg)
	}
	for k := 0; k < count; k++ {
		chain := &Chain{Seed: seed + int64(k)}
		chains[k] = chain
		work <- &workRequest{work: func() {
			chain.train(cfg, data, parms)
		}}
	}
	close(work)
	wg.Wait()

	best = -1
	for k, chain := range chains {
		if chain.Err != nil {
			continue
		}
		if best < 0 || chain.Error < chains[best].Error {
			best = k
		}
	}
	if best < 0 {
		return chains, -1, errors.Wrap(chains[0].Err, "every chain failed")
	}
	return chains, best, nil
}

// train runs one chain to completion, recording its outcome.
func (c *Chain) train(cfg Configuration, data DataSet, parms TrainingParms) {
	c.Error = math.Inf(1)
	c.Net, c.Err = NewSeededNetwork(cfg, c.Seed)
	if c.Err != nil {
		return
	}
	c.Report, c.Err = c.Net.TrainWith(data, parms)
	if c.Err != nil {
		return
	}
	c.Error, c.Err = c.Net.GeneralErrorFunction(data)
}
