package mining

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/kaspanet/sha3miner/domain/consensus/model/externalapi"
	"github.com/kaspanet/sha3miner/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/sha3miner/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

// Strategy selects how MineParallel splits the nonce space between workers
type Strategy int

const (
	// StrategyStrided has worker i try nonces i, i+W, i+2W, ... for W workers.
	StrategyStrided Strategy = iota

	// StrategyRandomStart has every worker walk sequentially from a
	// pseudo-random nonce derived from the header.
	StrategyRandomStart
)

func (s Strategy) String() string {
	switch s {
	case StrategyStrided:
		return "strided"
	case StrategyRandomStart:
		return "random"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParallelConfig configures MineParallel
type ParallelConfig struct {
	// Workers is the number of searching goroutines. Defaults to runtime.NumCPU().
	Workers  int
	Strategy Strategy
	// MaxIterationsPerWorker bounds the nonces every worker tries. Zero
	// means every worker is bounded only by the nonce space.
	MaxIterationsPerWorker uint64
	// HashCounter, if not nil, counts the hashes tried by all workers.
	HashCounter *HashCounter
}

// Result describes a winning nonce
type Result struct {
	Nonce      uint64
	Hash       *externalapi.DomainHash
	Difficulty uint64
	Worker     int
}

// MineParallel searches for a nonce with which header reaches
// targetDifficulty using several goroutines, each owning a private copy of
// the header. The first winning worker cancels the others. Unlike Mine, the
// returned nonce is not necessarily the smallest one.
//
// On success header.Nonce is set to the winning nonce; otherwise header is
// left untouched.
func MineParallel(ctx context.Context, header *externalapi.BlockHeader, targetDifficulty uint64,
	cfg ParallelConfig) (*Result, error) {

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log.Debugf("Searching for a nonce reaching difficulty %d with %d %s workers",
		targetDifficulty, workers, cfg.Strategy)

	starts, stride, err := workerRanges(header, workers, cfg.Strategy)
	if err != nil {
		return nil, err
	}

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// resultChan accepts a single result. Later winners are dropped.
	resultChan := make(chan *Result, 1)
	waitGroup := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		w := &worker{
			id:     i,
			header: header.Clone(),
			start:  starts[i],
			stride: stride,
		}
		waitGroup.Add(1)
		spawn(fmt.Sprintf("mineWorker-%d", i), func() {
			defer waitGroup.Done()
			result := w.search(searchCtx, targetDifficulty, cfg.MaxIterationsPerWorker, cfg.HashCounter)
			if result == nil {
				return
			}
			select {
			case resultChan <- result:
				cancel()
			default:
			}
		})
	}

	doneChan := make(chan struct{})
	spawn("MineParallel-wait", func() {
		waitGroup.Wait()
		close(doneChan)
	})

	// Every worker is waited for, so none outlives the call or counts hashes
	// after it returns.
	var result *Result
	select {
	case result = <-resultChan:
		cancel()
		<-doneChan
	case <-doneChan:
		// One of the workers may still have won just before the last one ended.
		select {
		case result = <-resultChan:
		default:
		}
	}

	if result != nil {
		return acceptResult(header, result), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "parallel search stopped")
	}
	return nil, errors.Wrapf(ErrSearchExhausted, "all %d workers ran out of nonces", workers)
}

func acceptResult(header *externalapi.BlockHeader, result *Result) *Result {
	header.Nonce = result.Nonce
	log.Infof("Worker %d found nonce %d: hash %s, difficulty %d",
		result.Worker, result.Nonce, result.Hash, result.Difficulty)
	return result
}

// workerRanges returns the first nonce of every worker and the step all of
// them advance by.
func workerRanges(header *externalapi.BlockHeader, workers int, strategy Strategy) ([]uint64, uint64, error) {
	starts := make([]uint64, workers)
	switch strategy {
	case StrategyStrided:
		for i := range starts {
			starts[i] = uint64(i)
		}
		return starts, uint64(workers), nil

	case StrategyRandomStart:
		seedHeader := header.Clone()
		seedHeader.Nonce = 0
		generator := pow.NewNonceGenerator(consensushashing.HeaderHash(seedHeader))
		for i := range starts {
			starts[i] = generator.Uint64()
		}
		return starts, 1, nil
	}
	return nil, 0, errors.Errorf("unknown search strategy %s", strategy)
}

type worker struct {
	id     int
	header *externalapi.BlockHeader
	start  uint64
	stride uint64
}

// search returns nil if the context is done or the worker runs out of nonces
// before reaching targetDifficulty.
func (w *worker) search(ctx context.Context, targetDifficulty uint64, maxIterations uint64,
	counter *HashCounter) *Result {

	nonce := w.start
	for tried := uint64(1); maxIterations == 0 || tried <= maxIterations; tried++ {
		if tried&(contextCheckInterval-1) == 0 && ctx.Err() != nil {
			return nil
		}

		w.header.Nonce = nonce
		difficulty, hash := difficultyWithHash(w.header)
		counter.Increment()
		if difficulty >= targetDifficulty {
			return &Result{Nonce: nonce, Hash: hash, Difficulty: difficulty, Worker: w.id}
		}

		next := nonce + w.stride
		if next < nonce {
			log.Debugf("Worker %d reached the end of the nonce space", w.id)
			return nil
		}
		nonce = next
	}
	log.Debugf("Worker %d used up its budget of %d nonces", w.id, maxIterations)
	return nil
}
