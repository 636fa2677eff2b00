package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kaspanet/sha3miner/domain/consensus/model/externalapi"
	"github.com/kaspanet/sha3miner/domain/consensus/utils/pow"
	"github.com/kaspanet/sha3miner/domain/mining"
	"github.com/kaspanet/sha3miner/infrastructure/logger"
	"github.com/kaspanet/sha3miner/infrastructure/os/signal"
	"github.com/kaspanet/sha3miner/util/panics"
	"github.com/kaspanet/sha3miner/version"
	"github.com/pkg/errors"
)

func main() {
	defer panics.HandlePanic(log, "main", nil)

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}

	err = initLog(filepath.Join(cfg.LogDir, defaultLogFilename), filepath.Join(cfg.LogDir, defaultErrLogFilename),
		cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing the logger: %s\n", err)
		os.Exit(1)
	}

	log.Infof("Version %s", version.Version())

	nonce, err := mine(cfg, signal.InterruptListener())
	if err != nil {
		log.Errorf("Mining failed: %+v", err)
		logger.BackendLog.Close()
		fmt.Fprintf(os.Stderr, "Error mining: %s\n", err)
		os.Exit(1)
	}

	logger.BackendLog.Close()
	fmt.Println(nonce)
}

// mine runs the search described by cfg until it finds a nonce, runs out of
// nonces, or interrupt is closed.
func mine(cfg *configFlags, interrupt <-chan struct{}) (uint64, error) {
	header, err := cfg.header()
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	spawn("interruptListener", func() {
		select {
		case <-interrupt:
			cancel()
		case <-ctx.Done():
		}
	})

	counter := &mining.HashCounter{}
	mining.LogHashRate(ctx, counter, cfg.HashRateInterval)
	defer logger.LogAndMeasureExecutionTime(log, "mine")()

	if cfg.Workers <= 1 {
		_, err = mining.MineWithContext(ctx, header, cfg.TargetDifficulty, cfg.MaxIterations, counter)
		if err != nil {
			return 0, err
		}
	} else {
		_, err = mining.MineParallel(ctx, header, cfg.TargetDifficulty, mining.ParallelConfig{
			Workers:                cfg.Workers,
			Strategy:               cfg.strategy(),
			MaxIterationsPerWorker: cfg.MaxIterations,
			HashCounter:            counter,
		})
		if err != nil {
			return 0, errors.Wrapf(err, "parallel search with %d workers failed", cfg.Workers)
		}
	}

	checkPowTarget(header)
	return header.Nonce, nil
}

// checkPowTarget reports whether the mined header also reaches the target
// recorded in its own proof-of-work, which --target may differ from.
func checkPowTarget(header *externalapi.BlockHeader) bool {
	if !pow.CheckProofOfWorkByTarget(header) {
		log.Warnf("Nonce %d does not reach the proof-of-work target difficulty %d",
			header.Nonce, header.Pow.TargetDifficulty)
		return false
	}
	log.Debugf("Nonce %d reaches the proof-of-work target difficulty %d",
		header.Nonce, header.Pow.TargetDifficulty)
	return true
}
