package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/sha3miner/domain/consensus/model/externalapi"
	"github.com/kaspanet/sha3miner/domain/mining"
	"github.com/kaspanet/sha3miner/infrastructure/logger"
	"github.com/kaspanet/sha3miner/version"
	"github.com/pkg/errors"
)

const (
	defaultLogFilename    = "sha3miner.log"
	defaultErrLogFilename = "sha3miner_err.log"
	defaultLogLevel       = "info"
	defaultTarget         = 5
	defaultHashRateLog    = 10 * time.Second
)

var defaultLogDir = filepath.Join(appDataDir(), "logs")

// HeaderFlags holds the fields of the header to mine. The defaults make up
// a small fixed header useful for trying the miner out.
type HeaderFlags struct {
	Version           uint32 `long:"headerversion" description:"Header version"`
	Height            uint64 `long:"height" description:"Block height"`
	Timestamp         uint64 `long:"timestamp" description:"Block timestamp"`
	PrevHash          string `long:"prevhash" description:"Hash of the previous block (hex, 32 bytes)"`
	OutputMR          string `long:"outputmr" description:"Output merkle root (hex, 32 bytes)"`
	RangeProofMR      string `long:"rangeproofmr" description:"Range proof merkle root (hex, 32 bytes)"`
	KernelMR          string `long:"kernelmr" description:"Kernel merkle root (hex, 32 bytes)"`
	TotalKernelOffset string `long:"totalkerneloffset" description:"Total kernel offset (hex, 32 bytes)"`
	PowAlgo           uint64 `long:"powalgo" description:"Proof-of-work algorithm identifier"`
	AccMoneroDiff     uint64 `long:"accmonerodiff" description:"Accumulated Monero difficulty"`
	AccBlakeDiff      uint64 `long:"accblakediff" description:"Accumulated Blake difficulty"`
	PowData           string `long:"powdata" description:"Algorithm specific proof-of-work data (hex)"`
	PowTarget         uint64 `long:"powtarget" description:"Target difficulty recorded in the proof-of-work"`
}

type configFlags struct {
	ShowVersion      bool          `short:"V" long:"version" description:"Display version information and exit"`
	LogDir           string        `long:"logdir" description:"Directory to log output"`
	LogLevel         string        `short:"d" long:"loglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	TargetDifficulty uint64        `short:"t" long:"target" description:"Difficulty the mined header must reach"`
	MaxIterations    uint64        `short:"n" long:"maxiterations" description:"Maximum number of nonces to try (per worker). 0 tries the whole nonce space"`
	Workers          int           `short:"w" long:"workers" description:"Number of mining goroutines. 0 or 1 runs the sequential search, which finds the smallest nonce"`
	Strategy         string        `long:"strategy" choice:"strided" choice:"random" description:"How workers split the nonce space"`
	HashRateInterval time.Duration `long:"hashrateinterval" description:"Interval between hash rate log entries"`
	HeaderFlags      `group:"Header Options"`
}

func defaultConfig() *configFlags {
	return &configFlags{
		LogDir:           defaultLogDir,
		LogLevel:         defaultLogLevel,
		TargetDifficulty: defaultTarget,
		Strategy:         mining.StrategyStrided.String(),
		HashRateInterval: defaultHashRateLog,
		HeaderFlags: HeaderFlags{
			Version:           2,
			Height:            3,
			Timestamp:         5,
			PrevHash:          hashStringWithFirstByte(4),
			OutputMR:          hashStringWithFirstByte(6),
			RangeProofMR:      hashStringWithFirstByte(7),
			KernelMR:          hashStringWithFirstByte(8),
			TotalKernelOffset: hashStringWithFirstByte(9),
			PowAlgo:           1,
			AccMoneroDiff:     2,
			AccBlakeDiff:      3,
			PowData:           "04",
			PowTarget:         5,
		},
	}
}

func parseConfig(args []string) (*configFlags, error) {
	cfg := defaultConfig()
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.ParseArgs(args)

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	if err != nil {
		return nil, err
	}

	if _, ok := logger.LevelFromString(cfg.LogLevel); !ok {
		return nil, errors.Errorf("invalid log level %s", cfg.LogLevel)
	}
	if cfg.Workers < 0 {
		return nil, errors.New("--workers cannot be negative")
	}
	if cfg.HashRateInterval <= 0 {
		return nil, errors.New("--hashrateinterval must be positive")
	}
	if _, err := cfg.header(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *configFlags) strategy() mining.Strategy {
	if cfg.Strategy == mining.StrategyRandomStart.String() {
		return mining.StrategyRandomStart
	}
	return mining.StrategyStrided
}

// header builds the header to mine. It is allocated before any field is set.
func (cfg *configFlags) header() (*externalapi.BlockHeader, error) {
	header := &externalapi.BlockHeader{
		Version:   cfg.Version,
		Height:    cfg.Height,
		Timestamp: cfg.Timestamp,
		Pow: externalapi.ProofOfWork{
			PowAlgo:                     cfg.PowAlgo,
			AccumulatedMoneroDifficulty: cfg.AccMoneroDiff,
			AccumulatedBlakeDifficulty:  cfg.AccBlakeDiff,
			TargetDifficulty:            cfg.PowTarget,
		},
	}

	hashFields := []struct {
		name  string
		value string
		field *externalapi.DomainHash
	}{
		{"prevhash", cfg.PrevHash, &header.PrevHash},
		{"outputmr", cfg.OutputMR, &header.OutputMR},
		{"rangeproofmr", cfg.RangeProofMR, &header.RangeProofMR},
		{"kernelmr", cfg.KernelMR, &header.KernelMR},
		{"totalkerneloffset", cfg.TotalKernelOffset, &header.TotalKernelOffset},
	}
	for _, hashField := range hashFields {
		if hashField.value == "" {
			continue
		}
		hash, err := externalapi.NewDomainHashFromString(hashField.value)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid --%s", hashField.name)
		}
		*hashField.field = *hash
	}

	powData, err := hex.DecodeString(cfg.PowData)
	if err != nil {
		return nil, errors.Wrap(err, "invalid --powdata")
	}
	header.Pow.PowData = powData

	return header, nil
}

func hashStringWithFirstByte(b byte) string {
	var hashBytes [externalapi.DomainHashSize]byte
	hashBytes[0] = b
	return hex.EncodeToString(hashBytes[:])
}

// appDataDir returns the directory the miner keeps its files in, falling
// back to the working directory when there is no home directory.
func appDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".sha3miner")
}
