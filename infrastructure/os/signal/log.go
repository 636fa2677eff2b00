package signal

import (
	"github.com/kaspanet/sha3miner/infrastructure/logger"
)

var log = logger.RegisterSubSystem("SGNL")
