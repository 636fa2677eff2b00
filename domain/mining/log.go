package mining

import (
	"github.com/kaspanet/sha3miner/infrastructure/logger"
	"github.com/kaspanet/sha3miner/util/panics"
)

var log = logger.RegisterSubSystem("MINR")
var spawn = panics.GoroutineWrapperFunc(log)
