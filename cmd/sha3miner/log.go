package main

import (
	"github.com/kaspanet/sha3miner/infrastructure/logger"
	"github.com/kaspanet/sha3miner/util/panics"
)

var (
	log   = logger.RegisterSubSystem("S3MN")
	spawn = panics.GoroutineWrapperFunc(log)
)

func initLog(logFile, errLogFile, logLevel string) error {
	logger.InitLog(logFile, errLogFile)
	return logger.ParseAndSetLogLevels(logLevel)
}
