// main is the entry point for the tweetstats CLI.
package main

import (
	"github.com/huangsam/tweetstats/cmd"
	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/huangsam/tweetstats/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	iocache.CloseStores()

	if err != nil {
		contract.LogFatal("Cannot run tweetstats", err)
	}
}
