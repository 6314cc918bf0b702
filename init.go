package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/inconshreveable/log15"
	"github.com/superchain-meme/launchpad/chain/ethereum"
	"github.com/superchain-meme/launchpad/config"
	"github.com/superchain-meme/launchpad/core"
	"github.com/superchain-meme/launchpad/db/memory"
	"github.com/superchain-meme/launchpad/server"
)

func initLogger(verbosity int) {
	var handler log.Handler
	logLvl := log.Lvl(verbosity)
	if runtime.GOOS == "windows" {
		handler = log.LvlFilterHandler(logLvl, log.StreamHandler(os.Stdout, log.LogfmtFormat()))
	} else {
		handler = log.LvlFilterHandler(logLvl, log.StreamHandler(os.Stderr, log.TerminalFormat()))
	}
	log.Root().SetHandler(handler)
}

func startServer(appConfig *config.Config) error {
	initLogger(appConfig.Verbosity)
	launchpad, err := initLaunchpad(appConfig)
	if err != nil {
		log.Error(fmt.Sprintf("Unable to start launchpad: %v", err))
		return err
	}
	server.NewServer(appConfig.Server.Port, launchpad).Start()
	return nil
}

func initLaunchpad(appConfig *config.Config) (core.Launchpad, error) {
	deployer, err := initDeployer(appConfig)
	if err != nil {
		return nil, err
	}
	return core.NewLaunchpad(memory.NewAccessor(), deployer), nil
}

func initDeployer(appConfig *config.Config) (core.Deployer, error) {
	wallet, err := ethereum.Dial(appConfig.Chain.RpcUrl, appConfig.Chain.PrivateKey)
	if err != nil {
		return nil, err
	}
	launchpadAddress := common.HexToAddress(appConfig.Chain.LaunchpadAddress)
	log.Info(fmt.Sprintf("Launchpad contract: %v, network: %v", launchpadAddress.Hex(), appConfig.Chain.Network))
	return core.NewDeployer(wallet, launchpadAddress, appConfig.Chain.Network), nil
}
