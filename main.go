package main

import (
	"os"

	"github.com/awnumar/memguard"
	"github.com/superchain-meme/launchpad/config"
	"gopkg.in/urfave/cli.v1"
)

func main() {
	memguard.CatchInterrupt()
	defer memguard.Purge()

	app := cli.NewApp()
	app.Name = "github.com/superchain-meme/launchpad"
	app.Usage = "Superchain memecoin launchpad"
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Config file",
			Value: "config.json",
		},
	}
	app.Action = func(context *cli.Context) error {
		appConfig := config.LoadConfig(context.String("config"))
		return startServer(appConfig)
	}
	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
