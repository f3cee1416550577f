package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"walletengine/cmd/baselines"
	"walletengine/cmd/engine"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "Wallet Engine CMD"
	app.Usage = "The wallet engine command line interface"

	app.Commands = []cli.Command{
		engineCMD,
		baselinesCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	engineCMD = cli.Command{
		Name:        "engine",
		Usage:       "run the wallet execution scheduler",
		Action:      engineAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the wallet execution scheduler loop`,
	}
	baselinesCMD = cli.Command{
		Name:      "baselines",
		Usage:     "compute daily baselines",
		Action:    baselinesAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "symbols",
				Usage: "comma separated symbols, empty for every enabled symbol",
			},
			cli.StringFlag{
				Name:  "from",
				Usage: "first trading day (YYYY-MM-DD), empty for the previous trading day",
			},
			cli.StringFlag{
				Name:  "to",
				Usage: "last trading day (YYYY-MM-DD), defaults to --from",
			},
		},
		Description: `Compute and store daily baseline ratios, optionally backfilling a range`,
	}
)

func engineAction(_ *cli.Context) error {

	logrus.Info("Starting engine CMD")
	logrus.WithField("cmd", "engine")

	e := &engine.Engine{}
	err := e.Start()
	if err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}

func baselinesAction(c *cli.Context) error {

	logrus.Info("Starting baselines CMD")
	logrus.WithField("cmd", "baselines")

	b := &baselines.Baselines{
		Symbols: c.String("symbols"),
		From:    c.String("from"),
		To:      c.String("to"),
	}
	err := b.Start()
	if err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}
