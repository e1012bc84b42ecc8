// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/demeterfi/demeter/api"
	"github.com/demeterfi/demeter/co"
	"github.com/demeterfi/demeter/eventdb"
	"github.com/demeterfi/demeter/log"
	"github.com/demeterfi/demeter/metrics"
	"github.com/demeterfi/demeter/node"
	"github.com/demeterfi/demeter/state"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Demeter",
		Usage:     "Node of the Demeter staking pool ledger",
		Copyright: "2025 The Demeter developers",
		Flags: []cli.Flag{
			networkFlag,
			dataDirFlag,
			configFileFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiEventsLimitFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			disableEventsFlag,
			verbosityFlag,
			jsonLogsFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "verify-events",
				Usage: "verify the event history against the ledger head",
				Flags: []cli.Flag{
					networkFlag,
					dataDirFlag,
					cacheFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: verifyEventsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	if err := applyConfigFile(ctx); err != nil {
		fatal(err)
	}
	initLogger(ctx)

	gene := selectGenesis(ctx)
	instanceDir := makeInstanceDir(ctx, gene)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	mainDB := openMainDB(ctx, instanceDir)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	var db *eventdb.EventDB
	if !ctx.Bool(disableEventsFlag.Name) {
		db = openEventDB(instanceDir)
		defer func() { logger.Info("closing event database..."); db.Close() }()
	}

	stater := state.NewStater(mainDB)
	initGenesis(gene, mainDB, stater)

	nd := node.New(stater, db, nil)

	handler := api.New(nd, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EventsLimit:     ctx.Uint64(apiEventsLimitFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	apiURL, closeAPI := startAPIServer(ctx, handler)
	defer func() { logger.Info("stopping API server..."); closeAPI() }()

	printStartupMessage(gene, instanceDir, apiURL)

	exitCtx := handleExitSignal()
	var goes co.Goes
	goes.Go(func() { houseKeeping(exitCtx) })

	<-exitCtx.Done()
	goes.Wait()
	return nil
}
