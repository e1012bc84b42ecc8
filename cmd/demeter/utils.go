// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/elastic/gosigar"
	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/demeterfi/demeter/co"
	"github.com/demeterfi/demeter/eventdb"
	"github.com/demeterfi/demeter/genesis"
	"github.com/demeterfi/demeter/kv"
	"github.com/demeterfi/demeter/log"
	"github.com/demeterfi/demeter/lvldb"
	"github.com/demeterfi/demeter/state"
)

func fatal(args ...interface{}) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".demeter")
	}
	return ""
}

func initLogger(ctx *cli.Context) {
	logLevel := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	var level slog.LevelVar
	level.Set(logLevel)

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, &level)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd())
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func selectGenesis(ctx *cli.Context) *genesis.Genesis {
	network := ctx.String(networkFlag.Name)
	switch network {
	case "":
		cli.ShowAppHelp(ctx)
		fmt.Println("network flag not specified")
		os.Exit(1)
		return nil
	case "devnet":
		return genesis.NewDevnet()
	default:
		file, err := os.Open(network)
		if err != nil {
			fatal(fmt.Sprintf("open genesis file: %v", err))
		}
		defer file.Close()

		decoder := json.NewDecoder(file)
		decoder.DisallowUnknownFields()

		var gen genesis.CustomGenesis
		if err := decoder.Decode(&gen); err != nil {
			fatal(fmt.Sprintf("decode genesis file: %v", err))
		}

		customGen, err := genesis.NewCustomNet(&gen)
		if err != nil {
			fatal(fmt.Sprintf("build genesis: %v", err))
		}
		return customGen
	}
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}

	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		fatal(fmt.Sprintf("create instance dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func openMainDB(ctx *cli.Context, instanceDir string) *lvldb.LevelDB {
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	dir := filepath.Join(instanceDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize: cacheMB,
	})
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", dir, err))
	}
	return db
}

func openEventDB(instanceDir string) *eventdb.EventDB {
	dir := filepath.Join(instanceDir, "events.db")
	db, err := eventdb.New(dir)
	if err != nil {
		fatal(fmt.Sprintf("open event database [%v]: %v", dir, err))
	}
	return db
}

// node-level properties live in their own bucket, out of the way of the
// ledger state keys.
const propsBucket = kv.Bucket("props-")

var genesisIDKey = []byte("genesis-id")

// initGenesis builds the genesis state on a fresh store and verifies the
// recorded identity on an existing one.
func initGenesis(gene *genesis.Genesis, store *lvldb.LevelDB, stater *state.Stater) {
	props := propsBucket.NewStore(store)
	stored, err := props.Get(genesisIDKey)
	if err != nil {
		if !props.IsNotFound(err) {
			fatal(fmt.Sprintf("read genesis id: %v", err))
		}
		id, err := gene.Build(stater)
		if err != nil {
			fatal(fmt.Sprintf("build genesis: %v", err))
		}
		if err := props.Put(genesisIDKey, id.Bytes()); err != nil {
			fatal(fmt.Sprintf("write genesis id: %v", err))
		}
		logger.Info("genesis built", "network", gene.Name(), "id", id)
		return
	}
	if !bytes.Equal(stored, gene.ID().Bytes()) {
		fatal(fmt.Sprintf("store was initialized with a different genesis (stored %x, want %v)", stored, gene.ID()))
	}
}

func startAPIServer(ctx *cli.Context, handler http.Handler) (string, func()) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen API addr [%v]: %v", addr, err))
	}

	srv := &http.Server{Handler: handler}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Shutdown(context.Background())
		goes.Wait()
	}
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(gene *genesis.Genesis, instanceDir, apiURL string) {
	fmt.Printf(`Starting %v
    Network     [ %v %v ]
    Instance    [ %v ]
    API portal  [ %v ]
`,
		"Demeter",
		gene.Name(), gene.ID(),
		instanceDir,
		apiURL)
}
