// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"

	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/demeterfi/demeter/eventdb"
	"github.com/demeterfi/demeter/events"
	"github.com/demeterfi/demeter/node"
	"github.com/demeterfi/demeter/state"
)

const verifyBatch = 4096

// verifyEventsAction walks the whole event history and checks it is
// consistent with the ledger head: sequences within the head, ordered,
// indexes contiguous per operation, names and amounts well formed.
func verifyEventsAction(ctx *cli.Context) error {
	if err := applyConfigFile(ctx); err != nil {
		fatal(err)
	}
	initLogger(ctx)

	gene := selectGenesis(ctx)
	instanceDir := makeInstanceDir(ctx, gene)

	mainDB := openMainDB(ctx, instanceDir)
	defer mainDB.Close()

	db := openEventDB(instanceDir)
	defer db.Close()

	stater := state.NewStater(mainDB)
	initGenesis(gene, mainDB, stater)

	headSeq, _, err := node.New(stater, db, nil).Head()
	if err != nil {
		return err
	}
	total, err := db.Count(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(">> Verifying event db <<")
	bar := pb.New64(int64(total)).
		Set64(0).
		SetMaxWidth(90).
		Start()
	defer func() { bar.NotPrint = true }()

	known := map[string]bool{
		events.RewardAdded: true,
		events.Staked:      true,
		events.Withdrawn:   true,
		events.RewardPaid:  true,
	}

	var (
		checked  uint64
		lastSeq  uint64
		nextIdx  uint32
		finished bool
	)
	for !finished {
		stored, err := db.Filter(context.Background(), &eventdb.Filter{
			Options: &eventdb.Options{Offset: checked, Limit: verifyBatch},
		})
		if err != nil {
			return err
		}
		finished = uint64(len(stored)) < verifyBatch

		for _, ev := range stored {
			if ev.Seq > headSeq {
				return fmt.Errorf("event at seq %d beyond ledger head %d", ev.Seq, headSeq)
			}
			if ev.Seq < lastSeq {
				return fmt.Errorf("event order broken at seq %d after %d", ev.Seq, lastSeq)
			}
			if ev.Seq != lastSeq {
				lastSeq, nextIdx = ev.Seq, 0
			}
			if ev.Index != nextIdx {
				return fmt.Errorf("seq %d: event index %d, want %d", ev.Seq, ev.Index, nextIdx)
			}
			nextIdx++
			if !known[ev.Name] {
				return fmt.Errorf("seq %d: unknown event name %q", ev.Seq, ev.Name)
			}
			if ev.Amount == nil || ev.Amount.Sign() < 0 {
				return fmt.Errorf("seq %d: malformed amount", ev.Seq)
			}
			checked++
			bar.Set64(int64(checked))
		}
	}
	bar.Finish()

	fmt.Printf("Verified %d events across %d operations, all consistent.\n", checked, headSeq)
	return nil
}
