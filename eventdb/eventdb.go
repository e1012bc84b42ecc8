// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb persists pool events to SQLite, keyed by the sequence
// of the operation that emitted them. Events are written only after the
// operation committed, so the store never sees output of an aborted call.
package eventdb

import (
	"context"
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/demeterfi/demeter/demeter"
)

// EventDB is the SQLite-backed event history.
type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New creates or opens the event db at the given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &EventDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem creates the event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Close closes the event db.
func (db *EventDB) Close() {
	db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

// Insert stores events in one transaction. Re-inserting events of an
// already recorded sequence overwrites them in place.
func (db *EventDB) Insert(events []*StoredEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, event := range events {
		if _, err := tx.Exec("INSERT OR REPLACE INTO event(seq, eventIndex, eventTime, address, name, account, amount) VALUES (?, ?, ?, ?, ?, ?, ?);",
			event.Seq,
			event.Index,
			event.Time,
			event.Address.Bytes(),
			event.Name,
			accountValue(event.Account),
			event.Amount.Bytes(),
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Filter returns stored events matching the filter, all of them when the
// filter is nil.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*StoredEvent, error) {
	if filter == nil {
		return db.query(ctx, "SELECT * FROM event ORDER BY seq ASC, eventIndex ASC")
	}
	var args []interface{}
	stmt := "SELECT * FROM event WHERE 1"
	condition := "seq"
	if filter.Range != nil {
		if filter.Range.Unit == Time {
			condition = "eventTime"
		}
		args = append(args, filter.Range.From)
		stmt += " AND " + condition + " >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND " + condition + " <= ? "
		}
	}
	length := len(filter.CriteriaSet)
	if length > 0 {
		for i, criteria := range filter.CriteriaSet {
			if i == 0 {
				stmt += " AND (( 1 "
			} else {
				stmt += " OR ( 1 "
			}
			if criteria.Name != "" {
				args = append(args, criteria.Name)
				stmt += " AND name = ? "
			}
			if criteria.Account != nil {
				args = append(args, criteria.Account.Bytes())
				stmt += " AND account = ? "
			}
			if i == length-1 {
				stmt += " )) "
			} else {
				stmt += " ) "
			}
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC, eventIndex DESC "
	} else {
		stmt += " ORDER BY seq ASC, eventIndex ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

// MaxSeq returns the highest recorded operation sequence, zero when the
// store is empty. Sequences start at one, so zero is unambiguous.
func (db *EventDB) MaxSeq(ctx context.Context) (uint64, error) {
	row := db.db.QueryRowContext(ctx, "SELECT ifnull(max(seq), 0) FROM event")
	var seq uint64
	if err := row.Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

// Count returns the number of stored events.
func (db *EventDB) Count(ctx context.Context) (uint64, error) {
	row := db.db.QueryRowContext(ctx, "SELECT count(*) FROM event")
	var n uint64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...interface{}) ([]*StoredEvent, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stored []*StoredEvent
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq       uint64
			index     uint32
			eventTime uint64
			address   []byte
			name      string
			account   []byte
			amount    []byte
		)
		if err := rows.Scan(
			&seq,
			&index,
			&eventTime,
			&address,
			&name,
			&account,
			&amount,
		); err != nil {
			return nil, err
		}
		event := &StoredEvent{
			Seq:     seq,
			Index:   index,
			Time:    eventTime,
			Address: demeter.BytesToAddress(address),
			Name:    name,
			Amount:  new(big.Int).SetBytes(amount),
		}
		if len(account) > 0 {
			a := demeter.BytesToAddress(account)
			event.Account = &a
		}
		stored = append(stored, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stored, nil
}

func accountValue(account *demeter.Address) []byte {
	if account == nil {
		return nil
	}
	return account.Bytes()
}
