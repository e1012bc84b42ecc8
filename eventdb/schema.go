// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// The (seq, eventIndex) key makes inserts idempotent, so replaying an
// already recorded operation is harmless.
const eventTableSchema = `
create table if not exists event (
	seq integer,
	eventIndex integer,
	eventTime integer,
	address blob(20),
	name text,
	account blob(20),
	amount blob,
	primary key (seq, eventIndex)
);

CREATE INDEX if not exists timeIndex on event(eventTime);
CREATE INDEX if not exists nameIndex on event(name);
CREATE INDEX if not exists accountIndex on event(account);
`
