// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import "github.com/demeterfi/demeter/demeter"

// guarded runs fn under the shared reentrancy flag: set on entry, cleared
// on every exit path, panics included. A nested call into any guarded
// entry point fails with ErrReentrant instead of proceeding.
func (p *Pool) guarded(fn func() error) error {
	entered, err := p.storage.getEntered()
	if err != nil {
		return err
	}
	if entered {
		return ErrReentrant
	}
	p.storage.setEntered(true)
	defer p.storage.setEntered(false)
	return fn()
}

// requireOwner rejects callers other than the registered owner. The zero
// address never authorizes.
func (p *Pool) requireOwner(caller demeter.Address) error {
	owner, err := p.roles.Owner()
	if err != nil {
		return err
	}
	if owner.IsZero() || owner != caller {
		return ErrUnauthorized
	}
	return nil
}

// requireDistributor rejects callers other than the registered distributor.
// The zero address never authorizes.
func (p *Pool) requireDistributor(caller demeter.Address) error {
	distributor, err := p.roles.Distributor()
	if err != nil {
		return err
	}
	if distributor.IsZero() || distributor != caller {
		return ErrUnauthorized
	}
	return nil
}
