// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import "github.com/pkg/errors"

// DefaultMemLimit is the default maximum number of cells an instance's memory
// can grow to.
const DefaultMemLimit = 1 << 24

// Memory is the auto-extending memory of a VM instance. Any access at address
// a makes sure that the memory is at least a+1 cells long, filling new cells
// with 0. Memory never shrinks.
type Memory struct {
	cells []Cell
	limit int
}

// NewMemory returns a Memory holding a copy of the given program. A limit <= 0
// selects DefaultMemLimit.
func NewMemory(program []Cell, limit int) *Memory {
	if limit <= 0 {
		limit = DefaultMemLimit
	}
	m := &Memory{
		cells: make([]Cell, len(program)),
		limit: limit,
	}
	copy(m.cells, program)
	return m
}

// Len returns the current memory size in cells.
func (m *Memory) Len() int { return len(m.cells) }

// Cells returns a copy of the memory contents.
func (m *Memory) Cells() []Cell {
	c := make([]Cell, len(m.cells))
	copy(c, m.cells)
	return c
}

// Load returns the value at address addr.
func (m *Memory) Load(addr Cell) (v Cell, err error) {
	if err = m.check(addr); err != nil {
		return 0, err
	}
	return m.load(addr), nil
}

// Store sets the value at address addr.
func (m *Memory) Store(addr, v Cell) error {
	if err := m.check(addr); err != nil {
		return err
	}
	m.store(addr, v)
	return nil
}

func (m *Memory) check(addr Cell) error {
	switch {
	case addr < 0:
		return errors.Wrapf(ErrNegativeAddress, "address %d", addr)
	case addr >= Cell(m.limit):
		return errors.Wrapf(ErrMemoryLimit, "address %d, limit %d", addr, m.limit)
	}
	return nil
}

// grow extends the memory so that addr is a valid index. The caller must have
// checked addr.
func (m *Memory) grow(addr int) {
	n := len(m.cells)
	if cap(m.cells) > addr {
		m.cells = m.cells[:addr+1]
	} else {
		c := 2 * cap(m.cells)
		if c <= addr {
			c = addr + 1
		}
		if c > m.limit {
			c = m.limit
		}
		t := make([]Cell, addr+1, c)
		copy(t, m.cells)
		m.cells = t
	}
	clear(m.cells[n:])
}

// load and store panic with an addrError on bad addresses. They are used by
// the interpreter loop, which recovers.
func (m *Memory) load(addr Cell) Cell {
	if addr < 0 || addr >= Cell(m.limit) {
		panic(m.addrError(addr))
	}
	if int(addr) >= len(m.cells) {
		m.grow(int(addr))
	}
	return m.cells[addr]
}

func (m *Memory) store(addr, v Cell) {
	if addr < 0 || addr >= Cell(m.limit) {
		panic(m.addrError(addr))
	}
	if int(addr) >= len(m.cells) {
		m.grow(int(addr))
	}
	m.cells[addr] = v
}

func (m *Memory) addrError(addr Cell) addrError {
	if addr < 0 {
		return addrError{addr, ErrNegativeAddress}
	}
	return addrError{addr, ErrMemoryLimit}
}
