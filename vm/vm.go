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

// Cell is the raw type stored in a memory location.
type Cell int64

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int  // Program Counter (aka. Instruction Pointer)
	RB       Cell // Relative base
	mem      *Memory
	bus      Bus
	halted   bool
	insCount int64
	memLimit int
	memSize  int
	input    []Cell
}

// Option interface
type Option func(*Instance) error

// BindBus sets the bus used by in and out instructions. The default is a new
// Queue.
func BindBus(b Bus) Option {
	return func(i *Instance) error {
		if b == nil {
			return errors.New("nil bus")
		}
		i.bus = b
		return nil
	}
}

// Input queues the given values as input. It works with any bus that has an
// Extend method, like Queue. Values from successive Input options are queued
// in order.
func Input(v ...Cell) Option {
	return func(i *Instance) error {
		i.input = append(i.input, v...)
		return nil
	}
}

// MemLimit sets the maximum memory size in cells. Accessing an address at or
// beyond the limit is a fatal error. The default is DefaultMemLimit.
func MemLimit(cells int) Option {
	return func(i *Instance) error {
		if cells <= 0 {
			return errors.Errorf("invalid memory limit %d", cells)
		}
		i.memLimit = cells
		return nil
	}
}

// MemSize pre-allocates memory so that it is at least the given number of
// cells long.
func MemSize(cells int) Option {
	return func(i *Instance) error {
		if cells < 0 {
			return errors.Errorf("invalid memory size %d", cells)
		}
		i.memSize = cells
		return nil
	}
}

type extender interface {
	Extend(v ...Cell)
}

// New creates a new Intcode VM instance.
//
// The program is copied into the instance's memory, so several instances can
// be created from the same program slice. Options are applied in order before
// the memory is set up.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		memLimit: DefaultMemLimit,
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if len(program) > i.memLimit || i.memSize > i.memLimit {
		return nil, errors.Wrapf(ErrMemoryLimit, "program size %d, memory size %d, limit %d", len(program), i.memSize, i.memLimit)
	}
	i.mem = NewMemory(program, i.memLimit)
	if i.memSize > i.mem.Len() {
		i.mem.grow(i.memSize - 1)
	}
	if i.bus == nil {
		i.bus = NewQueue()
	}
	if len(i.input) > 0 {
		e, ok := i.bus.(extender)
		if !ok {
			return nil, errors.Errorf("bus %T does not accept queued input", i.bus)
		}
		e.Extend(i.input...)
		i.input = nil
	}
	return i, nil
}

// Bus returns the instance's bus.
func (i *Instance) Bus() Bus { return i.bus }

// Queue returns the instance's bus if it is a Queue, nil otherwise.
func (i *Instance) Queue() *Queue {
	q, _ := i.bus.(*Queue)
	return q
}

// Mem returns the instance's memory.
func (i *Instance) Mem() *Memory { return i.mem }

// Halted returns true once the program has executed a hlt instruction. A
// halted instance cannot be resumed.
func (i *Instance) Halted() bool { return i.halted }

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// ReadCell returns the value of the memory cell at addr. Memory is extended
// as needed.
func (i *Instance) ReadCell(addr int) (Cell, error) {
	return i.mem.Load(Cell(addr))
}

// WriteCell sets the value of the memory cell at addr. Memory is extended as
// needed. It is typically used to patch a program before running it.
func (i *Instance) WriteCell(addr int, v Cell) error {
	return i.mem.Store(Cell(addr), v)
}

// Run pushes in on the instance's Queue, executes the program and returns the
// first value it output. It is meant for programs that produce exactly one
// value per input.
func (i *Instance) Run(in Cell) (Cell, error) {
	q := i.Queue()
	if q == nil {
		return 0, errors.Errorf("Run: bus %T is not a Queue", i.bus)
	}
	q.Push(in)
	if err := i.Execute(); err != nil {
		return 0, err
	}
	v, ok := q.Pop()
	if !ok {
		return 0, errors.Wrapf(ErrNoOutput, "Run: pc=%d", i.PC)
	}
	return v, nil
}
