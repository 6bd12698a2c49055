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

package network

import (
	"context"
	"time"

	"github.com/db47h/intcode/vm"
)

// link is the bus of a network instance. It reads from the channel fed by the
// previous instance and writes to the one read by the next. A nil out channel
// discards values, and so does a closed outDone once the next instance has
// stopped.
type link struct {
	ctx     context.Context
	index   int
	in      <-chan vm.Cell
	out     chan<- vm.Cell
	outDone <-chan struct{}
	timeout time.Duration
	last    vm.Cell
	wrote   bool
	err     error
}

func (l *link) Read() (vm.Cell, bool) {
	t := time.NewTimer(l.timeout)
	defer t.Stop()
	select {
	case v := <-l.in:
		return v, true
	case <-t.C:
		l.err = &DeadlockError{Index: l.index, Timeout: l.timeout}
	case <-l.ctx.Done():
		l.err = l.ctx.Err()
	}
	return 0, false
}

func (l *link) Write(v vm.Cell) {
	l.last, l.wrote = v, true
	if l.out == nil {
		return
	}
	select {
	case l.out <- v:
		return
	case <-l.outDone:
		return
	default:
	}
	t := time.NewTimer(l.timeout)
	defer t.Stop()
	select {
	case l.out <- v:
	case <-l.outDone:
	case <-t.C:
		l.err = &DeadlockError{Index: l.index, Timeout: l.timeout}
	case <-l.ctx.Done():
		l.err = l.ctx.Err()
	}
}

func (l *link) Err() error { return l.err }
