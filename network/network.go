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

// Package network runs several Intcode VM instances concurrently, connected in
// a chain or in a feedback ring.
//
// Each instance runs on its own goroutine and talks to its neighbours through
// buffered channels. Reads time out after a configurable delay: a ring where
// every instance waits for input would otherwise block forever, so a timeout
// while some instance has not halted is reported as a *DeadlockError.
package network

import (
	"context"
	"fmt"
	"time"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("intcode.network")

// Default option values.
const (
	DefaultTimeout      = time.Second
	DefaultLinkCapacity = 64
)

var (
	// ErrDeadlock is the cause of all DeadlockError values.
	ErrDeadlock = errors.New("deadlock")
	// ErrNoSignal is returned by Run if the last instance did not output anything.
	ErrNoSignal = errors.New("no output from last instance")
)

// DeadlockError is returned when an instance waits for input, or for room on
// its output link, for longer than the configured timeout.
type DeadlockError struct {
	Index   int
	Timeout time.Duration
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("instance %d: blocked for %v: %v", e.Index, e.Timeout, ErrDeadlock)
}

// Cause returns ErrDeadlock.
func (e *DeadlockError) Cause() error { return ErrDeadlock }

// Unwrap returns ErrDeadlock.
func (e *DeadlockError) Unwrap() error { return ErrDeadlock }

// Option interface
type Option func(*Network) error

// Feedback connects the output of the last instance to the input of the first
// one.
func Feedback(on bool) Option {
	return func(n *Network) error {
		n.feedback = on
		return nil
	}
}

// Seed sets the initial value sent to the first instance after its phase.
// Defaults to 0.
func Seed(v vm.Cell) Option {
	return func(n *Network) error {
		n.seed = v
		return nil
	}
}

// Timeout sets the maximum time an instance waits on a link.
func Timeout(d time.Duration) Option {
	return func(n *Network) error {
		if d <= 0 {
			return errors.Errorf("invalid timeout %v", d)
		}
		n.timeout = d
		return nil
	}
}

// LinkCapacity sets the number of values a link can hold. The first link must
// hold a phase and the seed value, so the minimum capacity is 2.
func LinkCapacity(size int) Option {
	return func(n *Network) error {
		if size < 2 {
			return errors.Errorf("invalid link capacity %d", size)
		}
		n.capacity = size
		return nil
	}
}

// VMOptions sets options passed to vm.New when creating instances.
func VMOptions(opts ...vm.Option) Option {
	return func(n *Network) error {
		n.vmOpts = append(n.vmOpts, opts...)
		return nil
	}
}

// Network is a set of instances of the same program, each configured with
// its own phase setting.
type Network struct {
	program  []vm.Cell
	phases   []vm.Cell
	feedback bool
	seed     vm.Cell
	timeout  time.Duration
	capacity int
	vmOpts   []vm.Option
}

// New returns a network running one instance of program per phase value.
func New(program []vm.Cell, phases []vm.Cell, opts ...Option) (*Network, error) {
	if len(phases) == 0 {
		return nil, errors.New("network.New: no phases")
	}
	n := &Network{
		program:  program,
		phases:   append([]vm.Cell(nil), phases...),
		timeout:  DefaultTimeout,
		capacity: DefaultLinkCapacity,
	}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, errors.Wrap(err, "network.New")
		}
	}
	return n, nil
}

// Len returns the number of instances in the network.
func (n *Network) Len() int { return len(n.phases) }

// Run starts one instance per phase, waits until all of them have halted, and
// returns the last value written by the last instance. Instances are created
// afresh on each call.
//
// The first error encountered cancels the whole run. Errors from instances
// are wrapped with the instance index. A *DeadlockError can be retrieved with
// errors.As.
func (n *Network) Run(ctx context.Context) (vm.Cell, error) {
	g, ctx := errgroup.WithContext(ctx)
	links := make([]chan vm.Cell, len(n.phases))
	for k := range links {
		links[k] = make(chan vm.Cell, n.capacity)
		links[k] <- n.phases[k]
	}
	links[0] <- n.seed

	// done[k] is closed when instance k stops reading links[k].
	done := make([]chan struct{}, len(n.phases))
	for k := range done {
		done[k] = make(chan struct{})
	}
	buses := make([]*link, len(n.phases))
	for k := range buses {
		buses[k] = &link{ctx: ctx, index: k, in: links[k], timeout: n.timeout}
		switch {
		case k < len(links)-1:
			buses[k].out, buses[k].outDone = links[k+1], done[k+1]
		case n.feedback:
			buses[k].out, buses[k].outDone = links[0], done[0]
		}
	}

	insts := make([]*vm.Instance, len(buses))
	for k := range buses {
		var err error
		opts := append(n.vmOpts[:len(n.vmOpts):len(n.vmOpts)], vm.BindBus(buses[k]))
		if insts[k], err = vm.New(n.program, opts...); err != nil {
			return 0, errors.Wrapf(err, "instance %d", k)
		}
	}
	for k, i := range insts {
		k, i := k, i
		g.Go(func() error {
			defer close(done[k])
			return run(k, i)
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	last := buses[len(buses)-1]
	if !last.wrote {
		return 0, ErrNoSignal
	}
	log.Debugf("phases %v: signal %d", n.phases, last.last)
	return last.last, nil
}

func run(k int, i *vm.Instance) error {
	log.Debugf("instance %d: start", k)
	for !i.Halted() {
		if err := i.Execute(); err != nil {
			var dl *DeadlockError
			if errors.As(err, &dl) {
				log.Warningf("instance %d: %v", k, err)
			}
			return errors.Wrapf(err, "instance %d", k)
		}
	}
	log.Debugf("instance %d: halted after %d instructions", k, i.InstructionCount())
	return nil
}
