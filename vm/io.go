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

// Bus is the interface between an instance and the outside world.
//
// Read returns the next input value. It returns false if no value is available
// right now, in which case the instance suspends itself. Write outputs a value.
//
// A Bus may also implement an Err() error method. Execute calls it after a
// failed Read or after a Write and returns any non-nil error, wrapped.
type Bus interface {
	Read() (Cell, bool)
	Write(v Cell)
}

// Queue is a Bus backed by two FIFO queues. Values pushed by the caller are
// read by the VM, values written by the VM are popped by the caller.
//
// A Queue is not safe for concurrent use. It is meant for synchronous use
// where the caller alternates between feeding input, calling Execute and
// reading output.
type Queue struct {
	in  []Cell
	out []Cell
}

// NewQueue returns a new Queue with the given input values already queued.
func NewQueue(input ...Cell) *Queue {
	q := new(Queue)
	q.Extend(input...)
	return q
}

// Read implements Bus.
func (q *Queue) Read() (Cell, bool) {
	return pop(&q.in)
}

// Write implements Bus.
func (q *Queue) Write(v Cell) {
	q.out = append(q.out, v)
}

// Push queues one input value.
func (q *Queue) Push(v Cell) {
	q.in = append(q.in, v)
}

// Extend queues the given input values in order.
func (q *Queue) Extend(v ...Cell) {
	q.in = append(q.in, v...)
}

// Pop returns the oldest output value not yet popped. It returns false if
// there is none.
func (q *Queue) Pop() (Cell, bool) {
	return pop(&q.out)
}

// Drain returns all pending output values and clears the output queue.
func (q *Queue) Drain() []Cell {
	out := q.out
	q.out = nil
	return out
}

// Pending returns the number of input values not yet read by the VM.
func (q *Queue) Pending() int { return len(q.in) }

// Len returns the number of output values not yet popped.
func (q *Queue) Len() int { return len(q.out) }

func pop(s *[]Cell) (Cell, bool) {
	if len(*s) == 0 {
		return 0, false
	}
	v := (*s)[0]
	if len(*s) == 1 {
		*s = nil
	} else {
		*s = (*s)[1:]
	}
	return v, true
}
