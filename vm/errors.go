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

import (
	"strconv"

	"github.com/pkg/errors"
)

// Errors reported by the VM. Use errors.Cause on an error returned by Execute
// to compare it against these values.
var (
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrBadMode         = errors.New("invalid parameter mode")
	ErrImmediateWrite  = errors.New("write to immediate mode parameter")
	ErrNegativeAddress = errors.New("negative address")
	ErrMemoryLimit     = errors.New("memory limit exceeded")
	ErrOverflow        = errors.New("integer overflow")
	ErrHalted          = errors.New("instance halted")
	ErrNoOutput        = errors.New("no output")
)

// Error is the error type returned by Execute for malformed programs. It
// records the program counter and raw value of the offending instruction.
type Error struct {
	PC  int
	Raw Cell
	Err error
}

func (e *Error) Error() string {
	return "pc=" + strconv.Itoa(e.PC) + " (" + strconv.FormatInt(int64(e.Raw), 10) + "): " + e.Err.Error()
}

// Cause implements the causer interface of github.com/pkg/errors.
func (e *Error) Cause() error { return e.Err }

// Unwrap allows the standard library errors package to see through Error.
func (e *Error) Unwrap() error { return e.Err }

// addrError is what memory accessors panic with. Execute turns it into an
// *Error once the program counter is known.
type addrError struct {
	addr Cell
	err  error
}

func (e addrError) Error() string {
	return e.err.Error() + " " + strconv.FormatInt(int64(e.addr), 10)
}
