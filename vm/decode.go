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
	"strings"

	"github.com/pkg/errors"
)

// Mode is a parameter mode.
type Mode uint8

// Parameter modes.
const (
	Position Mode = iota
	Immediate
	Relative
)

// MaxModes is the number of mode digits extracted from an instruction.
const MaxModes = 4

// MaxParams is the largest parameter count of any instruction.
const MaxParams = 3

var modePrefix = [...]string{Position: "", Immediate: "#", Relative: "@"}

// Param is an instruction parameter: a raw value from the instruction stream
// tagged with its mode.
type Param struct {
	Mode  Mode
	Value Cell
}

func (p Param) String() string {
	if int(p.Mode) < len(modePrefix) {
		return modePrefix[p.Mode] + strconv.FormatInt(int64(p.Value), 10)
	}
	return "?" + strconv.FormatInt(int64(p.Value), 10)
}

// Instruction is a fully decoded instruction.
type Instruction struct {
	Op     Opcode
	Params [MaxParams]Param
}

// Len returns the instruction length in cells, opcode included.
func (in *Instruction) Len() int { return 1 + in.Op.Arity() }

func (in *Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Op.String())
	for i := 0; i < in.Op.Arity(); i++ {
		b.WriteByte(' ')
		b.WriteString(in.Params[i].String())
	}
	return b.String()
}

// DecodeOp splits the raw instruction value v into its opcode and parameter
// modes. Absent mode digits default to Position. It returns an error if the
// opcode is unknown, if the mode digit of one of its parameters is invalid, or
// if the parameter that the instruction writes to is in Immediate mode.
func DecodeOp(v Cell) (op Opcode, modes [MaxModes]Mode, err error) {
	if v < 0 {
		return 0, modes, ErrUnknownOpcode
	}
	op = Opcode(v % 100)
	if !op.Valid() {
		return op, modes, ErrUnknownOpcode
	}
	d := v / 100
	for k := range modes {
		m := Mode(d % 10)
		if m > Relative && k < op.Arity() {
			return op, modes, errors.Wrapf(ErrBadMode, "digit %d of parameter %d", m, k+1)
		}
		modes[k] = m
		d /= 10
	}
	if w := op.WriteParam(); w >= 0 && modes[w] == Immediate {
		return op, modes, ErrImmediateWrite
	}
	return op, modes, nil
}

// decode decodes the instruction at i.PC. It panics on malformed instructions.
func (i *Instance) decode(in *Instruction) {
	raw := i.mem.load(Cell(i.PC))
	op, modes, err := DecodeOp(raw)
	if err != nil {
		panic(err)
	}
	in.Op = op
	for k := 0; k < op.Arity(); k++ {
		in.Params[k] = Param{modes[k], i.mem.load(Cell(i.PC + 1 + k))}
	}
}

// addr resolves a Position or Relative parameter into an address.
func (i *Instance) addr(p Param) Cell {
	if p.Mode == Relative {
		return i.RB + p.Value
	}
	return p.Value
}

// read returns the operand designated by p.
func (i *Instance) read(p Param) Cell {
	if p.Mode == Immediate {
		return p.Value
	}
	return i.mem.load(i.addr(p))
}

// write stores v at the address designated by p. Immediate parameters have
// been rejected by DecodeOp.
func (i *Instance) write(p Param, v Cell) {
	i.mem.store(i.addr(p), v)
}
