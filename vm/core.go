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
	"math"

	"github.com/pkg/errors"
)

type errorer interface {
	Err() error
}

// Execute runs the program until it either halts or tries to read from an
// empty bus. In the latter case the program counter still points to the in
// instruction and a subsequent call to Execute will retry it. Use Halted to
// tell both conditions apart.
//
// If an error occurs, the PC will point to the instruction that triggered it
// and the error will be an *Error. Errors reported by the bus (see Text) are
// returned wrapped and do not leave the instance in an inconsistent state.
//
// Calling Execute on a halted instance returns ErrHalted.
func (i *Instance) Execute() (err error) {
	if i.halted {
		return errors.Wrapf(ErrHalted, "pc=%d", i.PC)
	}
	defer func() {
		if e := recover(); e != nil {
			var cause error
			switch e := e.(type) {
			case addrError:
				cause = errors.Wrapf(e.err, "address %d", e.addr)
			case error:
				cause = e
			default:
				panic(e)
			}
			var raw Cell
			if i.PC >= 0 && i.PC < i.mem.Len() {
				raw = i.mem.cells[i.PC]
			}
			err = &Error{PC: i.PC, Raw: raw, Err: cause}
		}
	}()
	var in Instruction
	p := &in.Params
	for {
		i.decode(&in)
		switch in.Op {
		case OpAdd:
			i.write(p[2], add(i.read(p[0]), i.read(p[1])))
		case OpMul:
			i.write(p[2], mul(i.read(p[0]), i.read(p[1])))
		case OpIn:
			v, ok := i.bus.Read()
			if !ok {
				return i.busErr()
			}
			i.write(p[0], v)
		case OpOut:
			i.bus.Write(i.read(p[0]))
			if err = i.busErr(); err != nil {
				i.PC += in.Len()
				i.insCount++
				return err
			}
		case OpJumpIfTrue:
			if i.read(p[0]) != 0 {
				i.PC = int(i.read(p[1]))
				i.insCount++
				continue
			}
		case OpJumpIfFalse:
			if i.read(p[0]) == 0 {
				i.PC = int(i.read(p[1]))
				i.insCount++
				continue
			}
		case OpLessThan:
			i.write(p[2], bool2Cell(i.read(p[0]) < i.read(p[1])))
		case OpEquals:
			i.write(p[2], bool2Cell(i.read(p[0]) == i.read(p[1])))
		case OpAdjustBase:
			i.RB = add(i.RB, i.read(p[0]))
		case OpHalt:
			i.halted = true
			i.insCount++
			return nil
		}
		i.PC += in.Len()
		i.insCount++
	}
}

func (i *Instance) busErr() error {
	if b, ok := i.bus.(errorer); ok {
		if err := b.Err(); err != nil {
			return errors.Wrapf(err, "bus error @pc=%d", i.PC)
		}
	}
	return nil
}

func bool2Cell(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

func add(a, b Cell) Cell {
	c := a + b
	if (c > a) != (b > 0) {
		panic(errors.Wrapf(ErrOverflow, "%d + %d", a, b))
	}
	return c
}

func mul(a, b Cell) Cell {
	if a == 0 || b == 0 {
		return 0
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		panic(errors.Wrapf(ErrOverflow, "%d * %d", a, b))
	}
	return c
}
