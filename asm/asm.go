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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
)

var aliases = map[string]vm.Opcode{
	"jnz":  vm.OpJumpIfTrue,
	"jz":   vm.OpJumpIfFalse,
	"rb":   vm.OpAdjustBase,
	"halt": vm.OpHalt,
}

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for _, op := range vm.Opcodes() {
		opcodeIndex[op.String()] = op
	}
	for n, op := range aliases {
		opcodeIndex[n] = op
	}
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (prog []vm.Cell, err error) {
	p := newParser()
	err = p.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return p.i[:p.size], nil
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not decode to a valid instruction, or instructions truncated
// by the end of the slice, are written as a .dat directive and the returned
// position is pc+1.
func Disassemble(code []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := iox.NewErrWriter(w)
	raw := code[pc]
	op, modes, e := vm.DecodeOp(raw)
	n := op.Arity()
	if e != nil || pc+n >= len(code) {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(raw), 10))
		return pc + 1, ew.Err
	}
	in := vm.Instruction{Op: op}
	for k := 0; k < n; k++ {
		in.Params[k] = vm.Param{Mode: modes[k], Value: code[pc+1+k]}
	}
	io.WriteString(ew, in.String())
	return pc + 1 + n, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// frist cell (i[0]). It will return any write error.
func DisassembleAll(code []vm.Cell, base int, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	for pc := 0; pc < len(code); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(code, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
