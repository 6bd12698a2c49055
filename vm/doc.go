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

// Package vm implements an Intcode virtual machine.
//
// An Intcode program is a list of signed integers. The VM reads the
// instruction at the program counter, splits it into an opcode (the two
// lowest decimal digits) and four parameter mode digits (the next digits,
// lowest first), executes it and moves on to the next instruction. An
// instruction takes at most three parameters; mode digits past its arity are
// decoded but never checked.
// Memory grows on demand: any address past the end of the loaded program
// reads as 0 and can be written to.
//
// Supported instructions:
//
//	opcode	asm	params	description
//	------	---	------	----------------------------------------------------
//	1	add	a b c	c = a + b
//	2	mul	a b c	c = a * b
//	3	in	a	read a value from the bus and store it in a
//	4	out	a	write a to the bus
//	5	jt	a b	jump to b if a != 0
//	6	jf	a b	jump to b if a == 0
//	7	lt	a b c	c = 1 if a < b, else 0
//	8	eq	a b c	c = 1 if a == b, else 0
//	9	arb	a	adjust the relative base by a
//	99	hlt		halt
//
// Parameter modes are 0 (position: the parameter is an address), 1
// (immediate: the parameter is the value) and 2 (relative: the parameter is
// an offset from the relative base). Parameters that are written to cannot be
// in immediate mode.
//
// All communication with the outside world goes through a Bus. When an in
// instruction finds no value on the bus, Execute returns without touching the
// program counter and the VM is said to be suspended; calling Execute again
// retries the same instruction. Callers tell suspension and completion apart
// with Halted. The default bus is a Queue; the Text bus talks to a pair of
// byte streams, and package network connects several instances through
// channels.
//
// Add, mul and arb are checked for signed 64 bits overflow, which is reported
// as a fatal error rather than silently wrapped.
package vm
