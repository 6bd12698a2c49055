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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm	alias	operands	description
//	------	---	-----	--------	-------------------------------------------------
//	1	add		a b c		c = a + b
//	2	mul		a b c		c = a * b
//	3	in		a		read one value from the bus and store it in a
//	4	out		a		write a to the bus
//	5	jt	jnz	a b		jump to b if a != 0
//	6	jf	jz	a b		jump to b if a == 0
//	7	lt		a b c		c = 1 if a < b, else 0
//	8	eq		a b c		c = 1 if a == b, else 0
//	9	arb	rb	a		add a to the relative base
//	99	hlt	halt			halt
//
// Operands:
//
// An operand is a value with an optional mode prefix:
//
//	n	position mode: the value at address n
//	#n	immediate mode: n itself
//	@n	relative mode: the value at address n + relative base
//
// The assembler computes the mode digits of the instruction from the operand
// prefixes. Immediate mode is rejected for operands written to by the
// instruction (the last operand of add, mul, lt and eq, and the operand of in).
//
//	add #1 @-1 tmp		( compiles as 2101,1,-1,<address of tmp> )
//	jt #1 #loop		( unconditional jump to label loop )
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  multiline comment )
//
// Values:
//
// Input is split at white space into tokens. Values can be Go integer literals
// (see strconv.ParseInt), Go character literals between single quotes,
// constant names or label names. Label names cannot start with one of
// ":.#@'" and cannot be instruction mnemonics. Where the parser expects an
// instruction, a bare integer, character literal or constant is compiled as a
// data cell.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and evaluate to the
// address of the next compiled cell. Forward references are allowed:
//
//	:loop	in tmp
//		out tmp
//		jt #1 #loop
//	:tmp	0
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value.
//
//	.org <value>
//
// places the next cell at the specified address.
//
//	.dat <value>
//
// compiles the specified value as-is. Unlike bare values, the argument of
// .dat can be a label:
//
//	:ptr	.dat table
//	:table	.dat 65
//		.dat 'B'
package asm
