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

// The intcode command line tool runs, assembles and disassembles Intcode
// programs.
//
// Usage:
//
//	intcode [flags] command file
//
// Commands:
//
//	run	run the program with numeric I/O
//	ascii	run the program with character I/O
//	amplify	run a network of amplifiers and print the final signal
//	max	find the phase settings yielding the highest signal
//	disasm	disassemble the program
//	asm	assemble the source file and write the resulting program
//
// Flags:
//
//	-c, --config file
//		  load configuration from file instead of looking for intcode.toml
//	    --debug
//		  enable debug diagnostics
//	    --dump
//		  dump memory to stdout upon exit (run, ascii)
//	    --feedback
//		  connect amplifiers in a feedback loop (amplify, max)
//	-i, --input values
//		  comma separated values to send to the program (run)
//	-l, --line line
//		  send line as ASCII input (run, can be specified multiple times)
//	    --link-capacity int
//		  amplifier link capacity (default 64)
//	    --log file
//		  write log messages to file
//	    --mem-limit cells
//		  memory limit in cells (default 16777216)
//	-o, --output file
//		  write assembled program to file (asm)
//	-p, --phases settings
//		  comma separated phase settings (amplify, max) (default "0,1,2,3,4")
//	-q, --quiet
//		  disable logging
//	    --raw
//		  switch the terminal to raw mode (ascii)
//	    --seed value
//		  initial value sent to the first amplifier (amplify, max)
//	-t, --text
//		  print output in the ASCII range as text (run)
//	    --timeout duration
//		  amplifier input timeout (default 1s)
//	-v, --verbose
//		  increase log verbosity (can be repeated)
//	    --with file
//		  add file to the input list (ascii, can be specified multiple times)
//
// Programs are read from files in the usual comma separated format, except for
// the asm command which reads assembly source (see package
// github.com/db47h/intcode/asm).
//
// run: values given with --input are sent to the program first, followed by
// the characters of lines given with --line, each terminated by a new line.
// Each time the program runs out of input, a line of comma separated values is
// read from stdin. Output values are printed one per line. With --text, output
// in the ASCII range is printed as text and other values are printed on their
// own line after the text.
//
// ascii: bytes read from the input files and stdin are sent to the program one
// character at a time. Output values in the ASCII range are printed as
// characters, other values are printed in decimal on their own line. When
// stdin is a terminal, lines are read with line editing and history support.
// With --raw, the terminal is switched to raw mode and every key press is
// sent as it is typed. Ctrl-D ends input.
//
// amplify, max: one instance of the program runs per phase setting. The first
// instance receives the seed value after its phase setting and each instance
// sends its output to the next one. With --feedback, the output of the last
// instance loops back to the first one.
//
// Settings not given on the command line are read from an intcode.toml file,
// searched in the current directory and its parents:
//
//	[vm]
//	mem-limit = 16777216
//
//	[network]
//	timeout = "1s"
//	link-capacity = 64
//	feedback = false
//
//	[log]
//	verbosity = 0
//	file = ""
//
//	[term]
//	raw = false
package main
