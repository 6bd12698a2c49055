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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

func parseCells(s string) ([]vm.Cell, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return vm.Parse(strings.NewReader(s))
}

// runCmd runs a program with numeric I/O. Values from --input and lines from
// --line are sent first, then the program reads one line of comma separated
// values from stdin each time it runs out of input.
func runCmd(o *options, file string) error {
	prog, err := vm.LoadFile(file)
	if err != nil {
		return err
	}
	input, err := parseCells(o.input)
	if err != nil {
		return errors.Wrap(err, "--input")
	}
	input = append(input, ascii.Encode(o.lines...)...)
	i, err := vm.New(prog, append(o.cfg.VMOptions(), vm.Input(input...))...)
	if err != nil {
		return err
	}
	lastInstance = i

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	stdin := bufio.NewScanner(os.Stdin)
	q := i.Queue()
	for {
		err = i.Execute()
		writeOutput(o, out, q.Drain())
		if err != nil {
			return err
		}
		if i.Halted() {
			break
		}
		out.Flush()
		if !stdin.Scan() {
			if err = stdin.Err(); err != nil {
				return errors.Wrap(err, "stdin")
			}
			return errors.Errorf("program waiting for input at pc=%d", i.PC)
		}
		v, err := parseCells(stdin.Text())
		if err != nil {
			return errors.Wrap(err, "stdin")
		}
		q.Extend(v...)
	}
	log.Infof("halted after %d instructions", i.InstructionCount())
	return dumpInstance(o, i, out)
}

func writeOutput(o *options, w io.Writer, values []vm.Cell) {
	if !o.text {
		for _, v := range values {
			fmt.Fprintln(w, v)
		}
		return
	}
	text, extra := ascii.Decode(values)
	io.WriteString(w, text)
	for _, v := range extra {
		fmt.Fprintln(w, v)
	}
}

// eotReader turns a Ctrl-D into io.EOF. Needed in raw tty mode.
type eotReader struct {
	r io.Reader
}

func (e eotReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	for k := 0; k < n; k++ {
		if p[k] == 4 {
			return k, io.EOF
		}
	}
	return n, err
}

// asciiCmd runs a program with character I/O. Files given with --with are fed
// first, in order of appearance on the command line, then stdin.
func asciiCmd(o *options, file string) error {
	prog, err := vm.LoadFile(file)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var ln *liner.State
	var in io.Reader
	switch {
	case o.cfg.Term.Raw:
		restore, err := setRawIO()
		if err != nil {
			return err
		}
		defer restore()
		in = eotReader{os.Stdin}
	case isTerminal(os.Stdin):
		ln = liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)
	default:
		in = bufio.NewReader(os.Stdin)
	}

	t := vm.NewText(in, out)
	for n := len(o.with) - 1; n >= 0; n-- {
		f, err := os.Open(o.with[n])
		if err != nil {
			return err
		}
		t.PushInput(struct {
			io.Reader
			io.Closer
		}{bufio.NewReader(f), f})
	}

	i, err := vm.New(prog, append(o.cfg.VMOptions(), vm.BindBus(t))...)
	if err != nil {
		return err
	}
	lastInstance = i

	for {
		err = i.Execute()
		if err != nil && errors.Cause(err) != io.EOF {
			return err
		}
		if i.Halted() {
			break
		}
		if ln == nil {
			log.Debugf("end of input at pc=%d", i.PC)
			break
		}
		if err = t.Flush(); err != nil {
			return err
		}
		line, err := ln.Prompt("")
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				break
			}
			return errors.Wrap(err, "prompt")
		}
		ln.AppendHistory(line)
		t.PushInput(strings.NewReader(line + "\n"))
	}
	log.Infof("stopped after %d instructions", i.InstructionCount())
	return dumpInstance(o, i, out)
}

func newNetwork(o *options, file string) ([]vm.Cell, []vm.Cell, []network.Option, error) {
	prog, err := vm.LoadFile(file)
	if err != nil {
		return nil, nil, nil, err
	}
	phases, err := parseCells(o.phases)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "--phases")
	}
	opts := append(o.cfg.NetworkOptions(), network.Seed(vm.Cell(o.seed)))
	return prog, phases, opts, nil
}

// amplifyCmd runs the program as a network of amplifiers with the given phase
// settings and prints the resulting signal.
func amplifyCmd(o *options, file string) error {
	prog, phases, opts, err := newNetwork(o, file)
	if err != nil {
		return err
	}
	n, err := network.New(prog, phases, opts...)
	if err != nil {
		return err
	}
	ctx, cancel := interruptContext()
	defer cancel()
	v, err := n.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}

// maxCmd prints the highest signal over all permutations of the phase
// settings, followed by the best permutation.
func maxCmd(o *options, file string) error {
	prog, phases, opts, err := newNetwork(o, file)
	if err != nil {
		return err
	}
	ctx, cancel := interruptContext()
	defer cancel()
	v, best, err := network.MaxSignal(ctx, prog, phases, opts...)
	if err != nil {
		return err
	}
	var b strings.Builder
	if err = vm.Format(&b, best); err != nil {
		return err
	}
	fmt.Printf("%d\t%s\n", v, b.String())
	return nil
}

func disasmCmd(o *options, file string) error {
	prog, err := vm.LoadFile(file)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(os.Stdout)
	if err = asm.DisassembleAll(prog, 0, out); err != nil {
		return err
	}
	return out.Flush()
}

func asmCmd(o *options, file string) (err error) {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	prog, err := asm.Assemble(file, bufio.NewReader(f))
	if err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if o.outFile != "" {
		var of *os.File
		if of, err = os.Create(o.outFile); err != nil {
			return err
		}
		defer func() {
			if e := of.Close(); e != nil && err == nil {
				err = e
			}
		}()
		w = of
	}
	bw := bufio.NewWriter(w)
	if err = vm.Format(bw, prog); err != nil {
		return err
	}
	if _, err = bw.WriteString("\n"); err != nil {
		return err
	}
	log.Infof("assembled %d cells", len(prog))
	return bw.Flush()
}
