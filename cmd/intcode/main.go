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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/internal/config"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("intcode.cli")

type options struct {
	cfg *config.Config

	configFile string
	input      string
	lines      []string
	text       bool
	with       []string
	phases     string
	seed       int64
	outFile    string
	verbose    int
	quiet      bool
	debug      bool
	dump       bool
}

var commands = map[string]func(o *options, file string) error{
	"run":     runCmd,
	"ascii":   asciiCmd,
	"amplify": amplifyCmd,
	"max":     maxCmd,
	"disasm":  disasmCmd,
	"asm":     asmCmd,
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] run|ascii|amplify|max|disasm|asm file\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
}

// lastInstance is inspected by atExit in debug mode.
var lastInstance *vm.Instance

func atExit(o *options, err error) {
	if err == nil {
		return
	}
	if !o.debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	var e *vm.Error
	if errors.As(err, &e) && lastInstance != nil {
		var b strings.Builder
		if e.PC >= 0 && e.PC < lastInstance.Mem().Len() {
			asm.Disassemble(lastInstance.Mem().Cells(), e.PC, &b)
		}
		fmt.Fprintf(os.Stderr, "PC: %d (%d) %s, RB: %d, instructions: %d\n", e.PC, e.Raw, b.String(), lastInstance.RB, lastInstance.InstructionCount())
	}
	os.Exit(1)
}

// loadConfig loads the configuration file and applies command line overrides.
func loadConfig(o *options, fs *flag.FlagSet) (err error) {
	if o.configFile != "" {
		o.cfg, err = config.Load(o.configFile)
	} else {
		o.cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return err
	}
	c := o.cfg
	if fs.Changed("mem-limit") {
		c.VM.MemLimit, _ = fs.GetInt("mem-limit")
	}
	if fs.Changed("timeout") {
		d, _ := fs.GetDuration("timeout")
		c.Network.Timeout = config.Duration(d)
	}
	if fs.Changed("link-capacity") {
		c.Network.LinkCapacity, _ = fs.GetInt("link-capacity")
	}
	if fs.Changed("feedback") {
		c.Network.Feedback, _ = fs.GetBool("feedback")
	}
	if fs.Changed("log") {
		c.Log.File, _ = fs.GetString("log")
	}
	if fs.Changed("raw") {
		c.Term.Raw, _ = fs.GetBool("raw")
	}
	c.Log.Verbosity += o.verbose
	if o.quiet {
		c.Log.Verbosity = -4
	}
	return nil
}

func setupLog(c *config.Config) {
	if c.Log.File != "" {
		commonlog.Configure(c.Log.Verbosity, &c.Log.File)
	} else {
		commonlog.Configure(c.Log.Verbosity, nil)
	}
	if c.Path != "" {
		log.Infof("using configuration file %s", c.Path)
	}
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func dumpInstance(o *options, i *vm.Instance, w io.Writer) error {
	if !o.dump || i == nil {
		return nil
	}
	if err := i.Dump(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func main() {
	var err error
	o := new(options)
	defer func() {
		atExit(o, err)
	}()

	fs := flag.CommandLine
	flag.Usage = usage
	fs.StringVarP(&o.configFile, "config", "c", "", "load configuration from `file` instead of looking for "+config.FileName)
	fs.StringVarP(&o.input, "input", "i", "", "comma separated `values` to send to the program (run)")
	fs.StringArrayVarP(&o.lines, "line", "l", nil, "send `line` as ASCII input (run, can be specified multiple times)")
	fs.BoolVarP(&o.text, "text", "t", false, "print output in the ASCII range as text (run)")
	fs.StringArrayVar(&o.with, "with", nil, "add `file` to the input list (ascii, can be specified multiple times)")
	fs.StringVarP(&o.phases, "phases", "p", "0,1,2,3,4", "comma separated phase `settings` (amplify, max)")
	fs.Int64Var(&o.seed, "seed", 0, "initial `value` sent to the first amplifier (amplify, max)")
	fs.StringVarP(&o.outFile, "output", "o", "", "write assembled program to `file` (asm)")
	fs.Int("mem-limit", vm.DefaultMemLimit, "memory limit in `cells`")
	fs.Duration("timeout", 0, "amplifier input timeout (default 1s)")
	fs.Int("link-capacity", 0, "amplifier link capacity (default 64)")
	fs.Bool("feedback", false, "connect amplifiers in a feedback loop (amplify, max)")
	fs.String("log", "", "write log messages to `file`")
	fs.Bool("raw", false, "switch the terminal to raw mode (ascii)")
	fs.CountVarP(&o.verbose, "verbose", "v", "increase log verbosity (can be repeated)")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "disable logging")
	fs.BoolVar(&o.debug, "debug", false, "enable debug diagnostics")
	fs.BoolVar(&o.dump, "dump", false, "dump memory to stdout upon exit (run, ascii)")
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		usage()
		os.Exit(2)
	}
	if err = loadConfig(o, fs); err != nil {
		return
	}
	setupLog(o.cfg)
	log.Debugf("%s %s", flag.Arg(0), flag.Arg(1))
	err = cmd(o, flag.Arg(1))
}
