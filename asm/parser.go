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
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// ErrAsm encapsulates errors generated by the assembler.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for n, l := range e {
		if n > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Pos.String())
		b.WriteString(": ")
		b.WriteString(l.Msg)
	}
	return b.String()
}

const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

// parser states
const (
	stInstr = iota // expect instruction, label, directive or data
	stArg          // expect instruction operand
	stDat          // .dat value
	stOrg          // .org address
	stEqu          // .equ value
)

var modeWeight = [vm.MaxParams]vm.Cell{100, 1000, 10000}

type parser struct {
	i      []vm.Cell
	pc     int
	size   int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]labelSite
	errs   ErrAsm

	cstName string
	cstPos  scanner.Position

	// instruction being assembled
	op    vm.Opcode
	opPC  int
	arg   int
	modes vm.Cell
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	return p
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, struct {
			Pos scanner.Position
			Msg string
		}{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 256)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

// literal converts integers, character literals and constants. ok is false
// if s is none of these.
func (p *parser) literal(s string) (v vm.Cell, ok bool, err error) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err == nil {
		return vm.Cell(n), true, nil
	}
	if ne, isNum := err.(*strconv.NumError); isNum && ne.Err == strconv.ErrRange {
		return 0, false, err
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			return 0, false, errors.New("invalid character literal " + s)
		}
		return vm.Cell(r), true, nil
	}
	if c, found := p.consts[s]; found {
		return vm.Cell(c.address), true, nil
	}
	return 0, false, nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case ':', '.', '#', '@', '\'':
		return false
	}
	if unicode.IsDigit(rune(s[0])) {
		return false
	}
	if _, err := strconv.ParseInt(s, 0, 64); err == nil {
		return false
	}
	_, isOp := opcodeIndex[s]
	return !isOp
}

// value compiles a literal or a reference to a label.
func (p *parser) value(s string, pos scanner.Position) {
	v, ok, err := p.literal(s)
	switch {
	case err != nil:
		p.error(pos, err.Error())
	case ok:
	case validName(s):
		p.useLabel(s, pos)
	default:
		p.error(pos, "invalid operand "+strconv.Quote(s))
	}
	p.write(v)
}

func (p *parser) useLabel(name string, pos scanner.Position) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

func (p *parser) defineLabel(name string, pos scanner.Position) {
	if !validName(name) {
		p.error(pos, "invalid label name "+strconv.Quote(name))
		return
	}
	if _, ok, err := p.literal(name); ok || err != nil {
		p.error(pos, "label name "+name+" is a literal or constant")
		return
	}
	l := p.labels[name]
	if l == nil {
		p.labels[name] = &label{labelSite{pos, p.pc}, nil}
		return
	}
	if l.address != -1 {
		p.error(pos, "label redefinition: "+name+", previous definition here: "+l.pos.String())
		return
	}
	l.address = p.pc
	l.pos = pos
}

func (p *parser) beginInstr(op vm.Opcode) {
	p.op = op
	p.opPC = p.pc
	p.arg = 0
	p.modes = 0
	p.write(vm.Cell(op))
}

func (p *parser) endInstr() {
	p.i[p.opPC] = vm.Cell(p.op) + p.modes
}

// operand compiles the next operand of the current instruction and reports
// whether the instruction is complete.
func (p *parser) operand(s string, pos scanner.Position) bool {
	mode := vm.Position
	switch s[0] {
	case '#':
		mode = vm.Immediate
		s = s[1:]
	case '@':
		mode = vm.Relative
		s = s[1:]
	}
	if mode == vm.Immediate && p.arg == p.op.WriteParam() {
		p.error(pos, "immediate mode write operand for "+p.op.String())
	}
	if s == "" {
		p.error(pos, "missing operand value")
	}
	p.modes += vm.Cell(mode) * modeWeight[p.arg]
	p.value(s, pos)
	p.arg++
	if p.arg == p.op.Arity() {
		p.endInstr()
		return true
	}
	return false
}

func (p *parser) directive(s string, pos scanner.Position) int {
	switch s {
	case ".org":
		return stOrg
	case ".dat":
		return stDat
	case ".equ":
		if p.s.Scan() != scanner.Ident {
			p.error(p.s.Position, ".equ: expected identifier, got "+strconv.Quote(p.s.TokenText()))
			return stInstr
		}
		p.cstName = p.s.TokenText()
		p.cstPos = p.s.Position
		if !validName(p.cstName) {
			p.error(p.cstPos, ".equ: invalid constant name "+strconv.Quote(p.cstName))
			return stInstr
		}
		if l, ok := p.labels[p.cstName]; ok {
			p.error(p.cstPos, ".equ: redefinition of "+p.cstName+", previously defined/used as a label here: "+l.pos.String())
			return stInstr
		}
		return stEqu
	}
	p.error(pos, "unknown directive "+s)
	return stInstr
}

// constant returns the value of an integer literal, char literal or constant.
func (p *parser) constant(s string, pos scanner.Position) (vm.Cell, bool) {
	v, ok, err := p.literal(s)
	if err != nil {
		p.error(pos, err.Error())
		return 0, false
	}
	if !ok {
		p.error(pos, "expected integer or constant, got "+strconv.Quote(s))
	}
	return v, ok
}

func (p *parser) skipComment() bool {
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if tok == scanner.Ident && p.s.TokenText() == ")" {
			return true
		}
	}
	return false
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) error {
	state := stInstr

	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		pos := p.s.Position
		s := p.s.TokenText()

		if tok != scanner.Ident {
			p.error(pos, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		if s == "(" {
			if !p.skipComment() {
				p.error(pos, "unterminated comment")
			}
			continue
		}

		if state == stArg {
			if _, isOp := opcodeIndex[s]; isOp || s[0] == ':' || s[0] == '.' {
				p.error(pos, "missing operand for "+p.op.String())
				for p.arg < p.op.Arity() {
					p.write(0)
					p.arg++
				}
				p.endInstr()
				state = stInstr
			} else {
				if p.operand(s, pos) {
					state = stInstr
				}
				continue
			}
		}

		switch state {
		case stDat:
			p.value(s, pos)
		case stOrg:
			if v, ok := p.constant(s, pos); ok {
				if v < 0 || v >= vm.DefaultMemLimit {
					p.error(pos, ".org: address out of range: "+s)
				} else {
					p.pc = int(v)
				}
			}
		case stEqu:
			if v, ok := p.constant(s, pos); ok {
				p.consts[p.cstName] = labelSite{p.cstPos, int(v)}
			}
		default:
			switch {
			case s[0] == ':':
				p.defineLabel(s[1:], pos)
			case s[0] == '.':
				state = p.directive(s, pos)
				continue
			default:
				if op, ok := opcodeIndex[s]; ok {
					p.beginInstr(op)
					if op.Arity() > 0 {
						state = stArg
					}
					continue
				}
				// bare values are data
				v, ok, err := p.literal(s)
				switch {
				case err != nil:
					p.error(pos, err.Error())
				case ok:
					p.write(v)
				default:
					p.error(pos, "unknown mnemonic "+strconv.Quote(s))
				}
			}
		}
		state = stInstr
	}

	switch state {
	case stArg:
		p.error(p.s.Pos(), "unexpected EOF: missing operand for "+p.op.String())
		p.endInstr()
	case stDat, stOrg, stEqu:
		p.error(p.s.Pos(), "unexpected EOF: missing directive argument")
	}

	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}
