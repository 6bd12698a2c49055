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

package asm_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
)

type C []vm.Cell

func TestAssemble(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want C
	}{
		{"halt", "hlt", C{99}},
		{"modes", "add #1 @-1 tmp hlt :tmp 0", C{2101, 1, -1, 5, 99, 0}},
		{"echo", ":loop in tmp out tmp jt #1 #loop :tmp 0", C{3, 7, 4, 7, 1105, 1, 0, 0}},
		{"aliases", "jnz #0 #0 jz #0 #0 rb #5 halt", C{1105, 0, 0, 1106, 0, 0, 109, 5, 99}},
		{"directives", ".equ N 10 add #N #'a' @2 .org 10 .dat -1 'x'", C{21101, 10, 97, 2, 0, 0, 0, 0, 0, 0, -1, 120}},
		{"comments", "( header ) out #42 ( trailer\n multi ) hlt", C{104, 42, 99}},
		{"hex", "out #0x10 hlt", C{104, 16, 99}},
		{"self_ref", ".dat ptr :ptr .dat ptr", C{1, 1}},
		{"relative_in", "in @0", C{203, 0}},
		{"empty", "( nothing )", C{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := asm.Assemble(test.name, strings.NewReader(test.src))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(test.want) || (len(got) > 0 && !reflect.DeepEqual(C(got), test.want)) {
				t.Fatalf("Expected %v, got %v", test.want, got)
			}
		})
	}
}

// check some errors. We're not checking all of the messages, rather that they
// point at the correct place.
func TestAssemble_errors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"foo", `t:1:1: unknown mnemonic "foo"`},
		{"add 1 2", "missing operand for add"},
		{"in #5", "t:1:4: immediate mode write operand for in"},
		{"jt #1 #nowhere", "t:1:7: undefined label nowhere"},
		{":a\n:a", "t:2:1: label redefinition: a, previous definition here: t:1:1"},
		{".foo", "t:1:1: unknown directive .foo"},
		{"( no end", "t:1:1: unterminated comment"},
		{"out #'ab'", "t:1:5: invalid character literal 'ab'"},
		{"add 1 2 out 3", "t:1:9: missing operand for add"},
		{".org -1", "t:1:6: .org: address out of range"},
		{"out #99999999999999999999", "value out of range"},
		{".equ 5 5", `.equ: invalid constant name "5"`},
	}
	for _, test := range tests {
		_, err := asm.Assemble("t", strings.NewReader(test.src))
		if err == nil {
			t.Errorf("%q: expected error %q", test.src, test.want)
			continue
		}
		if _, ok := err.(asm.ErrAsm); !ok {
			t.Errorf("%q: unexpected error type %T", test.src, err)
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%q: expected error %q, got %q", test.src, test.want, err.Error())
		}
	}
}

func TestAssemble_maxErrors(t *testing.T) {
	_, err := asm.Assemble("t", strings.NewReader(strings.Repeat("x ", 20)))
	errs, ok := err.(asm.ErrAsm)
	if !ok {
		t.Fatalf("unexpected error type %T", err)
	}
	if len(errs) != 10 {
		t.Fatalf("expected 10 errors, got %d", len(errs))
	}
	if errs[9].Pos.Column != 19 {
		t.Errorf("expected last error at column 19, got %v", errs[9].Pos)
	}
}

func TestDisassemble(t *testing.T) {
	code := C{1002, 4, 3, 4, 33, 109, -2, 203, 1, 99, 1, 0, 0}
	want := []string{"mul 4 #3 4", ".dat 33", "arb #-2", "in @1", "hlt", ".dat 1", ".dat 0", ".dat 0"}
	var b bytes.Buffer
	pc := 0
	for n, w := range want {
		b.Reset()
		next, err := asm.Disassemble(code, pc, &b)
		if err != nil {
			t.Fatal(err)
		}
		if b.String() != w {
			t.Errorf("%d: pc %d: expected %q, got %q", n, pc, w, b.String())
		}
		pc = next
	}
	if pc != len(code) {
		t.Errorf("expected pc %d, got %d", len(code), pc)
	}
}

func TestDisassembleAll(t *testing.T) {
	code := C{104, 42, 99}
	var b bytes.Buffer
	if err := asm.DisassembleAll(code, 100, &b); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	want := [][]string{{"100", "out", "#42"}, {"102", "hlt"}}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), b.String())
	}
	for n, l := range lines {
		if f := strings.Fields(l); !reflect.DeepEqual(f, want[n]) {
			t.Errorf("line %d: expected %v, got %v", n, want[n], f)
		}
	}
}

// Disassembled code must assemble back to the same cells.
func TestRoundTrip(t *testing.T) {
	code, err := vm.Parse(strings.NewReader("109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99,-7,22201"))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	for pc := 0; pc < len(code); {
		pc, err = asm.Disassemble(code, pc, &b)
		if err != nil {
			t.Fatal(err)
		}
		b.WriteByte('\n')
	}
	got, err := asm.Assemble("roundtrip", &b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, code) {
		t.Fatalf("Expected %v, got %v", code, got)
	}
}

func BenchmarkAssemble(b *testing.B) {
	src := ":l\n" + strings.Repeat("add #1 @-1 tmp jt #1 #l\n", 100) + ":tmp 0"
	for n := 0; n < b.N; n++ {
		if _, err := asm.Assemble("bench", strings.NewReader(src)); err != nil {
			b.Fatal(err)
		}
	}
}
