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

package ascii_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
)

func TestEncode(t *testing.T) {
	got := ascii.Encode("NOT A J", "WALK")
	want := []vm.Cell{'N', 'O', 'T', ' ', 'A', ' ', 'J', '\n', 'W', 'A', 'L', 'K', '\n'}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	if got = ascii.Encode(); len(got) != 0 {
		t.Fatalf("Expected no cells, got %v", got)
	}
	if got = ascii.Encode(""); !reflect.DeepEqual(got, []vm.Cell{'\n'}) {
		t.Fatalf("Expected a single newline, got %v", got)
	}
}

func TestDecode(t *testing.T) {
	text, extra := ascii.Decode([]vm.Cell{'o', 'k', '\n', 19349722, -1, '!', 128})
	if text != "ok\n!" {
		t.Errorf("Expected %q, got %q", "ok\n!", text)
	}
	if want := []vm.Cell{19349722, -1, 128}; !reflect.DeepEqual(extra, want) {
		t.Errorf("Expected %v, got %v", want, extra)
	}
	if _, extra = ascii.Decode([]vm.Cell{'a'}); extra != nil {
		t.Errorf("Expected nil extra, got %v", extra)
	}
}

// upper reads a line and writes it in upper case, followed by 1000 plus the
// number of characters read.
const upper = `
:loop	in c
	eq c #10 t
	jt t #done
	lt c #97 t	( only lower case letters in input )
	jt t #emit
	add c #-32 c
:emit	out c
	add n #1 n
	jt #1 #loop
:done	add n #1000 n
	out n
	hlt
:c 0 :t 0 :n 0
`

func TestFeed(t *testing.T) {
	prog, err := asm.Assemble("upper", strings.NewReader(upper))
	if err != nil {
		t.Fatal(err)
	}
	want := "3,36,1008,36,10,37,1005,37,29,1007,36,97,37,1005,37,20,1001,36,-32,36,4,36,1001,38,1,38,1105,1,0,1001,38,1000,38,4,38,99,0,0,0"
	var b strings.Builder
	if err = vm.Format(&b, prog); err != nil {
		t.Fatal(err)
	}
	if b.String() != want {
		t.Fatalf("Expected %s, got %s", want, b.String())
	}
	i, err := vm.New(prog)
	if err != nil {
		t.Fatal(err)
	}
	ascii.Feed(i.Queue(), "hi, You")
	if err = i.Execute(); err != nil {
		t.Fatal(err)
	}
	if !i.Halted() {
		t.Fatal("expected program to halt")
	}
	text, extra := ascii.Decode(i.Queue().Drain())
	if text != "HI, YOU" {
		t.Errorf("Expected %q, got %q", "HI, YOU", text)
	}
	if !reflect.DeepEqual(extra, []vm.Cell{1007}) {
		t.Errorf("Expected [1007], got %v", extra)
	}
}
