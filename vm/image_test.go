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

package vm_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		src  string
		prog C
	}{
		{"", nil},
		{"\n", nil},
		{"99", C{99}},
		{"1,2,3", C{1, 2, 3}},
		{" 1, -2 ,3,\n", C{1, -2, 3}},
		{"1,\n2,\n3\n", C{1, 2, 3}},
		{"1,2,", C{1, 2}},
		{"-9223372036854775808,9223372036854775807", C{-9223372036854775808, 9223372036854775807}},
	} {
		p, err := vm.Parse(strings.NewReader(test.src))
		if err != nil {
			t.Errorf("%s: %v", strconv.Quote(test.src), err)
			continue
		}
		if len(p) != len(test.prog) {
			t.Errorf("%s: expected %v, got %v", strconv.Quote(test.src), test.prog, p)
			continue
		}
		for n := range p {
			if p[n] != test.prog[n] {
				t.Errorf("%s: expected %v, got %v", strconv.Quote(test.src), test.prog, p)
				break
			}
		}
	}
}

func TestParse_errors(t *testing.T) {
	for _, test := range []struct {
		src string
		msg string
	}{
		{"1,2,x", `cell 2: "x"`},
		{"1,,2", "cell 1: empty value"},
		{"1, ,", "cell 1: empty value"},
		{"1,2,\t,\n", "cell 2: empty value"},
		{",", "cell 0: empty value"},
		{"1,99999999999999999999", `cell 1: "99999999999999999999"`},
		{"1 2", `cell 0: "1 2"`},
	} {
		_, err := vm.Parse(strings.NewReader(test.src))
		if err == nil {
			t.Errorf("%s: expected error", test.src)
			continue
		}
		if !strings.HasPrefix(err.Error(), test.msg) {
			t.Errorf("%s: expected error starting with %s, got: %v", test.src, test.msg, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prog.txt")
	if err := os.WriteFile(fn, []byte(quine+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := vm.LoadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err = vm.Format(&b, p); err != nil {
		t.Fatal(err)
	}
	if b.String() != quine {
		t.Fatalf("Expected %s, got %s", quine, b.String())
	}

	_, err = vm.LoadFile(filepath.Join(t.TempDir(), "missing"))
	if !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("Unexpected error %v", err)
	}
}
