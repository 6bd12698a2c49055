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

package vm

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/db47h/intcode/internal/iox"
	"github.com/pkg/errors"
)

// cellScanner splits its input into comma separated tokens and records
// whether the last token was terminated by a comma.
type cellScanner struct {
	sep bool
}

func (c *cellScanner) split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, ','); i >= 0 {
		c.sep = true
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		c.sep = false
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Parse reads a program as a list of comma separated decimal integers.
// White space around values is ignored, as well as a trailing comma. An empty
// value followed by a comma is an error.
func Parse(r io.Reader) ([]Cell, error) {
	var (
		prog []Cell
		cs   cellScanner
	)
	s := bufio.NewScanner(r)
	s.Split(cs.split)
	for idx := 0; s.Scan(); idx++ {
		tok := bytes.TrimSpace(s.Bytes())
		if len(tok) == 0 {
			if cs.sep {
				return nil, errors.Errorf("cell %d: empty value", idx)
			}
			// white space after a trailing comma, or empty input
			break
		}
		v, err := strconv.ParseInt(string(tok), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d: %q", idx, tok)
		}
		prog = append(prog, Cell(v))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return prog, nil
}

// LoadFile loads a program from file fileName.
func LoadFile(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "LoadFile")
	}
	defer f.Close()
	prog, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "LoadFile %s", fileName)
	}
	return prog, nil
}

// Format writes the given cells to w in program text format.
func Format(w io.Writer, cells []Cell) error {
	ew := iox.NewErrWriter(w)
	var b []byte
	for i, v := range cells {
		b = b[:0]
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		ew.Write(b)
	}
	return ew.Err
}

// Dump writes the instance's memory to w in program text format.
func (i *Instance) Dump(w io.Writer) error {
	return Format(w, i.mem.cells)
}
