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
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

type flusher interface {
	Flush() error
}

type multiReader struct {
	readers []io.Reader
}

func (mr *multiReader) Read(p []byte) (n int, err error) {
	for len(mr.readers) > 0 {
		n, err = mr.readers[0].Read(p)
		if n > 0 || err != io.EOF {
			if err == io.EOF {
				// Don't return EOF yet. There may be more bytes
				// in the remaining readers.
				err = nil
			}
			return
		}
		if c, ok := mr.readers[0].(io.Closer); ok {
			c.Close()
		}
		mr.readers = mr.readers[1:]
	}
	return 0, io.EOF
}

func (mr *multiReader) pushReader(r io.Reader) {
	mr.readers = append([]io.Reader{r}, mr.readers...)
}

// Text is a character oriented Bus. Input bytes are read one at a time from a
// stack of readers and handed to the VM as cells. Cells written by the VM in
// the ASCII range (0-127) are written as single bytes, other values are
// written in decimal followed by a new line.
//
// When all input readers are exhausted, Read returns false and Err returns
// io.EOF. Execute then returns an error whose cause is io.EOF, which is a
// normal exit condition in most use cases.
type Text struct {
	in  multiReader
	out io.Writer
	buf [1]byte
	err error
}

// NewText returns a new Text bus reading from r and writing to w. Either may
// be nil. If w implements Flush() error, Flush is called after each new line.
func NewText(r io.Reader, w io.Writer) *Text {
	t := &Text{out: w}
	if r != nil {
		t.in.pushReader(r)
	}
	return t
}

// Stdio returns a Text bus connected to the process' standard input and
// output. Output is buffered and flushed at each new line.
func Stdio() *Text {
	return NewText(os.Stdin, bufio.NewWriter(os.Stdout))
}

// PushInput sets r as the current input reader. When this reader reaches EOF,
// the previously pushed reader will be used. Pushing a reader clears a
// previous io.EOF error.
func (t *Text) PushInput(r io.Reader) {
	t.in.pushReader(r)
	if t.err == io.EOF {
		t.err = nil
	}
}

// Read implements Bus.
func (t *Text) Read() (Cell, bool) {
	if t.err != nil {
		return 0, false
	}
	n, err := t.in.Read(t.buf[:])
	if n > 0 {
		return Cell(t.buf[0]), true
	}
	switch err {
	case nil:
		// reader returned 0, nil. Treat as no data available.
	case io.EOF:
		t.err = io.EOF
	default:
		t.err = errors.Wrap(err, "input failed")
	}
	return 0, false
}

// Write implements Bus.
func (t *Text) Write(v Cell) {
	if t.err != nil || t.out == nil {
		return
	}
	var err error
	if v >= 0 && v < 128 {
		t.buf[0] = byte(v)
		_, err = t.out.Write(t.buf[:])
	} else {
		_, err = io.WriteString(t.out, strconv.FormatInt(int64(v), 10)+"\n")
		v = '\n'
	}
	if err == nil && v == '\n' {
		err = t.Flush()
	}
	if err != nil {
		t.err = errors.Wrap(err, "output failed")
	}
}

// Flush flushes the output writer if it implements Flush() error.
func (t *Text) Flush() error {
	if f, ok := t.out.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Err returns the first error encountered by the bus, io.EOF if input is
// exhausted.
func (t *Text) Err() error {
	return t.err
}
