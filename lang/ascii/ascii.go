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

// Package ascii provides helpers for Intcode programs that talk ASCII: they
// read commands as newline terminated lines of characters and write text, with
// numeric results that do not fit in the ASCII range mixed in.
package ascii

import (
	"strings"

	"github.com/db47h/intcode/vm"
)

// MaxChar is the largest cell value considered as text.
const MaxChar = 127

// Encode converts the given lines into input cells. Each line is terminated
// by a newline.
func Encode(lines ...string) []vm.Cell {
	var n int
	for _, l := range lines {
		n += len(l) + 1
	}
	cells := make([]vm.Cell, 0, n)
	for _, l := range lines {
		for i := 0; i < len(l); i++ {
			cells = append(cells, vm.Cell(l[i]))
		}
		cells = append(cells, '\n')
	}
	return cells
}

// IsChar returns true if v is in the ASCII range.
func IsChar(v vm.Cell) bool {
	return v >= 0 && v <= MaxChar
}

// Decode splits program output into text and the values outside of the ASCII
// range, in order of appearance.
func Decode(cells []vm.Cell) (text string, extra []vm.Cell) {
	var b strings.Builder
	for _, c := range cells {
		if IsChar(c) {
			b.WriteByte(byte(c))
		} else {
			extra = append(extra, c)
		}
	}
	return b.String(), extra
}

// Feed pushes the encoded lines as input to the given queue.
func Feed(q *vm.Queue, lines ...string) {
	q.Extend(Encode(lines...)...)
}
