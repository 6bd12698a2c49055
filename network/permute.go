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

package network

import (
	"context"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Permutations calls f for each permutation of the given values, stopping
// early if f returns false. The slice passed to f is reused between calls.
func Permutations(values []vm.Cell, f func(p []vm.Cell) bool) {
	p := append([]vm.Cell(nil), values...)
	c := make([]int, len(p))
	if !f(p) {
		return
	}
	// Heap's algorithm, iterative form.
	for i := 1; i < len(p); {
		if c[i] < i {
			if i&1 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[c[i]], p[i] = p[i], p[c[i]]
			}
			if !f(p) {
				return
			}
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
}

// MaxSignal runs a network for every permutation of phaseSet and returns the
// highest signal along with the phase settings that produced it. Options are
// passed as is to New.
func MaxSignal(ctx context.Context, program []vm.Cell, phaseSet []vm.Cell, opts ...Option) (best vm.Cell, phases []vm.Cell, err error) {
	if len(phaseSet) == 0 {
		return 0, nil, errors.New("MaxSignal: empty phase set")
	}
	Permutations(phaseSet, func(p []vm.Cell) bool {
		var n *Network
		n, err = New(program, p, opts...)
		if err != nil {
			return false
		}
		var v vm.Cell
		v, err = n.Run(ctx)
		if err != nil {
			err = errors.Wrapf(err, "phases %v", p)
			return false
		}
		if phases == nil || v > best {
			best = v
			phases = append(phases[:0], p...)
		}
		return true
	})
	if err != nil {
		return 0, nil, err
	}
	log.Infof("max signal %d, phases %v", best, phases)
	return best, phases, nil
}
