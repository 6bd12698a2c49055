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

package network_test

import (
	"context"
	"strings"
	"time"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

const (
	// each instance outputs 10 * input + phase
	chain = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	// each instance loops five times over its input
	feedback = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
	// reads two values and halts without output
	sink = "3,0,3,0,99"
)

func program(s string) []vm.Cell {
	p, err := vm.Parse(strings.NewReader(s))
	Expect(err).ToNot(HaveOccurred())
	return p
}

func phases(v ...vm.Cell) []vm.Cell { return v }

var _ = Describe("Network", func() {

	Context("when creating a network", func() {
		It("should reject an empty phase list", func() {
			_, err := network.New(program(chain), nil)
			Expect(err).To(HaveOccurred())
		})

		It("should reject invalid options", func() {
			_, err := network.New(program(chain), phases(0), network.Timeout(0))
			Expect(err).To(HaveOccurred())
			_, err = network.New(program(chain), phases(0), network.LinkCapacity(1))
			Expect(err).To(HaveOccurred())
		})

		It("should report its size", func() {
			n, err := network.New(program(chain), phases(0, 1, 2))
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Len()).To(Equal(3))
		})
	})

	Context("when instances are chained", func() {
		It("should pass the signal down the chain", func() {
			n, err := network.New(program(chain), phases(4, 3, 2, 1, 0))
			Expect(err).ToNot(HaveOccurred())
			v, err := n.Run(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(vm.Cell(43210)))
		})

		It("should start from the seed value", func() {
			n, err := network.New(program(chain), phases(1, 2), network.Seed(3))
			Expect(err).ToNot(HaveOccurred())
			v, err := n.Run(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(vm.Cell(312)))
		})

		It("should be reusable", func() {
			n, err := network.New(program(chain), phases(0, 1, 2, 3, 4))
			Expect(err).ToNot(HaveOccurred())
			for k := 0; k < 3; k++ {
				v, err := n.Run(context.Background())
				Expect(err).ToNot(HaveOccurred())
				Expect(v).To(Equal(vm.Cell(1234)))
			}
		})
	})

	Context("when instances are connected in a ring", func() {
		It("should return the last signal of the last instance", func() {
			n, err := network.New(program(feedback), phases(9, 8, 7, 6, 5), network.Feedback(true))
			Expect(err).ToNot(HaveOccurred())
			v, err := n.Run(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(vm.Cell(139629729)))
		})
	})

	Context("when the last instance outlives the first one in a ring", func() {
		It("should drop values sent to the halted instance", func() {
			// phase 0 forwards its input, other phases output 1 to 70
			src := `
				in p
				in x
				jt p #many
				out x
				hlt
			:many	out n
				add n #1 n
				lt n #71 t
				jt t #many
				hlt
			:p 0 :x 0 :n 1 :t 0
			`
			prog, err := asm.Assemble("flood", strings.NewReader(src))
			Expect(err).ToNot(HaveOccurred())
			n, err := network.New(prog, phases(0, 1), network.Feedback(true), network.Timeout(100*time.Millisecond))
			Expect(err).ToNot(HaveOccurred())
			v, err := n.Run(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(vm.Cell(70)))
		})
	})

	Context("when an instance starves", func() {
		It("should report a deadlock", func() {
			n, err := network.New(program(sink), phases(0, 0), network.Timeout(50*time.Millisecond))
			Expect(err).ToNot(HaveOccurred())
			_, err = n.Run(context.Background())
			Expect(err).To(HaveOccurred())
			Expect(errors.Cause(err)).To(Equal(network.ErrDeadlock))

			var dl *network.DeadlockError
			Expect(errors.As(err, &dl)).To(BeTrue())
			Expect(dl.Index).To(Equal(1))
			Expect(dl.Timeout).To(Equal(50 * time.Millisecond))
		})

		It("should report a deadlock when a ring is left open", func() {
			n, err := network.New(program(feedback), phases(9, 8, 7, 6, 5), network.Timeout(50*time.Millisecond))
			Expect(err).ToNot(HaveOccurred())
			_, err = n.Run(context.Background())
			Expect(errors.Cause(err)).To(Equal(network.ErrDeadlock))
		})

		It("should not mistake a short ring for a deadlock", func() {
			n, err := network.New(program(chain), phases(0, 1), network.Feedback(true), network.Timeout(50*time.Millisecond))
			Expect(err).ToNot(HaveOccurred())
			v, err := n.Run(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(vm.Cell(1)))
		})
	})

	Context("when the last instance does not output anything", func() {
		It("should return ErrNoSignal", func() {
			n, err := network.New(program(sink), phases(0))
			Expect(err).ToNot(HaveOccurred())
			_, err = n.Run(context.Background())
			Expect(errors.Cause(err)).To(Equal(network.ErrNoSignal))
		})
	})

	Context("when an instance fails", func() {
		It("should return the VM error", func() {
			n, err := network.New(program("3,0,3,0,42"), phases(0, 0))
			Expect(err).ToNot(HaveOccurred())
			_, err = n.Run(context.Background())
			Expect(err).To(HaveOccurred())
			Expect(errors.Cause(err)).To(Equal(vm.ErrUnknownOpcode))
			Expect(err.Error()).To(HavePrefix("instance 0: "))

			var e *vm.Error
			Expect(errors.As(err, &e)).To(BeTrue())
			Expect(e.PC).To(Equal(4))
		})

		It("should honor VM options", func() {
			n, err := network.New(program("1101,1,1,5000,99"), phases(0), network.VMOptions(vm.MemLimit(100)))
			Expect(err).ToNot(HaveOccurred())
			_, err = n.Run(context.Background())
			Expect(errors.Cause(err)).To(Equal(vm.ErrMemoryLimit))
		})
	})

	Context("when the context is cancelled", func() {
		It("should stop waiting for input", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			n, err := network.New(program("3,0,3,0,3,0,99"), phases(0), network.Timeout(time.Hour))
			Expect(err).ToNot(HaveOccurred())
			_, err = n.Run(ctx)
			Expect(errors.Cause(err)).To(Equal(context.Canceled))
		})
	})

	Context("when searching for the best phase settings", func() {
		It("should find the best chain", func() {
			v, p, err := network.MaxSignal(context.Background(), program(chain), phases(0, 1, 2, 3, 4))
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(vm.Cell(43210)))
			Expect(p).To(Equal(phases(4, 3, 2, 1, 0)))
		})

		It("should find the best ring", func() {
			v, p, err := network.MaxSignal(context.Background(), program(feedback), phases(5, 6, 7, 8, 9), network.Feedback(true))
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(vm.Cell(139629729)))
			Expect(p).To(Equal(phases(9, 8, 7, 6, 5)))
		})

		It("should stop on the first error", func() {
			_, _, err := network.MaxSignal(context.Background(), program(sink), phases(0, 1), network.Timeout(20*time.Millisecond))
			Expect(err).To(HaveOccurred())
			Expect(errors.Cause(err)).To(Equal(network.ErrDeadlock))
		})
	})
})

var _ = Describe("Permutations", func() {

	DescribeTable("it should visit every permutation once", func(size int) {
		values := make([]vm.Cell, size)
		for k := range values {
			values[k] = vm.Cell(k)
		}
		seen := make(map[string]bool)
		network.Permutations(values, func(p []vm.Cell) bool {
			var b strings.Builder
			for _, v := range p {
				b.WriteByte(byte('0' + v))
			}
			Expect(seen).ToNot(HaveKey(b.String()))
			seen[b.String()] = true
			return true
		})
		fact := 1
		for k := 2; k <= size; k++ {
			fact *= k
		}
		Expect(seen).To(HaveLen(fact))
	},
		Entry("for a single value", 1),
		Entry("for two values", 2),
		Entry("for three values", 3),
		Entry("for five values", 5),
	)

	It("should stop when asked to", func() {
		count := 0
		network.Permutations(phases(1, 2, 3), func([]vm.Cell) bool {
			count++
			return count < 2
		})
		Expect(count).To(Equal(2))
	})
})
