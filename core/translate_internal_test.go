package core

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/widthbridge/bus"
)

func writeInputs(size bus.AccessSize, addr uint32, data uint64) bus.Inputs {
	return bus.Inputs{
		ResetActive: true,
		Request: bus.Request{
			Valid:   true,
			Write:   true,
			Size:    size,
			Address: addr,
			Data:    data,
		},
	}
}

func readInputs(size bus.AccessSize, addr uint32) bus.Inputs {
	return bus.Inputs{
		ResetActive: true,
		Request: bus.Request{
			Valid:   true,
			Size:    size,
			Address: addr,
		},
	}
}

func cycle(a *WidthAdapter, in bus.Inputs) bus.Outputs {
	out := a.Evaluate(in)
	a.Advance()

	return out
}

var _ = Describe("WidthAdapter", func() {
	var a *WidthAdapter

	BeforeEach(func() {
		a = NewWidthAdapter()
	})

	It("should start with an empty latch", func() {
		Expect(a.Current()).To(Equal(PendingRequest{}))
	})

	Context("when translating the address", func() {
		It("should clear the lane bits", func() {
			out := a.Evaluate(readInputs(bus.Byte, 0x0000_1237))

			Expect(out.BusRequest.Valid).To(BeTrue())
			Expect(out.BusRequest.Write).To(BeFalse())
			Expect(out.BusRequest.Address).To(Equal(uint32(0x0000_1230)))
			Expect(out.BusRequest.LineAddress()).To(Equal(uint32(0x246)))
		})

		It("should pass valid and write through", func() {
			in := bus.Inputs{ResetActive: true}
			out := a.Evaluate(in)

			Expect(out.BusRequest.Valid).To(BeFalse())
			Expect(out.BusRequest.Write).To(BeFalse())
			Expect(out.BusRequest.Strobe).To(Equal(uint8(0)))
		})
	})

	Context("when writing", func() {
		It("should replicate a byte into every lane", func() {
			out := a.Evaluate(writeInputs(bus.Byte, 0x0000_0003, 0x7A))

			Expect(out.BusRequest.Write).To(BeTrue())
			Expect(out.BusRequest.Address).To(Equal(uint32(0)))
			Expect(out.BusRequest.Strobe).To(Equal(uint8(0x08)))
			Expect(out.BusRequest.Data).To(Equal(uint64(0x7A7A7A7A_7A7A7A7A)))
		})

		It("should replicate a half word", func() {
			out := a.Evaluate(writeInputs(bus.Half, 0x0000_0106, 0xFFFF_BEEF))

			Expect(out.BusRequest.Address).To(Equal(uint32(0x0000_0100)))
			Expect(out.BusRequest.Strobe).To(Equal(uint8(0xC0)))
			Expect(out.BusRequest.Data).To(Equal(uint64(0xBEEFBEEF_BEEFBEEF)))
		})

		It("should replicate a word into the upper lanes", func() {
			out := a.Evaluate(writeInputs(bus.Word, 0x0000_1004, 0xAABBCCDD))

			Expect(out.BusRequest.Address).To(Equal(uint32(0x0000_1000)))
			Expect(out.BusRequest.Strobe).To(Equal(uint8(0xF0)))
			Expect(out.BusRequest.Data).To(Equal(uint64(0xAABBCCDD_AABBCCDD)))
		})

		It("should pass a double word through", func() {
			out := a.Evaluate(writeInputs(bus.Double, 0x0000_2000,
				0x01234567_89ABCDEF))

			Expect(out.BusRequest.Strobe).To(Equal(uint8(0xFF)))
			Expect(out.BusRequest.Data).To(Equal(uint64(0x01234567_89ABCDEF)))
		})

		It("should drop strobe bits shifted past the last lane", func() {
			out := a.Evaluate(writeInputs(bus.Word, 0x0000_0006, 0x11223344))

			Expect(out.BusRequest.Strobe).To(Equal(uint8(0xC0)))
		})

		It("should not strobe any lane for an unknown size", func() {
			out := a.Evaluate(writeInputs(bus.InvalidSize, 0x0000_0004,
				0xFFFF_FFFF_FFFF_FFFF))

			Expect(out.BusRequest.Valid).To(BeTrue())
			Expect(out.BusRequest.Strobe).To(Equal(uint8(0)))
			Expect(out.BusRequest.Data).To(Equal(uint64(0)))
		})

		It("should not drive write data on a read", func() {
			in := readInputs(bus.Double, 0x0000_0008)
			in.Request.Data = 0xDEAD_BEEF

			out := a.Evaluate(in)

			Expect(out.BusRequest.Strobe).To(Equal(uint8(0)))
			Expect(out.BusRequest.Data).To(Equal(uint64(0)))
		})

		It("should strobe the lanes of every naturally aligned access", func() {
			patterns := map[bus.AccessSize]uint8{
				bus.Byte:   0x01,
				bus.Half:   0x03,
				bus.Word:   0x0F,
				bus.Double: 0xFF,
			}

			for size, pattern := range patterns {
				step := uint32(size.ByteCount())
				for offset := uint32(0); offset < bus.WordBytes; offset += step {
					out := a.Evaluate(writeInputs(size, 0x40+offset, 0))
					Expect(out.BusRequest.Strobe).To(
						Equal(pattern<<offset),
						"size %s offset %d", size, offset)
				}
			}
		})
	})

	Context("when reading", func() {
		It("should respond one cycle after the request", func() {
			out := cycle(a, readInputs(bus.Word, 0x0000_1004))
			Expect(out.Response.Valid).To(BeFalse())

			out = cycle(a, bus.Inputs{
				ResetActive: true,
				BusResponse: bus.BusResponse{
					Valid: true,
					Data:  0x11223344_55667788,
				},
			})

			Expect(out.Response.Valid).To(BeTrue())
			Expect(out.Response.Data).To(Equal(uint64(0x11223344)))
			Expect(out.Response.Address).To(Equal(uint32(0x0000_1004)))
		})

		It("should zero-extend the extracted lanes", func() {
			cycle(a, readInputs(bus.Byte, 0x0000_0005))

			out := a.Evaluate(bus.Inputs{
				ResetActive: true,
				BusResponse: bus.BusResponse{
					Valid: true,
					Data:  0x0000_F000_0000_0000,
				},
			})

			Expect(out.Response.Data).To(Equal(uint64(0xF0)))
		})

		It("should extract every lane of every naturally aligned access", func() {
			word := uint64(0x88776655_44332211)

			for size := bus.Byte; size <= bus.Double; size++ {
				step := uint32(size.ByteCount())
				for offset := uint32(0); offset < bus.WordBytes; offset += step {
					a = NewWidthAdapter()
					cycle(a, readInputs(size, 0x80+offset))

					out := a.Evaluate(bus.Inputs{
						ResetActive: true,
						BusResponse: bus.BusResponse{Valid: true, Data: word},
					})

					expected := (word >> (8 * offset)) & size.Mask()
					Expect(out.Response.Data).To(Equal(expected),
						"size %s offset %d", size, offset)
				}
			}
		})

		It("should return the shifted word for an unknown size", func() {
			cycle(a, readInputs(bus.InvalidSize, 0x0000_0002))

			out := a.Evaluate(bus.Inputs{
				ResetActive: true,
				BusResponse: bus.BusResponse{
					Valid: true,
					Data:  0x88776655_44332211,
				},
			})

			Expect(out.Response.Data).To(Equal(uint64(0x00008877_66554433)))
		})

		It("should answer with the latched request, not the new one", func() {
			cycle(a, readInputs(bus.Half, 0x0000_0002))

			in := readInputs(bus.Byte, 0x0000_0007)
			in.BusResponse = bus.BusResponse{
				Valid: true,
				Data:  0x88776655_44332211,
			}
			out := cycle(a, in)

			Expect(out.Response.Data).To(Equal(uint64(0x4433)))
			Expect(out.Response.Address).To(Equal(uint32(0x0000_0002)))
			Expect(a.Current().Address).To(Equal(uint32(0x0000_0007)))
			Expect(a.Current().Size).To(Equal(bus.Byte))
		})

		It("should hold the latch while no request is valid", func() {
			cycle(a, readInputs(bus.Word, 0x0000_0010))
			cycle(a, bus.Inputs{ResetActive: true})
			cycle(a, bus.Inputs{ResetActive: true})

			Expect(a.Current()).To(Equal(PendingRequest{
				Address: 0x0000_0010,
				Size:    bus.Word,
			}))
		})

		It("should pass the bus valid through without a pending read", func() {
			out := a.Evaluate(bus.Inputs{
				ResetActive: true,
				BusResponse: bus.BusResponse{Valid: true, Data: 0xFF},
			})

			Expect(out.Response.Valid).To(BeTrue())
			Expect(out.Response.Address).To(Equal(uint32(0)))
		})
	})

	Context("when latching", func() {
		It("should set read enable only for reads", func() {
			a.Evaluate(readInputs(bus.Word, 0x0000_0004))
			Expect(a.Next().ReadEnable).To(BeTrue())

			a.Evaluate(writeInputs(bus.Word, 0x0000_0004, 0))
			Expect(a.Next().ReadEnable).To(BeFalse())
		})

		It("should capture the size and address of a write", func() {
			cycle(a, writeInputs(bus.Half, 0x0000_000A, 0x1234))

			Expect(a.Current()).To(Equal(PendingRequest{
				Address: 0x0000_000A,
				Size:    bus.Half,
			}))
		})

		It("should not change the current latch on evaluate", func() {
			a.Evaluate(readInputs(bus.Double, 0x0000_0100))

			Expect(a.Current()).To(Equal(PendingRequest{}))
			Expect(a.Next().Address).To(Equal(uint32(0x0000_0100)))
		})

		It("should give the same outputs when evaluated twice", func() {
			cycle(a, readInputs(bus.Word, 0x0000_0004))

			in := writeInputs(bus.Byte, 0x0000_0011, 0x5A)
			in.BusResponse = bus.BusResponse{Valid: true, Data: 0xCAFE_0000_0000}

			first := a.Evaluate(in)
			firstNext := a.Next()
			second := a.Evaluate(in)

			Expect(second).To(Equal(first))
			Expect(a.Next()).To(Equal(firstNext))
		})

		It("should stay put with no traffic", func() {
			cycle(a, bus.Inputs{ResetActive: true})

			Expect(a.Current()).To(Equal(PendingRequest{}))
		})
	})

	Context("when reset is asserted", func() {
		It("should clear the latch", func() {
			cycle(a, readInputs(bus.Double, 0x0000_0FF8))

			cycle(a, bus.Inputs{ResetActive: false})

			Expect(a.Current()).To(Equal(PendingRequest{}))
		})

		It("should win over a request in the same cycle", func() {
			in := readInputs(bus.Word, 0x0000_0020)
			in.ResetActive = false

			out := cycle(a, in)

			Expect(out.BusRequest.Valid).To(BeTrue())
			Expect(a.Current()).To(Equal(PendingRequest{}))
		})

		It("should be idempotent", func() {
			cycle(a, readInputs(bus.Half, 0x0000_0032))
			cycle(a, bus.Inputs{ResetActive: false})
			once := a.Current()

			cycle(a, bus.Inputs{ResetActive: false})

			Expect(a.Current()).To(Equal(once))
		})
	})
})
