package api

import (
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/widthbridge/bus"
)

var _ = Describe("Driver", func() {
	var (
		mockCtrl   *gomock.Controller
		mockDevice *MockDevice
		engine     sim.Engine
		devicePort sim.Port
		driver     *driverImpl
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockDevice = NewMockDevice(mockCtrl)
		engine = sim.NewSerialEngine()

		devicePort = sim.NewPort(nil, 4, 4, "Device.TopPort")
		mockDevice.EXPECT().TopPort().Return(devicePort).AnyTimes()

		driver = MakeDriverBuilder().
			WithEngine(engine).
			build("Driver", defaultPortFactory{bufSize: 1})
		driver.RegisterDevice(mockDevice)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should queue accesses in order", func() {
		var dst uint64

		driver.Store(0x1004, bus.Word, 0xAABBCCDD)
		driver.Load(0x1004, bus.Word, &dst)

		Expect(driver.pending).To(HaveLen(2))
		Expect(driver.pending[0].access.Op).To(Equal(OpStore))
		Expect(driver.pending[1].access.Op).To(Equal(OpLoad))
		Expect(driver.pending[1].dst).To(BeIdenticalTo(&dst))
	})

	It("should do nothing without accesses", func() {
		Expect(driver.Tick()).To(BeFalse())
	})

	It("should send a load and wait for its response", func() {
		var dst uint64
		driver.Load(0x0006, bus.Half, &dst)

		Expect(driver.Tick()).To(BeTrue())

		req, ok := driver.port.PeekOutgoing().(*mem.ReadReq)
		Expect(ok).To(BeTrue())
		Expect(req.Address).To(Equal(uint64(0x0006)))
		Expect(req.AccessByteSize).To(Equal(uint64(2)))
		Expect(req.Dst).To(Equal(devicePort.AsRemote()))
		Expect(driver.pending).To(BeEmpty())
		Expect(driver.Tick()).To(BeFalse())

		driver.port.Deliver(mem.DataReadyRspBuilder{}.
			WithSrc(devicePort.AsRemote()).
			WithDst(driver.port.AsRemote()).
			WithRspTo(req.ID).
			WithData([]byte{0xEF, 0xBE}).
			Build())

		Expect(driver.Tick()).To(BeTrue())
		Expect(dst).To(Equal(uint64(0xBEEF)))
		Expect(driver.inflight).To(BeNil())

		results := driver.Results()
		Expect(results).To(HaveLen(1))
		Expect(results[0].Access).To(Equal(
			Access{Op: OpLoad, Size: bus.Half, Address: 0x0006}))
		Expect(results[0].Result).To(Equal(uint64(0xBEEF)))
	})

	It("should send the low bytes of a store", func() {
		driver.Store(0x1004, bus.Word, 0x1234_AABBCCDD)

		driver.Tick()

		req, ok := driver.port.PeekOutgoing().(*mem.WriteReq)
		Expect(ok).To(BeTrue())
		Expect(req.Address).To(Equal(uint64(0x1004)))
		Expect(req.Data).To(Equal([]byte{0xDD, 0xCC, 0xBB, 0xAA}))

		driver.port.Deliver(mem.WriteDoneRspBuilder{}.
			WithSrc(devicePort.AsRemote()).
			WithDst(driver.port.AsRemote()).
			WithRspTo(req.ID).
			Build())
		driver.Tick()

		Expect(driver.Results()).To(HaveLen(1))
		Expect(driver.Results()[0].Result).To(BeZero())
	})

	It("should send no data for a store of unsupported size", func() {
		driver.Enqueue(Access{
			Op:      OpStore,
			Size:    bus.InvalidSize,
			Address: 0x10,
			Data:    0xFF,
		})

		driver.Tick()

		req := driver.port.PeekOutgoing().(*mem.WriteReq)
		Expect(req.Data).To(BeEmpty())
	})

	It("should panic on a response with nothing in flight", func() {
		driver.port.Deliver(mem.WriteDoneRspBuilder{}.
			WithSrc(devicePort.AsRemote()).
			WithDst(driver.port.AsRemote()).
			WithRspTo("unknown").
			Build())

		Expect(func() { driver.Tick() }).To(Panic())
	})
})
