package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

func expectEvent(
	evt *MockEvent,
	handler Handler,
	t VTimeInSec,
	secondary bool,
) {
	evt.EXPECT().Time().Return(t).AnyTimes()
	evt.EXPECT().Handler().Return(handler).AnyTimes()
	evt.EXPECT().IsSecondary().Return(secondary).AnyTimes()
}

var _ = Describe("SerialEngine", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should run events in time order", func() {
		handler1 := NewMockHandler(mockCtrl)
		handler2 := NewMockHandler(mockCtrl)
		evt1 := NewMockEvent(mockCtrl)
		evt2 := NewMockEvent(mockCtrl)
		evt3 := NewMockEvent(mockCtrl)

		expectEvent(evt1, handler1, 4.0, false)
		expectEvent(evt2, handler2, 2.0, false)
		expectEvent(evt3, handler1, 3.0, false)

		handleEvt2 := handler2.EXPECT().Handle(evt2).Do(func(e Event) {
			engine.Schedule(evt3)
		})
		handleEvt3 := handler1.EXPECT().
			Handle(evt3).Do(func(e Event) {}).After(handleEvt2)
		handler1.EXPECT().
			Handle(evt1).Do(func(e Event) {}).After(handleEvt3)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		_ = engine.Run()

		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(4.0)))
	})

	It("should handle secondary events after same-time primary events", func() {
		handler1 := NewMockHandler(mockCtrl)
		handler2 := NewMockHandler(mockCtrl)
		evt1 := NewMockEvent(mockCtrl)
		evt2 := NewMockEvent(mockCtrl)

		expectEvent(evt1, handler1, 2.0, true)
		expectEvent(evt2, handler2, 2.0, false)

		handleEvt2 := handler2.EXPECT().Handle(evt2)
		handler1.EXPECT().Handle(evt1).After(handleEvt2)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		_ = engine.Run()
	})

	It("should stop at the horizon when running until a time", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := NewMockEvent(mockCtrl)
		evt2 := NewMockEvent(mockCtrl)

		expectEvent(evt1, handler, 2.0, false)
		expectEvent(evt2, handler, 10.0, false)

		handler.EXPECT().Handle(evt1)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		_ = engine.RunUntil(5.0)

		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(5.0)))
	})

	It("should resume after running until a time", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := NewMockEvent(mockCtrl)
		evt2 := NewMockEvent(mockCtrl)

		expectEvent(evt1, handler, 2.0, false)
		expectEvent(evt2, handler, 10.0, false)

		handleEvt1 := handler.EXPECT().Handle(evt1)
		handler.EXPECT().Handle(evt2).After(handleEvt1)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		_ = engine.RunUntil(5.0)
		_ = engine.RunUntil(20.0)

		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(20.0)))
	})

	It("should step one event at a time", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := NewMockEvent(mockCtrl)
		evt2 := NewMockEvent(mockCtrl)

		expectEvent(evt1, handler, 1.0, false)
		expectEvent(evt2, handler, 2.0, false)

		handler.EXPECT().Handle(evt1)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		stepped, err := engine.Step()

		Expect(err).To(BeNil())
		Expect(stepped).To(BeIdenticalTo(evt1))
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(1.0)))
	})

	It("should return nil when stepping an empty queue", func() {
		stepped, err := engine.Step()

		Expect(err).To(BeNil())
		Expect(stepped).To(BeNil())
	})

	It("should panic when scheduling into the past", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := NewMockEvent(mockCtrl)
		expectEvent(evt1, handler, 3.0, false)
		handler.EXPECT().Handle(evt1)

		engine.Schedule(evt1)
		_ = engine.Run()

		evt2 := NewMockEvent(mockCtrl)
		expectEvent(evt2, handler, 1.0, false)

		Expect(func() { engine.Schedule(evt2) }).To(Panic())
	})

	It("should invoke simulation end handlers", func() {
		called := false
		engine.RegisterSimulationEndHandler(endHandlerFunc(func(now VTimeInSec) {
			called = true
		}))

		engine.Finished()

		Expect(called).To(BeTrue())
	})
})

type endHandlerFunc func(now VTimeInSec)

func (f endHandlerFunc) Handle(now VTimeInSec) {
	f(now)
}
