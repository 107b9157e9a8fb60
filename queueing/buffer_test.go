package queueing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MHowells/ciw/sim"
)

type recordingHook struct {
	positions []*sim.HookPos
}

func (h *recordingHook) Func(ctx sim.HookCtx) {
	h.positions = append(h.positions, ctx.Pos)
}

func TestBufferIsFIFO(t *testing.T) {
	b := NewBuffer("Test.WaitingLine", 10)

	b.Push(1)
	b.Push(2)
	b.Push(3)

	assert.Equal(t, 3, b.Size())
	assert.Equal(t, 1, b.Peek())
	assert.Equal(t, 1, b.Pop())
	assert.Equal(t, 2, b.Pop())
	assert.Equal(t, 3, b.Pop())
	assert.Nil(t, b.Pop())
}

func TestBufferCapacity(t *testing.T) {
	b := NewBuffer("Test.WaitingLine", 2)

	b.Push(1)
	b.Push(2)

	assert.False(t, b.CanPush())
	assert.Panics(t, func() { b.Push(3) })
}

func TestBufferUnbounded(t *testing.T) {
	b := NewBuffer("Test.WaitingLine", -1)

	for i := 0; i < 1000; i++ {
		assert.True(t, b.CanPush())
		b.Push(i)
	}

	assert.Equal(t, 1000, b.Size())
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer("Test.WaitingLine", 4)

	b.Push(1)
	b.Clear()

	assert.Equal(t, 0, b.Size())
}

func TestBufferHooks(t *testing.T) {
	b := NewBuffer("Test.WaitingLine", 4)

	hook := &recordingHook{}
	b.AcceptHook(hook)

	b.Push(1)
	b.Pop()

	assert.Equal(t, []*sim.HookPos{HookPosBufPush, HookPosBufPop}, hook.positions)
}
