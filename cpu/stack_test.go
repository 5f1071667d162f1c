package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	assert := assert.New(t)

	var s Stack
	assert.True(s.Empty())
	_, ok := s.Peek()
	assert.False(ok)
	_, err := s.Pop()
	assert.ErrorIs(err, ErrStackUnderflow)

	for n := range STACK_LIMIT - 1 {
		assert.NoError(s.Push(uint16(0x200 + 2*n)))
	}
	assert.True(s.Full())
	assert.ErrorIs(s.Push(0x300), ErrStackOverflow)
	assert.Equal(uint8(STACK_LIMIT-1), s.Sp)
	assert.Equal(uint16(0), s.Frame[0])

	value, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint16(0x200+2*(STACK_LIMIT-2)), value)

	for n := STACK_LIMIT - 2; n >= 0; n-- {
		value, err := s.Pop()
		assert.NoError(err)
		assert.Equal(uint16(0x200+2*n), value)
	}
	assert.True(s.Empty())

	assert.NoError(s.Push(0x222))
	s.Reset()
	assert.True(s.Empty())
	assert.Equal(uint16(0), s.Frame[1])
}
