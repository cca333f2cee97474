package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTriggerCoalesces(t *testing.T) {
	var calls int32
	d := New(30*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.True(t, d.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.False(t, d.Pending())
}

func TestFlushRunsImmediately(t *testing.T) {
	var calls int32
	d := New(time.Hour, func() {
		atomic.AddInt32(&calls, 1)
	})

	d.Trigger()
	d.Flush()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.False(t, d.Pending())

	// Flush without a pending trigger is a no-op.
	d.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCancelDropsPending(t *testing.T) {
	var calls int32
	d := New(20*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	d.Trigger()
	d.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.False(t, d.Pending())
}

func TestTriggerAfterCancel(t *testing.T) {
	var calls int32
	d := New(20*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	d.Trigger()
	d.Cancel()
	d.Trigger()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
