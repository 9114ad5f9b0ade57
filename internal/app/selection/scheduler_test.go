package selection

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerCoalescesBursts(t *testing.T) {
	var fired atomic.Int32
	scheduler := NewReloadScheduler(20*time.Millisecond, nil, func() {
		fired.Add(1)
	})

	for i := 0; i < 5; i++ {
		require.True(t, scheduler.Schedule())
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 5*time.Millisecond)

	// Settled; no further firings.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load())
}

func TestSchedulerGateBlocksScheduling(t *testing.T) {
	var fired atomic.Int32
	visible := false
	scheduler := NewReloadScheduler(10*time.Millisecond, func() bool { return visible }, func() {
		fired.Add(1)
	})

	require.False(t, scheduler.Schedule())
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, int32(0), fired.Load())

	visible = true
	require.True(t, scheduler.Schedule())
	require.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerStopCancelsPending(t *testing.T) {
	var fired atomic.Int32
	scheduler := NewReloadScheduler(20*time.Millisecond, nil, func() {
		fired.Add(1)
	})

	require.True(t, scheduler.Schedule())
	scheduler.Stop()

	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(0), fired.Load())
}

func TestSchedulerNilCallbackNeverSchedules(t *testing.T) {
	scheduler := NewReloadScheduler(time.Millisecond, nil, nil)
	require.False(t, scheduler.Schedule())
}
