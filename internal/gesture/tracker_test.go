package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/sidemenu/internal/transition"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestTrackerTap(t *testing.T) {
	tr := NewTracker(1)
	tr.Press(10, t0)
	require.True(t, tr.Active())

	got := tr.Release(10, t0.Add(50*time.Millisecond))
	require.Equal(t, []transition.GestureSample{{Kind: transition.Tap, Phase: transition.Ended}}, got)
	require.False(t, tr.Active())
}

func TestTrackerPan(t *testing.T) {
	tr := NewTracker(2)
	tr.Press(5, t0)

	require.Nil(t, tr.Move(5, t0.Add(10*time.Millisecond)), "no motion yet")

	got := tr.Move(8, t0.Add(20*time.Millisecond))
	require.Len(t, got, 2)
	require.Equal(t, transition.Began, got[0].Phase)
	require.Equal(t, transition.Changed, got[1].Phase)
	require.Equal(t, 3.0, got[1].Translation)

	got = tr.Move(15, t0.Add(40*time.Millisecond))
	require.Len(t, got, 1)
	require.Equal(t, 10.0, got[0].Translation)

	got = tr.Release(15, t0.Add(50*time.Millisecond))
	require.Len(t, got, 1)
	require.Equal(t, transition.Ended, got[0].Phase)
	require.Equal(t, 10.0, got[0].Translation)
	// 10 cells in 50ms, doubled by the velocity scale.
	require.InDelta(t, 400, got[0].Velocity, 1e-6)
}

func TestTrackerVelocityWindow(t *testing.T) {
	tr := NewTracker(1)
	tr.Press(0, t0)
	tr.Move(1, t0.Add(10*time.Millisecond))
	// long pause, then a fast flick
	tr.Move(1, t0.Add(500*time.Millisecond))
	got := tr.Release(21, t0.Add(540*time.Millisecond))

	require.Len(t, got, 1)
	// Only the last 100ms counts: 20 cells in 40ms.
	require.InDelta(t, 500, got[0].Velocity, 1e-6)
	require.Equal(t, 21.0, got[0].Translation)
}

func TestTrackerReleaseWithoutMoveEvents(t *testing.T) {
	tr := NewTracker(1)
	tr.Press(0, t0)

	got := tr.Release(30, t0.Add(30*time.Millisecond))
	require.Len(t, got, 2)
	require.Equal(t, transition.Began, got[0].Phase)
	require.Equal(t, transition.Ended, got[1].Phase)
	require.InDelta(t, 1000, got[1].Velocity, 1e-6)
}

func TestTrackerCancel(t *testing.T) {
	tr := NewTracker(1)
	require.Nil(t, tr.Cancel())

	tr.Press(0, t0)
	require.Nil(t, tr.Cancel(), "a press that never moved cancels silently")

	tr.Press(0, t0)
	tr.Move(4, t0.Add(10*time.Millisecond))
	got := tr.Cancel()
	require.Len(t, got, 1)
	require.Equal(t, transition.Cancelled, got[0].Phase)
	require.Equal(t, 4.0, got[0].Translation)
	require.False(t, tr.Active())
}

func TestTrackerIgnoresEventsWithoutPress(t *testing.T) {
	tr := NewTracker(0)
	require.Nil(t, tr.Move(3, t0))
	require.Nil(t, tr.Release(3, t0))
}
