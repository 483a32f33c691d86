package scroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemaining(t *testing.T) {
	assert.Equal(t, 70, Geometry{Offset: 10, ViewportHeight: 20, ContentHeight: 100}.Remaining())
	assert.Equal(t, -5, Geometry{Offset: 0, ViewportHeight: 20, ContentHeight: 15}.Remaining())
}

func TestFiresWithinThreshold(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		want   bool
	}{
		{"far", 0, false},
		{"just outside", 74, false},
		{"at threshold", 75, true},
		{"at end", 80, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(5, time.Millisecond)
			lease := s.Acquire()
			f, ok := s.Observe(lease, Geometry{Offset: tt.offset, ViewportHeight: 20, ContentHeight: 100})
			require.True(t, ok)
			assert.Equal(t, tt.want, s.Fire(f))
		})
	}
}

func TestObservationsAreCoalesced(t *testing.T) {
	s := New(5, time.Millisecond)
	lease := s.Acquire()

	frame, ok := s.Observe(lease, Geometry{Offset: 0, ViewportHeight: 20, ContentHeight: 100})
	require.True(t, ok)
	for offset := 1; offset <= 78; offset++ {
		_, again := s.Observe(lease, Geometry{Offset: offset, ViewportHeight: 20, ContentHeight: 100})
		assert.False(t, again, "offset %d scheduled a second frame", offset)
	}

	// The single frame sees the latest geometry
	assert.True(t, s.Fire(frame))
	assert.False(t, s.Fire(frame), "a frame fires once")

	_, ok = s.Observe(lease, Geometry{Offset: 78, ViewportHeight: 20, ContentHeight: 100})
	assert.True(t, ok, "a new frame may be scheduled after firing")
}

func TestReleasedLeaseNeverFires(t *testing.T) {
	s := New(5, time.Millisecond)
	lease := s.Acquire()
	f, ok := s.Observe(lease, Geometry{Offset: 80, ViewportHeight: 20, ContentHeight: 100})
	require.True(t, ok)

	s.Release(lease)
	assert.False(t, s.Fire(f))

	_, ok = s.Observe(lease, Geometry{Offset: 80, ViewportHeight: 20, ContentHeight: 100})
	assert.False(t, ok)
}

func TestReacquireInvalidatesOldLease(t *testing.T) {
	s := New(5, time.Millisecond)
	first := s.Acquire()
	f, _ := s.Observe(first, Geometry{Offset: 80, ViewportHeight: 20, ContentHeight: 100})

	second := s.Acquire()
	assert.NotEqual(t, first, second)
	assert.False(t, s.Fire(f))
	assert.False(t, s.Active(first))

	// Releasing the stale lease leaves the new one alone
	s.Release(first)
	assert.True(t, s.Active(second))
}

func TestShortContentIsNearEnd(t *testing.T) {
	s := New(5, time.Millisecond)
	lease := s.Acquire()
	f, _ := s.Observe(lease, Geometry{ViewportHeight: 40, ContentHeight: 10})
	assert.True(t, s.Fire(f))
}

func TestDefaults(t *testing.T) {
	s := New(-1, 0)
	assert.Equal(t, DefaultThreshold, s.Threshold())
	assert.Equal(t, DefaultFrameInterval, s.Interval())
	assert.Equal(t, 0, New(0, time.Second).Threshold())
}
