package engine

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavesmobile/internal/playlist"
)

func tracks(n int, d time.Duration) []playlist.Track {
	out := make([]playlist.Track, n)
	for i := range out {
		out[i] = playlist.Track{ID: int64(i + 1), Duration: d}
	}
	return out
}

// drain returns every event currently buffered.
func drain(m *Memory) []Event {
	var out []Event
	for {
		select {
		case e := <-m.Events():
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestMemory_SetQueue_EmitsActiveTrack(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.SetQueue(ctx, tracks(3, time.Minute)))

	assert.Equal(t, []Event{
		PlaybackStateChanged{State: StateReady},
		ActiveTrackChanged{Index: 0, LastIndex: -1},
	}, drain(m))

	idx, err := m.ActiveTrackIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestMemory_PlayPause(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.ErrorIs(t, m.Play(ctx), ErrEmptyQueue)

	require.NoError(t, m.SetQueue(ctx, tracks(1, time.Minute)))
	require.NoError(t, m.Play(ctx))
	require.NoError(t, m.Play(ctx)) // already playing: no-op
	require.NoError(t, m.Pause(ctx))
	require.NoError(t, m.Pause(ctx))

	state, _ := m.PlaybackState(ctx)
	assert.Equal(t, StatePaused, state)

	var changes []State
	for _, e := range drain(m) {
		if sc, ok := e.(PlaybackStateChanged); ok {
			changes = append(changes, sc.State)
		}
	}
	assert.Equal(t, []State{StateReady, StatePlaying, StatePaused}, changes)
}

func TestMemory_Skip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.SetQueue(ctx, tracks(3, time.Minute)))
	drain(m)

	require.NoError(t, m.Skip(ctx, 2))
	require.ErrorIs(t, m.SkipToNext(ctx), ErrIndexOutOfRange)
	require.NoError(t, m.SkipToPrevious(ctx))
	require.ErrorIs(t, m.Skip(ctx, 7), ErrIndexOutOfRange)

	assert.Equal(t, []Event{
		ActiveTrackChanged{Index: 2, LastIndex: 0},
		ActiveTrackChanged{Index: 1, LastIndex: 2},
	}, drain(m))
}

func TestMemory_Move(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.SetQueue(ctx, tracks(4, time.Minute)))

	require.NoError(t, m.Move(ctx, 1, 3))
	require.ErrorIs(t, m.Move(ctx, -1, 0), ErrIndexOutOfRange)

	q, _ := m.Queue(ctx)
	got := make([]int64, len(q))
	for i, tr := range q {
		got[i] = tr.ID
	}
	assert.Equal(t, []int64{1, 3, 4, 2}, got)
	assert.Len(t, m.CallsOf(OpMove), 2)
}

func TestMemory_UpdateMetadata(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.SetQueue(ctx, tracks(2, time.Minute)))

	rating := 3.5
	require.NoError(t, m.UpdateMetadataForTrack(ctx, 1, MetadataPatch{Rating: &rating}))
	require.ErrorIs(t, m.UpdateMetadataForTrack(ctx, 5, MetadataPatch{Rating: &rating}), ErrIndexOutOfRange)

	q, _ := m.Queue(ctx)
	assert.InDelta(t, 3.5, q[1].Rating, 0)
	assert.Zero(t, q[0].Rating)
}

func TestMemory_SeekClamps(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.SetQueue(ctx, tracks(1, time.Minute)))
	drain(m)

	require.NoError(t, m.SeekTo(ctx, 2*time.Minute))

	assert.Equal(t, []Event{
		ProgressUpdated{Index: 0, TrackID: 1, Position: time.Minute, Buffered: time.Minute, Duration: time.Minute},
	}, drain(m))
}

func TestMemory_AdvanceMovesToNextTrack(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.SetQueue(ctx, tracks(2, 10*time.Second)))
	require.NoError(t, m.Play(ctx))
	drain(m)

	m.Advance(4 * time.Second)
	m.Advance(6 * time.Second)

	events := drain(m)
	require.Len(t, events, 3)
	assert.Equal(t, ProgressUpdated{Index: 0, TrackID: 1, Position: 4 * time.Second, Buffered: 10 * time.Second, Duration: 10 * time.Second}, events[0])
	assert.Equal(t, ActiveTrackChanged{Index: 1, LastIndex: 0}, events[2])

	m.Advance(10 * time.Second)
	events = drain(m)
	assert.Contains(t, events, Event(PlaybackStateChanged{State: StateEnded}))
}

func TestMemory_AdvanceIgnoredWhenPaused(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.SetQueue(ctx, tracks(1, time.Minute)))
	drain(m)

	m.Advance(time.Second)

	assert.Empty(t, drain(m))
}

func TestMemory_InjectedError(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("boom")
	m.SetError(OpPause, boom)

	require.ErrorIs(t, m.Pause(ctx), boom)
	m.SetError(OpPause, nil)
	require.NoError(t, m.Pause(ctx))
}

func TestMemory_Close(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, ok := <-m.Events()
	assert.False(t, ok)
	require.ErrorIs(t, m.Play(ctx), ErrClosed)
	assert.NotPanics(t, func() { m.Emit(PlaybackStateChanged{}) })
}

func TestMemory_Run(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		m := NewMemory()
		require.NoError(t, m.SetQueue(ctx, tracks(1, time.Minute)))
		require.NoError(t, m.Play(ctx))
		drain(m)

		done := make(chan struct{})
		go func() {
			m.Run(ctx, time.Second)
			close(done)
		}()

		time.Sleep(3*time.Second + time.Millisecond)
		synctest.Wait()
		cancel()
		<-done

		var last ProgressUpdated
		for _, e := range drain(m) {
			if p, ok := e.(ProgressUpdated); ok {
				last = p
			}
		}
		assert.Equal(t, 3*time.Second, last.Position)
	})
}
