package playback

import (
	"context"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavesmobile/internal/engine"
	"github.com/llehouerou/wavesmobile/internal/playlist"
	"github.com/llehouerou/wavesmobile/internal/state"
)

func TestReorderUpNext_SingleAbsoluteMove(t *testing.T) {
	f := newFixture()
	f.load(t, makeTracks(12))
	f.eng.ResetCalls()
	sub := f.svc.Subscribe()

	// first Up Next item dropped on the third position
	require.NoError(t, f.svc.ReorderUpNext(context.Background(), 0, 2))

	moves := f.eng.CallsOf(engine.OpMove)
	require.Len(t, moves, 1)
	assert.Equal(t, []any{1, 3}, moves[0].Args)

	want := []int64{1, 3, 4, 2, 5, 6, 7, 8, 9, 10, 11, 12}
	assert.Equal(t, want, ids(f.svc.Snapshot().Queue))
	engineQueue, err := f.eng.Queue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, ids(engineQueue))
	assert.Equal(t, []int64{3, 4, 2, 5, 6, 7, 8, 9, 10, 11}, ids(f.svc.UpNext().Tracks))

	qc := <-sub.QueueChanged
	assert.Equal(t, want, ids(qc.Tracks))
	assert.Equal(t, 0, qc.Index)

	saved, err := state.LoadQueue(f.kv)
	require.NoError(t, err)
	assert.Equal(t, want, ids(saved))
}

func TestReorderBackTo_KeepsActiveTrack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		stop := f.run(t)
		f.load(t, makeTracks(6))
		require.NoError(t, f.svc.SkipToIndex(context.Background(), 4))
		synctest.Wait()
		f.eng.ResetCalls()

		// Back To is [4 3 2 1]; drag id 4 behind id 2
		require.NoError(t, f.svc.ReorderBackTo(context.Background(), 0, 2))

		moves := f.eng.CallsOf(engine.OpMove)
		require.Len(t, moves, 1)
		assert.Equal(t, []any{3, 1}, moves[0].Args)

		snap := f.svc.Snapshot()
		assert.Equal(t, []int64{1, 4, 2, 3, 5, 6}, ids(snap.Queue))
		assert.Equal(t, int64(5), snap.Current.ID)
		assert.Equal(t, 4, snap.Index)
		assert.Equal(t, []int64{3, 2, 4, 1}, ids(snap.BackTo.Tracks))

		saved, err := state.LoadQueue(f.kv)
		require.NoError(t, err)
		assert.Equal(t, []int64{5, 6}, ids(saved), "snapshot starts at the active track")

		stop()
	})
}

func TestBeginReorder_OutsideWindow(t *testing.T) {
	f := newFixture(WithWindowSize(3))
	f.load(t, makeTracks(10))
	f.eng.ResetCalls()

	_, err := f.svc.BeginReorder(playlist.Forward, 3)
	require.ErrorIs(t, err, ErrInvalidIndex)

	_, err = f.svc.BeginReorder(playlist.Backward, 0)
	require.ErrorIs(t, err, ErrInvalidIndex, "nothing behind the first track")

	r, err := f.svc.BeginReorder(playlist.Forward, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, r.From())
	require.ErrorIs(t, r.Drop(context.Background(), 3), ErrInvalidIndex)

	assert.Empty(t, f.eng.Calls())
}

func TestReorder_StaleDropFailsClosed(t *testing.T) {
	f := newFixture()
	f.load(t, makeTracks(5))

	r, err := f.svc.BeginReorder(playlist.Forward, 0)
	require.NoError(t, err)

	// the queue changes under the drag
	require.NoError(t, f.svc.Move(context.Background(), 4, 1))
	f.eng.ResetCalls()

	err = r.Drop(context.Background(), 2)

	require.ErrorIs(t, err, ErrStaleReorder)
	assert.Empty(t, f.eng.Calls())
}

func TestReorder_DropInPlaceIsNoop(t *testing.T) {
	f := newFixture()
	f.load(t, makeTracks(4))
	f.eng.ResetCalls()

	require.NoError(t, f.svc.ReorderUpNext(context.Background(), 1, 1))

	assert.Empty(t, f.eng.Calls())
}

func TestReorder_EngineFailureLeavesMirror(t *testing.T) {
	f := newFixture()
	f.load(t, makeTracks(4))
	f.eng.SetError(engine.OpMove, engine.ErrIndexOutOfRange)

	err := f.svc.ReorderUpNext(context.Background(), 0, 2)

	require.ErrorIs(t, err, engine.ErrIndexOutOfRange)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(f.svc.Snapshot().Queue))
}
