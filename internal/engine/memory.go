package engine

import (
	"context"
	"sync"
	"time"

	"github.com/llehouerou/wavesmobile/internal/playlist"
)

const eventBufferSize = 64

// Command names recorded by Memory.
const (
	OpSetQueue       = "setQueue"
	OpMove           = "move"
	OpUpdateMetadata = "updateMetadata"
	OpPlay           = "play"
	OpPause          = "pause"
	OpStop           = "stop"
	OpSeekTo         = "seekTo"
	OpSkip           = "skip"
	OpSkipToNext     = "skipToNext"
	OpSkipToPrevious = "skipToPrevious"
)

// Call is a recorded engine command.
type Call struct {
	Op   string
	Args []any
}

// Memory is an in-process engine with real queue semantics and simulated
// time. Nothing is decoded: Advance moves the clock forward.
type Memory struct {
	mu sync.Mutex

	queue    *playlist.PlayingQueue
	state    State
	position time.Duration

	events chan Event
	closed bool

	sendMu     sync.Mutex // serializes emission, guards sendClosed
	sendClosed bool

	calls []Call
	errs  map[string]error
}

// NewMemory creates an empty in-memory engine.
func NewMemory() *Memory {
	return &Memory{
		queue:  playlist.NewQueue(),
		state:  StateNone,
		events: make(chan Event, eventBufferSize),
		errs:   make(map[string]error),
	}
}

// Verify Memory implements Engine at compile time.
var _ Engine = (*Memory)(nil)

// command records the call and returns the injected error for op, if any.
// Must hold lock.
func (m *Memory) command(op string, args ...any) error {
	if m.closed {
		return ErrClosed
	}
	m.calls = append(m.calls, Call{Op: op, Args: args})
	return m.errs[op]
}

// emit sends events in order. Must NOT hold mu: the consumer may query back.
func (m *Memory) emit(events ...Event) {
	m.sendMu.Lock()
	defer m.sendMu.Unlock()
	if m.sendClosed {
		return
	}
	for _, e := range events {
		m.events <- e
	}
}

func (m *Memory) setStateLocked(s State, out []Event) []Event {
	if m.state == s {
		return out
	}
	m.state = s
	return append(out, PlaybackStateChanged{State: s})
}

func (m *Memory) SetQueue(_ context.Context, tracks []playlist.Track) error {
	m.mu.Lock()
	if err := m.command(OpSetQueue, len(tracks)); err != nil {
		m.mu.Unlock()
		return err
	}
	last := m.queue.CurrentIndex()
	m.queue.Replace(0, tracks...)
	m.position = 0
	var out []Event
	if m.queue.IsEmpty() {
		out = m.setStateLocked(StateNone, out)
	} else {
		out = m.setStateLocked(StateReady, out)
	}
	out = append(out, ActiveTrackChanged{Index: m.queue.CurrentIndex(), LastIndex: last})
	m.mu.Unlock()

	m.emit(out...)
	return nil
}

func (m *Memory) Move(_ context.Context, from, to int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.command(OpMove, from, to); err != nil {
		return err
	}
	if !m.queue.Move(from, to) {
		return ErrIndexOutOfRange
	}
	return nil
}

func (m *Memory) UpdateMetadataForTrack(_ context.Context, index int, patch MetadataPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.command(OpUpdateMetadata, index, patch); err != nil {
		return err
	}
	t := m.queue.Track(index)
	if t == nil {
		return ErrIndexOutOfRange
	}
	if patch.Rating != nil {
		t.Rating = *patch.Rating
	}
	if patch.PlayCount != nil {
		t.PlayCount = *patch.PlayCount
	}
	return nil
}

func (m *Memory) Play(_ context.Context) error {
	m.mu.Lock()
	if err := m.command(OpPlay); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.queue.IsEmpty() {
		m.mu.Unlock()
		return ErrEmptyQueue
	}
	if m.state == StateEnded {
		m.position = 0
	}
	out := m.setStateLocked(StatePlaying, nil)
	m.mu.Unlock()

	m.emit(out...)
	return nil
}

func (m *Memory) Pause(_ context.Context) error {
	m.mu.Lock()
	if err := m.command(OpPause); err != nil {
		m.mu.Unlock()
		return err
	}
	var out []Event
	if m.state.IsActive() {
		out = m.setStateLocked(StatePaused, out)
	}
	m.mu.Unlock()

	m.emit(out...)
	return nil
}

func (m *Memory) Stop(_ context.Context) error {
	m.mu.Lock()
	if err := m.command(OpStop); err != nil {
		m.mu.Unlock()
		return err
	}
	m.position = 0
	out := m.setStateLocked(StateStopped, nil)
	m.mu.Unlock()

	m.emit(out...)
	return nil
}

func (m *Memory) SeekTo(_ context.Context, position time.Duration) error {
	m.mu.Lock()
	if err := m.command(OpSeekTo, position); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.queue.IsEmpty() {
		m.mu.Unlock()
		return ErrEmptyQueue
	}
	m.position = m.clampLocked(position)
	out := []Event{m.progressLocked()}
	m.mu.Unlock()

	m.emit(out...)
	return nil
}

func (m *Memory) Skip(_ context.Context, index int) error {
	m.mu.Lock()
	if err := m.command(OpSkip, index); err != nil {
		m.mu.Unlock()
		return err
	}
	out, err := m.skipLocked(index)
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.emit(out...)
	return nil
}

func (m *Memory) SkipToNext(_ context.Context) error {
	m.mu.Lock()
	if err := m.command(OpSkipToNext); err != nil {
		m.mu.Unlock()
		return err
	}
	out, err := m.skipLocked(m.queue.CurrentIndex() + 1)
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.emit(out...)
	return nil
}

func (m *Memory) SkipToPrevious(_ context.Context) error {
	m.mu.Lock()
	if err := m.command(OpSkipToPrevious); err != nil {
		m.mu.Unlock()
		return err
	}
	out, err := m.skipLocked(m.queue.CurrentIndex() - 1)
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.emit(out...)
	return nil
}

func (m *Memory) skipLocked(index int) ([]Event, error) {
	last := m.queue.CurrentIndex()
	if m.queue.JumpTo(index) == nil {
		return nil, ErrIndexOutOfRange
	}
	m.position = 0
	return []Event{ActiveTrackChanged{Index: index, LastIndex: last}}, nil
}

func (m *Memory) Queue(_ context.Context) ([]playlist.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Tracks(), nil
}

func (m *Memory) ActiveTrackIndex(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.CurrentIndex(), nil
}

func (m *Memory) ActiveTrack(_ context.Context) (*playlist.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.queue.Current()
	if t == nil {
		return nil, nil //nolint:nilnil // no active track is not an error
	}
	cp := *t
	return &cp, nil
}

func (m *Memory) PlaybackState(_ context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *Memory) Events() <-chan Event {
	return m.events
}

// Advance moves simulated playback time forward by d while playing. At the
// end of a track it activates the next one, or ends playback.
func (m *Memory) Advance(d time.Duration) {
	m.mu.Lock()
	if m.closed || m.state != StatePlaying {
		m.mu.Unlock()
		return
	}
	m.position = m.clampLocked(m.position + d)
	out := []Event{m.progressLocked()}

	if cur := m.queue.Current(); cur != nil && cur.Duration > 0 && m.position >= cur.Duration {
		if m.queue.HasNext() {
			next, err := m.skipLocked(m.queue.CurrentIndex() + 1)
			if err == nil {
				out = append(out, next...)
			}
		} else {
			out = m.setStateLocked(StateEnded, out)
		}
	}
	m.mu.Unlock()

	m.emit(out...)
}

// Run advances time by tick on every tick until ctx is done.
func (m *Memory) Run(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Advance(tick)
		}
	}
}

// Close shuts the engine down and closes the event stream.
func (m *Memory) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.sendMu.Lock()
	defer m.sendMu.Unlock()
	m.sendClosed = true
	close(m.events)
	return nil
}

func (m *Memory) clampLocked(pos time.Duration) time.Duration {
	if pos < 0 {
		return 0
	}
	if cur := m.queue.Current(); cur != nil && cur.Duration > 0 && pos > cur.Duration {
		return cur.Duration
	}
	return pos
}

func (m *Memory) progressLocked() ProgressUpdated {
	var (
		duration time.Duration
		id       int64
	)
	if cur := m.queue.Current(); cur != nil {
		duration = cur.Duration
		id = cur.ID
	}
	return ProgressUpdated{
		Index:    m.queue.CurrentIndex(),
		TrackID:  id,
		Position: m.position,
		Buffered: max(m.position, duration),
		Duration: duration,
	}
}

// Test helpers

// Calls returns the recorded commands in order.
func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsOf returns the recorded commands named op.
func (m *Memory) CallsOf(op string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls forgets the recorded commands.
func (m *Memory) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// SetError makes every subsequent op command fail with err (nil clears it).
func (m *Memory) SetError(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, op)
		return
	}
	m.errs[op] = err
}

// SetState forces the playback state without emitting an event, simulating a
// change the client has not observed yet.
func (m *Memory) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

// Emit injects events on the stream as if the engine produced them.
func (m *Memory) Emit(events ...Event) {
	m.emit(events...)
}
