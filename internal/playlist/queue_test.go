// internal/playlist/queue_test.go
//
//nolint:goconst // test file with repeated string literals
package playlist

import "testing"

func queueOf(paths ...string) *PlayingQueue {
	q := NewQueue()
	tracks := make([]Track, len(paths))
	for i, p := range paths {
		tracks[i] = Track{ID: int64(i + 1), Path: p}
	}
	q.Replace(0, tracks...)
	return q
}

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if q.Current() != nil {
		t.Error("Current() should be nil for empty queue")
	}
}

func TestQueue_Replace(t *testing.T) {
	q := queueOf("/old.mp3")

	track := q.Replace(0, Track{Path: "/new1.mp3"}, Track{Path: "/new2.mp3"})

	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
	if track == nil || track.Path != "/new1.mp3" {
		t.Errorf("returned track = %v, want /new1.mp3", track)
	}
}

func TestQueue_Replace_ClampsIndex(t *testing.T) {
	q := NewQueue()

	q.Replace(9, Track{Path: "/a.mp3"}, Track{Path: "/b.mp3"})
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}

	q.Replace(-3, Track{Path: "/a.mp3"})
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
}

func TestQueue_Replace_Empty(t *testing.T) {
	q := queueOf("/a.mp3")

	track := q.Replace(0)

	if track != nil {
		t.Error("Replace with no tracks should return nil")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}

func TestQueue_JumpTo(t *testing.T) {
	q := queueOf("/a.mp3", "/b.mp3", "/c.mp3")

	track := q.JumpTo(2)

	if q.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2", q.CurrentIndex())
	}
	if track == nil || track.Path != "/c.mp3" {
		t.Errorf("returned track = %v, want /c.mp3", track)
	}
}

func TestQueue_JumpTo_Invalid(t *testing.T) {
	q := queueOf("/a.mp3")

	if q.JumpTo(5) != nil {
		t.Error("JumpTo invalid index should return nil")
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (unchanged)", q.CurrentIndex())
	}
}

func TestQueue_HasNextHasPrevious(t *testing.T) {
	q := queueOf("/a.mp3", "/b.mp3")

	if q.HasPrevious() {
		t.Error("HasPrevious() at index 0 should be false")
	}
	if !q.HasNext() {
		t.Error("HasNext() at index 0 should be true")
	}

	q.JumpTo(1)
	if !q.HasPrevious() {
		t.Error("HasPrevious() at index 1 should be true")
	}
	if q.HasNext() {
		t.Error("HasNext() at last index should be false")
	}
}

func TestQueue_Clear(t *testing.T) {
	q := queueOf("/a.mp3", "/b.mp3")

	q.Clear()

	if !q.IsEmpty() {
		t.Error("IsEmpty() should be true after Clear")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}

func TestQueue_MoveKeepsActiveTrack(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		from, to int
	}{
		{"before to after", 2, 0, 4},
		{"after to before", 2, 4, 0},
		{"within upcoming", 1, 2, 4},
		{"within played", 3, 0, 2},
		{"active itself forward", 1, 1, 3},
		{"active itself backward", 3, 3, 0},
		{"onto active slot from before", 2, 0, 2},
		{"onto active slot from after", 2, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := queueOf("/a", "/b", "/c", "/d", "/e")
			q.JumpTo(tt.current)
			activeID := q.Current().ID

			if !q.Move(tt.from, tt.to) {
				t.Fatal("Move should succeed")
			}
			if q.Len() != 5 {
				t.Errorf("Len() = %d, want 5", q.Len())
			}
			if q.Current() == nil || q.Current().ID != activeID {
				t.Errorf("Current() = %v, want track %d", q.Current(), activeID)
			}
		})
	}
}

func TestQueue_Move_Invalid(t *testing.T) {
	q := queueOf("/a", "/b")

	if q.Move(0, 5) {
		t.Error("Move out of range should return false")
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
}

func TestQueue_Windows(t *testing.T) {
	q := queueOf("/a", "/b", "/c", "/d", "/e")
	q.JumpTo(2)

	up := q.UpNext(DefaultWindowSize)
	if up.Len() != 2 || up.Tracks[0].Path != "/d" {
		t.Errorf("UpNext = %v, want [/d /e]", up.Tracks)
	}

	back := q.BackTo(DefaultWindowSize)
	if back.Len() != 2 || back.Tracks[0].Path != "/b" || back.Tracks[1].Path != "/a" {
		t.Errorf("BackTo = %v, want [/b /a]", back.Tracks)
	}
}
