package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	ProgressChanged <-chan ProgressChange
	QueueChanged    <-chan QueueChange
	RatingChanged   <-chan RatingChange
	PlayRegistered  <-chan PlayRegistered
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	// Internal write channels
	stateCh    chan StateChange
	trackCh    chan TrackChange
	progressCh chan ProgressChange
	queueCh    chan QueueChange
	ratingCh   chan RatingChange
	playCh     chan PlayRegistered
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		trackCh:    make(chan TrackChange, eventBufferSize),
		progressCh: make(chan ProgressChange, eventBufferSize),
		queueCh:    make(chan QueueChange, eventBufferSize),
		ratingCh:   make(chan RatingChange, eventBufferSize),
		playCh:     make(chan PlayRegistered, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.ProgressChanged = s.progressCh
	s.QueueChanged = s.queueCh
	s.RatingChanged = s.ratingCh
	s.PlayRegistered = s.playCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers e on ch without blocking; events are dropped when the
// subscriber lags a full buffer behind.
func send[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
	}
}

func (s *Subscription) sendState(e StateChange)       { send(s.stateCh, e) }
func (s *Subscription) sendTrack(e TrackChange)       { send(s.trackCh, e) }
func (s *Subscription) sendProgress(e ProgressChange) { send(s.progressCh, e) }
func (s *Subscription) sendQueue(e QueueChange)       { send(s.queueCh, e) }
func (s *Subscription) sendRating(e RatingChange)     { send(s.ratingCh, e) }
func (s *Subscription) sendPlay(e PlayRegistered)     { send(s.playCh, e) }
func (s *Subscription) sendError(e ErrorEvent)        { send(s.errorCh, e) }
