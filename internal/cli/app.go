package cli

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavesmobile/internal/config"
	"github.com/llehouerou/wavesmobile/internal/engine"
	"github.com/llehouerou/wavesmobile/internal/errmsg"
	"github.com/llehouerou/wavesmobile/internal/lastfm"
	"github.com/llehouerou/wavesmobile/internal/playback"
	"github.com/llehouerou/wavesmobile/internal/remote"
	"github.com/llehouerou/wavesmobile/internal/state"
)

// errNoServer is returned by commands that need the library backend.
var errNoServer = errors.New("no server configured: set [server] api_url")

// displayError carries the user-facing line for a failed operation.
type displayError struct {
	msg string
	err error
}

func (e *displayError) Error() string { return e.msg }
func (e *displayError) Unwrap() error { return e.err }

// opError tags err with the operation that failed.
func opError(op errmsg.Op, err error) error {
	if err == nil {
		return nil
	}
	return &displayError{msg: errmsg.Format(op, err), err: err}
}

// session bundles what a command needs to drive the playback store.
type session struct {
	kv     *state.Manager
	client *remote.Client // nil without server config
	eng    *engine.Memory
	store  playback.Service
}

func openState(c *config.Config) (*state.Manager, error) {
	kv, err := state.Open(c.State.Path)
	if err != nil {
		return nil, opError(errmsg.OpInitialize, err)
	}
	return kv, nil
}

func newClient(c *config.Config) *remote.Client {
	if !c.HasServerConfig() {
		return nil
	}
	return remote.New(c.Server.APIURL, c.Server.Token)
}

// newSyncer fans remote persistence out to the backend and, when linked, Last.fm.
func newSyncer(c *config.Config, kv state.Interface, client *remote.Client) remote.Syncer {
	var sinks remote.Fanout
	if client != nil {
		sinks = append(sinks, client)
	}
	if c.HasLastfmConfig() {
		sess, err := state.GetLastfmSession(kv)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("Last.fm session unreadable, scrobbling disabled")
		case sess != nil:
			lf := lastfm.New(c.Lastfm.APIKey, c.Lastfm.APISecret)
			lf.SetSessionKey(sess.SessionKey)
			sinks = append(sinks, lastfm.NewSyncer(lf))
		}
	}
	if len(sinks) == 0 {
		return remote.Nop{}
	}
	return sinks
}

func openSession(c *config.Config) (*session, error) {
	kv, err := openState(c)
	if err != nil {
		return nil, err
	}
	client := newClient(c)
	eng := engine.NewMemory()
	store := playback.New(eng, kv, newSyncer(c, kv, client),
		playback.WithMediaURL(c.Server.MediaURL),
		playback.WithWindowSize(c.Playback.WindowSize()),
		playback.WithPlayThreshold(c.Playback.PlayThreshold()),
		playback.WithSyncTimeout(c.Playback.SyncTimeout()),
		playback.WithLogger(log.Logger),
	)
	return &session{kv: kv, client: client, eng: eng, store: store}, nil
}

// Close flushes pending remote calls and releases local state.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		log.Warn().Err(err).Msg("close playback store")
	}
	if err := s.eng.Close(); err != nil {
		log.Warn().Err(err).Msg("close engine")
	}
	if err := s.kv.Close(); err != nil {
		log.Warn().Err(err).Msg("close state")
	}
}
