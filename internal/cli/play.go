package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/llehouerou/wavesmobile/internal/errmsg"
	"github.com/llehouerou/wavesmobile/internal/playback"
	"github.com/llehouerou/wavesmobile/internal/remote"
)

var errNoMatch = errors.New("no tracks match")

var (
	playQuery remote.TrackQuery
	playFor   time.Duration
	playTick  time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play library tracks, or resume the saved queue, on the simulated engine",
	Long: `Without filters the saved queue is restored and resumed. With --artist,
--album or --folder the matching library tracks replace the queue.

Playback runs on the in-process engine: time advances, plays are registered
and synced, nothing is decoded.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playQuery.Artist, "artist", "", "queue tracks of this artist")
	playCmd.Flags().StringVar(&playQuery.Album, "album", "", "queue tracks of this album")
	playCmd.Flags().StringVar(&playQuery.Folder, "folder", "", "queue tracks under this folder")
	playCmd.Flags().IntVar(&playQuery.Limit, "limit", 0, "maximum number of tracks")
	playCmd.Flags().DurationVar(&playFor, "for", 0, "stop after this long (default: until interrupted)")
	playCmd.Flags().DurationVar(&playTick, "tick", time.Second, "engine progress interval")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if playFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, playFor)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := sess.store.Subscribe()
	var wg sync.WaitGroup
	wg.Go(func() {
		if err := sess.store.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("playback store stopped")
		}
	})
	wg.Go(func() { sess.eng.Run(ctx, playTick) })
	wg.Go(func() { watch(ctx, sub, cmd.OutOrStdout()) })

	if err := start(ctx, sess); err != nil {
		cancel()
		wg.Wait()
		return err
	}

	<-ctx.Done()
	wg.Wait()
	return nil
}

func start(ctx context.Context, sess *session) error {
	if playQuery.Artist == "" && playQuery.Album == "" && playQuery.Folder == "" {
		if err := sess.store.RestoreSavedQueue(ctx); err != nil {
			return opError(errmsg.OpQueueRestore, err)
		}
		return opError(errmsg.OpPlaybackToggle, sess.store.TogglePlayPause(ctx))
	}

	if sess.client == nil {
		return opError(errmsg.OpLibraryLoad, errNoServer)
	}
	tracks, err := sess.client.Tracks(ctx, playQuery)
	if err != nil {
		return opError(errmsg.OpLibraryLoad, err)
	}
	if len(tracks) == 0 {
		return opError(errmsg.OpLibraryLoad, errNoMatch)
	}
	return opError(errmsg.OpPlaybackStart, sess.store.LoadQueue(ctx, tracks[0], tracks[1:]))
}

// watch prints track changes and registered plays until ctx is done.
func watch(ctx context.Context, sub *playback.Subscription, w io.Writer) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case tc := <-sub.TrackChanged:
			if tc.Current != nil {
				fmt.Fprintf(w, "▶ [#%d] %s (%s)\n", tc.Index, trackLine(*tc.Current), formatClock(tc.Current.Duration))
			}
		case pr := <-sub.PlayRegistered:
			log.Info().Int64("track_id", pr.TrackID).Int("play_count", pr.PlayCount).Msg("play registered")
		case sc := <-sub.StateChanged:
			log.Debug().Stringer("from", sc.Previous).Stringer("to", sc.Current).Msg("playback state")
		case e := <-sub.Error:
			log.Warn().Err(e.Err).Str("op", string(e.Operation)).Msg("playback event")
		}
	}
}
