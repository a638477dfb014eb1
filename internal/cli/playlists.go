package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/wavesmobile/internal/errmsg"
	"github.com/llehouerou/wavesmobile/internal/remote"
)

func requireClient() (*remote.Client, error) {
	c := newClient(cfg)
	if c == nil {
		return nil, errNoServer
	}
	return c, nil
}

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "List the backend playlists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := requireClient()
		if err != nil {
			return err
		}
		lists, err := c.Playlists(cmd.Context())
		if err != nil {
			return opError(errmsg.OpPlaylistList, err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tTRACKS")
		for _, p := range lists {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, humanize.Comma(int64(p.TrackCount)))
		}
		return tw.Flush()
	},
}

var playlistsCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireClient()
		if err != nil {
			return err
		}
		p, err := c.CreatePlaylist(cmd.Context(), args[0])
		if err != nil {
			return opError(errmsg.OpPlaylistCreate, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created playlist %d %q.\n", p.ID, p.Name)
		return nil
	},
}

var playlistsAddCmd = &cobra.Command{
	Use:   "add PLAYLIST_ID TRACK_ID",
	Short: "Add a track to a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		playlistID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("PLAYLIST_ID: %w", err)
		}
		trackID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("TRACK_ID: %w", err)
		}

		c, err := requireClient()
		if err != nil {
			return err
		}
		if err := c.AddToPlaylist(cmd.Context(), playlistID, trackID); err != nil {
			return opError(errmsg.OpPlaylistAddTrack, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added track %d to playlist %d.\n", trackID, playlistID)
		return nil
	},
}

var tracksQuery remote.TrackQuery

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List library tracks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := requireClient()
		if err != nil {
			return err
		}
		tracks, err := c.Tracks(cmd.Context(), tracksQuery)
		if err != nil {
			return opError(errmsg.OpLibraryLoad, err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tARTIST\tALBUM\tLENGTH\tRATING\tPLAYS")
		for _, t := range tracks {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				t.ID, t.Title, t.Artist, t.Album, formatClock(t.Duration),
				formatRating(t.Rating), humanize.Comma(int64(t.PlayCount)))
		}
		return tw.Flush()
	},
}

func init() {
	tracksCmd.Flags().StringVar(&tracksQuery.Artist, "artist", "", "filter by artist")
	tracksCmd.Flags().StringVar(&tracksQuery.Album, "album", "", "filter by album")
	tracksCmd.Flags().StringVar(&tracksQuery.Folder, "folder", "", "filter by folder")
	tracksCmd.Flags().IntVar(&tracksQuery.Limit, "limit", 50, "maximum number of tracks")

	playlistsCmd.AddCommand(playlistsCreateCmd, playlistsAddCmd)
	rootCmd.AddCommand(playlistsCmd, tracksCmd)
}
