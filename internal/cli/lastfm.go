package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/wavesmobile/internal/errmsg"
	"github.com/llehouerou/wavesmobile/internal/lastfm"
	"github.com/llehouerou/wavesmobile/internal/state"
)

var errNoLastfm = errors.New("no Last.fm credentials: set [lastfm] api_key and api_secret")

var (
	lastfmNoBrowser bool
	lastfmAddr      string
)

var lastfmCmd = &cobra.Command{
	Use:   "lastfm",
	Short: "Show the linked Last.fm account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		kv, err := openState(cfg)
		if err != nil {
			return err
		}
		defer kv.Close()

		sess, err := state.GetLastfmSession(kv)
		if err != nil {
			return err
		}
		if sess == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Last.fm not linked.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Linked to %s %s.\n", sess.Username, humanize.Time(sess.LinkedAt))
		return nil
	},
}

var lastfmLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Authorize scrobbling through the browser",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !cfg.HasLastfmConfig() {
			return errNoLastfm
		}
		kv, err := openState(cfg)
		if err != nil {
			return err
		}
		defer kv.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, linkTimeout)
		defer cancel()

		open := lastfm.OpenBrowser
		if lastfmNoBrowser {
			open = func(u string) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Open this URL to authorize:\n  %s\n", u)
				return nil
			}
		}

		client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		username, key, err := lastfm.Link(ctx, client, lastfmAddr, open)
		if err != nil {
			return opError(errmsg.OpLastfmLink, err)
		}
		if err := state.SaveLastfmSession(kv, username, key); err != nil {
			return opError(errmsg.OpLastfmLink, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Linked to %s.\n", username)
		return nil
	},
}

var lastfmUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Forget the Last.fm session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		kv, err := openState(cfg)
		if err != nil {
			return err
		}
		defer kv.Close()

		if err := state.DeleteLastfmSession(kv); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Last.fm unlinked.")
		return nil
	},
}

func init() {
	lastfmLinkCmd.Flags().BoolVar(&lastfmNoBrowser, "no-browser", false, "print the authorization URL instead of opening it")
	lastfmLinkCmd.Flags().StringVar(&lastfmAddr, "listen", lastfm.DefaultCallbackAddr, "address of the local callback server")
	lastfmCmd.AddCommand(lastfmLinkCmd, lastfmUnlinkCmd)
	rootCmd.AddCommand(lastfmCmd)
}

// linkTimeout bounds how long link waits for the browser round trip.
const linkTimeout = 5 * time.Minute
