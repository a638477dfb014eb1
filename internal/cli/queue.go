package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/wavesmobile/internal/errmsg"
	"github.com/llehouerou/wavesmobile/internal/playback"
	"github.com/llehouerou/wavesmobile/internal/state"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the saved queue with its Up Next and Back To windows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := openSession(cfg)
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.store.RestoreSavedQueue(cmd.Context()); err != nil {
			if errors.Is(err, playback.ErrNoSavedSession) {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved session.")
				return nil
			}
			return opError(errmsg.OpQueueRestore, err)
		}
		renderSnapshot(cmd.OutOrStdout(), sess.store.Snapshot(), time.Now())
		return nil
	},
}

var queueMoveCmd = &cobra.Command{
	Use:   "move FROM TO",
	Short: "Move a queued track from one absolute position to another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("FROM: %w", err)
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("TO: %w", err)
		}

		sess, err := openSession(cfg)
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.store.RestoreSavedQueue(cmd.Context()); err != nil {
			return opError(errmsg.OpQueueRestore, err)
		}
		if err := sess.store.Move(cmd.Context(), from, to); err != nil {
			return opError(errmsg.OpQueueMove, err)
		}
		renderSnapshot(cmd.OutOrStdout(), sess.store.Snapshot(), time.Now())
		return nil
	},
}

var queueClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the saved queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		kv, err := openState(cfg)
		if err != nil {
			return err
		}
		defer kv.Close()

		if err := state.ClearQueue(kv); err != nil {
			return opError(errmsg.OpQueueSave, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved queue cleared.")
		return nil
	},
}

func init() {
	queueCmd.AddCommand(queueMoveCmd, queueClearCmd)
	rootCmd.AddCommand(queueCmd)
}
