package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/llehouerou/wavesmobile/internal/errmsg"
)

var rateCmd = &cobra.Command{
	Use:   "rate TRACK_ID RATING",
	Short: "Rate a track of the saved queue (0-5, half steps)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("TRACK_ID: %w", err)
		}
		rating, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("RATING: %w", err)
		}

		sess, err := openSession(cfg)
		if err != nil {
			return err
		}
		// Close waits for the remote calls.
		defer sess.Close()

		if err := sess.store.RestoreSavedQueue(cmd.Context()); err != nil {
			return opError(errmsg.OpQueueRestore, err)
		}
		if err := sess.store.SetRating(cmd.Context(), id, rating); err != nil {
			return opError(errmsg.OpRatingSync, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Track %d rated %s.\n", id, formatRating(rating))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rateCmd)
}
