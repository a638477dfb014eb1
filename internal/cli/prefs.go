package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/llehouerou/wavesmobile/internal/state"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show the saved library preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		kv, err := openState(cfg)
		if err != nil {
			return err
		}
		defer kv.Close()

		path, err := state.LibraryPath(kv)
		if err != nil {
			return err
		}
		screen, err := state.SelectedLibraryScreen(kv)
		if err != nil {
			return err
		}
		streaming, err := state.StreamingMode(kv)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "library path:   %s\n", path)
		fmt.Fprintf(w, "library screen: %s\n", screen)
		fmt.Fprintf(w, "streaming mode: %t\n", streaming)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:       "set KEY VALUE",
	Short:     "Set a preference (library_path, library_screen, streaming_mode)",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{state.KeyLibraryPath, state.KeyLibraryScreen, state.KeyStreamingMode},
	RunE: func(_ *cobra.Command, args []string) error {
		kv, err := openState(cfg)
		if err != nil {
			return err
		}
		defer kv.Close()
		return setPreference(kv, args[0], args[1])
	},
}

func setPreference(kv state.Interface, key, value string) error {
	switch key {
	case state.KeyLibraryPath:
		return state.SetLibraryPath(kv, value)
	case state.KeyLibraryScreen:
		return state.SetSelectedLibraryScreen(kv, state.LibraryScreen(value))
	case state.KeyStreamingMode:
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("streaming_mode: %w", err)
		}
		return state.SetStreamingMode(kv, on)
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
}

func init() {
	prefsCmd.AddCommand(prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}
