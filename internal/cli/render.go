package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/wavesmobile/internal/playback"
	"github.com/llehouerou/wavesmobile/internal/playlist"
)

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}

func formatRating(r float64) string {
	if r <= 0 {
		return "unrated"
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", r), ".0") + "/5"
}

func trackLine(t playlist.Track) string {
	line := t.Title
	if t.Artist != "" {
		line += " - " + t.Artist
	}
	if t.Album != "" {
		line += " (" + t.Album + ")"
	}
	return line
}

func renderWindow(w io.Writer, title string, win playlist.Window) {
	fmt.Fprintf(w, "%s:\n", title)
	if win.Len() == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}
	for i, t := range win.Tracks {
		abs, _ := win.Absolute(i)
		fmt.Fprintf(w, "  %2d. [#%d] %s\n", i+1, abs, trackLine(t))
	}
}

// renderSnapshot prints the mirror the way the Now Playing screen shows it.
func renderSnapshot(w io.Writer, snap playback.Snapshot, now time.Time) {
	if snap.Current == nil {
		fmt.Fprintln(w, "Nothing queued.")
		return
	}
	cur := snap.Current

	fmt.Fprintf(w, "Now playing [#%d]: %s\n", snap.Index, trackLine(*cur))
	fmt.Fprintf(w, "  %s / %s (%d%%)  %s\n",
		formatClock(snap.Progress.Position), formatClock(cur.Duration),
		int(snap.Progress.Fraction()*100), snap.State)

	plays := "never played"
	if cur.PlayCount > 0 {
		plays = "played " + humanize.Comma(int64(cur.PlayCount)) + " " + pluralize(cur.PlayCount, "time", "times")
	}
	if !cur.LastPlayed.IsZero() {
		plays += ", last " + humanize.RelTime(cur.LastPlayed, now, "ago", "from now")
	}
	fmt.Fprintf(w, "  %s, %s\n", formatRating(cur.Rating), plays)

	if cur.Format != "" {
		fmt.Fprintf(w, "  %s %s\n", strings.ToUpper(cur.Format), formatQuality(*cur))
	}
	if len(snap.Palette) > 0 {
		line := "  palette " + strings.Join(snap.Palette.Values(), " ")
		if snap.Accent.Valid() {
			line += ", accent " + snap.Accent.Hex()
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	renderWindow(w, "Up next", snap.UpNext)
	renderWindow(w, "Back to", snap.BackTo)
}

func formatQuality(t playlist.Track) string {
	var parts []string
	if t.SampleRate > 0 {
		parts = append(parts, humanize.SIWithDigits(float64(t.SampleRate), 1, "Hz"))
	}
	if t.Bitrate > 0 {
		parts = append(parts, humanize.Comma(int64(t.Bitrate))+" kbps")
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
