// Package remote talks to the library backend: rating and play-count
// persistence, library listing and playlists.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/wavesmobile/internal/playlist"
)

// ErrNotFound is returned when the backend answers 404.
var ErrNotFound = errors.New("not found")

const userAgent = "wavesmobile/1.0 (https://github.com/llehouerou/wavesmobile)"

// Client is a library backend API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// New creates a new backend client. token may be empty.
func New(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
	}
}

// Playlist is a backend playlist.
type Playlist struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TrackCount int    `json:"track_count"`
}

// TrackQuery filters the library listing. Zero fields are ignored.
type TrackQuery struct {
	Artist string
	Album  string
	Folder string
	Limit  int
}

// Verify Client implements Syncer at compile time.
var _ Syncer = (*Client)(nil)

// Rate stores a track rating (0-5, half steps).
func (c *Client) Rate(ctx context.Context, trackID int64, rating float64) error {
	body := map[string]float64{"rating": rating}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/tracks/%d/rating", trackID), body, nil)
}

// UpdatePlayCount increments a track's play count by one.
func (c *Client) UpdatePlayCount(ctx context.Context, trackID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/tracks/%d/playcount", trackID), nil, nil)
}

// Tracks lists library tracks matching q.
func (c *Client) Tracks(ctx context.Context, q TrackQuery) ([]playlist.Track, error) {
	params := url.Values{}
	if q.Artist != "" {
		params.Set("artist", q.Artist)
	}
	if q.Album != "" {
		params.Set("album", q.Album)
	}
	if q.Folder != "" {
		params.Set("folder", q.Folder)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	path := "/tracks"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var tracks []playlist.Track
	if err := c.do(ctx, http.MethodGet, path, nil, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// Playlists lists the user's playlists.
func (c *Client) Playlists(ctx context.Context) ([]Playlist, error) {
	var out []Playlist
	if err := c.do(ctx, http.MethodGet, "/playlists", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePlaylist creates an empty playlist.
func (c *Client) CreatePlaylist(ctx context.Context, name string) (*Playlist, error) {
	var out Playlist
	if err := c.do(ctx, http.MethodPost, "/playlists", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToPlaylist appends a track to a playlist.
func (c *Client) AddToPlaylist(ctx context.Context, playlistID, trackID int64) error {
	body := map[string]int64{"track_id": trackID}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/playlists/%d/tracks", playlistID), body, nil)
}

// PersistRating implements Syncer.
func (c *Client) PersistRating(ctx context.Context, t playlist.Track, rating float64) error {
	return c.Rate(ctx, t.ID, rating)
}

// PersistPlayCount implements Syncer.
func (c *Client) PersistPlayCount(ctx context.Context, t playlist.Track) error {
	return c.UpdatePlayCount(ctx, t.ID)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader = http.NoBody
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
