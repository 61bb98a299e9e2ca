// Package music fetches track suggestions from a Jamendo-compatible music
// catalog. The two operations deliberately keep the original per-operation
// sentinel values: "no results" is a successful answer, distinct from a
// transport error.
package music

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.jamendo.com/v3.0/tracks/"

// Sentinel results returned when the catalog yields nothing. These are
// successful values, never errors.
const (
	NoSongsForCriteria = "No songs found for the given criteria."
	NoSongsFound       = "No songs found."
)

// maxDurationFloor caps the workout-count-derived duration filter, in seconds.
const maxDurationFloor = 500

// Track is one record of the music catalog.
type Track struct {
	Name       string `json:"name"`
	ArtistName string `json:"artist_name"`
	Duration   int    `json:"duration"`
}

type listResponse struct {
	Results []Track `json:"results"`
}

// Client issues requests against the music catalog API.
type Client struct {
	BaseURL    string
	ClientID   string
	HTTPClient *http.Client
}

// SongsForWorkoutCount suggests tracks scaled to how many workouts the user
// has logged: the more workouts, the longer the minimum track duration, up
// to a fixed cap. Returns the one-element sentinel list when the catalog has
// no results or nothing passes the filter.
func (c *Client) SongsForWorkoutCount(ctx context.Context, workoutCount int) ([]string, error) {
	durationFloor := workoutCount * 100
	if durationFloor > maxDurationFloor {
		durationFloor = maxDurationFloor
	}

	tracks, hasResults, err := c.fetchTracks(ctx)
	if err != nil {
		return nil, err
	}
	if !hasResults {
		return []string{NoSongsForCriteria}, nil
	}

	songs := []string{}
	for _, track := range tracks {
		if track.Duration >= durationFloor {
			songs = append(songs, formatTrack(track))
		}
	}
	if len(songs) == 0 {
		return []string{NoSongsForCriteria}, nil
	}
	return songs, nil
}

// RandomSong picks one track uniformly at random from the catalog, with no
// duration filter. Returns the sentinel string when the catalog is empty.
func (c *Client) RandomSong(ctx context.Context) (string, error) {
	tracks, _, err := c.fetchTracks(ctx)
	if err != nil {
		return "", err
	}
	if len(tracks) == 0 {
		return NoSongsFound, nil
	}
	return formatTrack(tracks[rand.Intn(len(tracks))]), nil
}

func (c *Client) fetchTracks(ctx context.Context) ([]Track, bool, error) {
	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	params := url.Values{}
	params.Set("client_id", c.ClientID)

	separator := "?"
	if strings.Contains(baseURL, "?") {
		separator = "&"
	}
	reqURL := baseURL + separator + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create track request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fetch track catalog: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read track response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("track request failed with status %d", resp.StatusCode)
	}

	// Distinguish an absent results field from an empty one so the caller
	// can report the right sentinel.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, false, fmt.Errorf("decode track response: %w", err)
	}
	resultsRaw, ok := raw["results"]
	if !ok {
		return nil, false, nil
	}

	var tracks []Track
	if err := json.Unmarshal(resultsRaw, &tracks); err != nil {
		return nil, false, fmt.Errorf("decode track results: %w", err)
	}
	return tracks, true, nil
}

func formatTrack(track Track) string {
	name := track.Name
	if name == "" {
		name = "Unknown"
	}
	artist := track.ArtistName
	if artist == "" {
		artist = "Unknown"
	}
	return fmt.Sprintf("%s by %s", name, artist)
}
