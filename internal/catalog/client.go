// Package catalog fetches exercise data from a wger-compatible exercise
// database.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://wger.de/api/v2"

// LanguageEnglish is the wger language code for English. Only exercise
// variants in this language are eligible for matching.
const LanguageEnglish = 2

// NamedItem is a muscle or equipment reference on a catalog entry.
type NamedItem struct {
	Name string `json:"name"`
}

// ExerciseInfo is one localized exercise variant nested in a catalog entry.
type ExerciseInfo struct {
	Name     string `json:"name"`
	Language int    `json:"language"`
}

// Entry is one record of the exercise catalog: muscle and equipment metadata
// grouped with one or more localized exercise name variants.
type Entry struct {
	Muscles   []NamedItem    `json:"muscles"`
	Equipment []NamedItem    `json:"equipment"`
	Exercises []ExerciseInfo `json:"exercises"`
}

// MuscleNames returns the comma-joined muscle names of the entry, or the
// empty string when the entry targets none.
func (e Entry) MuscleNames() string {
	return joinNames(e.Muscles)
}

// EquipmentNames returns the comma-joined equipment names of the entry, or
// the empty string when the entry requires none.
func (e Entry) EquipmentNames() string {
	return joinNames(e.Equipment)
}

func joinNames(items []NamedItem) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}

// Client issues requests against the exercise catalog API.
type Client struct {
	BaseURL    string
	APIKey     string
	Language   int
	HTTPClient *http.Client
}

type listResponse struct {
	Results []Entry `json:"results"`
}

// FetchExercises performs one bulk fetch of the exercise catalog, filtered to
// the configured language. An absent results field yields an empty slice,
// not an error.
func (c *Client) FetchExercises(ctx context.Context) ([]Entry, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	language := c.Language
	if language == 0 {
		language = LanguageEnglish
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	params := url.Values{}
	params.Set("language", strconv.Itoa(language))
	params.Set("api_key", c.APIKey)

	reqURL := fmt.Sprintf("%s/exerciseinfo/?%s", baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Token "+c.APIKey)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch exercise catalog: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog request failed with status %d", resp.StatusCode)
	}

	var parsed listResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	if parsed.Results == nil {
		return []Entry{}, nil
	}
	return parsed.Results, nil
}
