// Package spotify is the client side of the Spotify Web API integration:
// the authorization-code flow, the cached client-credentials token, and the
// small set of Bearer-authenticated API calls the backend needs.
//
// API response types based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/rdsmusic/spotify-backend/internal/errors"
)

const defaultRequestTimeout = 10 * time.Second

type followers struct {
	Total int `json:"total"`
}

// User represents a Spotify user profile.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Country     string    `json:"country"`
	Product     string    `json:"product"` // premium, free, etc.
	Followers   followers `json:"followers"`
	Images      []Image   `json:"images"`
}

// ProfileImageURL returns the URL of the first profile image, if any.
func (u *User) ProfileImageURL() string {
	if len(u.Images) == 0 {
		return ""
	}
	return u.Images[0].URL
}

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Track represents a Spotify track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	DurationMS int      `json:"duration_ms"`
	Explicit   bool     `json:"explicit"`
	Popularity int      `json:"popularity"`
	URI        string   `json:"uri"`
}

// Artist represents a Spotify artist.
type Artist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	Images []Image  `json:"images"`
	URI    string   `json:"uri"`
}

// Album represents a Spotify album.
type Album struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ReleaseDate string  `json:"release_date"`
	TotalTracks int     `json:"total_tracks"`
	Images      []Image `json:"images"`
	URI         string  `json:"uri"`
}

type pagedTracks struct {
	Items []Track `json:"items"`
	Total int     `json:"total"`
}

type pagedArtists struct {
	Items []Artist `json:"items"`
	Total int      `json:"total"`
}

// SearchResults holds the reshaped results of a search call. Only the
// requested sections are populated.
type SearchResults struct {
	Tracks  []Track  `json:"tracks,omitempty"`
	Artists []Artist `json:"artists,omitempty"`
}

// Client performs Bearer-authenticated calls against the Spotify Web API.
// The access token is supplied per call: user-scoped tokens for profile
// requests, the shared client-credentials token for search.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given API base URL
// (e.g. "https://api.spotify.com/v1").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

// get performs an authenticated GET and decodes the JSON response into result.
// Non-2xx responses become an UpstreamError of the given kind.
func (c *Client) get(ctx context.Context, kind error, op, endpoint, accessToken string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", kind, op, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", kind, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", kind, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{Kind: kind, Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("%w: %s: decode response: %w", kind, op, err)
		}
	}
	return nil
}

// Me retrieves the profile of the user the access token belongs to.
func (c *Client) Me(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.get(ctx, apperrors.ErrProfileFetch, "fetch profile", "/me", accessToken, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: empty user id in profile response", apperrors.ErrProfileFetch)
	}
	return &user, nil
}

// Search queries the search endpoint. types is the comma-separated Spotify
// type list ("track", "artist" or "track,artist").
func (c *Client) Search(ctx context.Context, accessToken, query, types string, limit int) (*SearchResults, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", types)
	params.Set("limit", strconv.Itoa(limit))

	var response struct {
		Tracks  *pagedTracks  `json:"tracks"`
		Artists *pagedArtists `json:"artists"`
	}
	if err := c.get(ctx, apperrors.ErrUpstreamAuth, "search", "/search?"+params.Encode(), accessToken, &response); err != nil {
		return nil, err
	}

	results := &SearchResults{}
	if response.Tracks != nil {
		results.Tracks = response.Tracks.Items
	}
	if response.Artists != nil {
		results.Artists = response.Artists.Items
	}
	return results, nil
}
