// Package catalog reads movies from the TMDB v3 API. It is stateless and
// read-only.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movieBrowser/models"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultImageURL = "https://image.tmdb.org/t/p/w500"
	DefaultLanguage = "es-ES"
)

// ErrUpstream is returned when the catalog API answers with a non-2xx status.
var ErrUpstream = errors.New("catalog api error")

// StatusError carries the upstream HTTP status.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }

// Config configures a Client.
type Config struct {
	APIKey   string
	BaseURL  string
	ImageURL string
	Language string
	Timeout  time.Duration
}

// Client talks to the TMDB API.
type Client struct {
	apiKey   string
	baseURL  string
	imageURL string
	language string
	http     *http.Client
}

func New(cfg Config) *Client {
	c := &Client{
		apiKey:   cfg.APIKey,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		imageURL: strings.TrimRight(cfg.ImageURL, "/"),
		language: cfg.Language,
		http:     &http.Client{Timeout: cfg.Timeout},
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.imageURL == "" {
		c.imageURL = DefaultImageURL
	}
	if c.language == "" {
		c.language = DefaultLanguage
	}
	if c.http.Timeout <= 0 {
		c.http.Timeout = 10 * time.Second
	}
	return c
}

type listResponse struct {
	Page         int            `json:"page"`
	Results      []models.Movie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// Popular returns the first page of currently popular movies.
func (c *Client) Popular(ctx context.Context) ([]models.Movie, error) {
	q := url.Values{}
	q.Set("page", "1")

	var out listResponse
	if err := c.get(ctx, "popular movies", "/movie/popular", q, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Results), nil
}

// Search returns the first page of movies matching query. A blank query
// returns the popular list instead.
func (c *Client) Search(ctx context.Context, query string) ([]models.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Popular(ctx)
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("include_adult", "false")
	q.Set("page", "1")

	var out listResponse
	if err := c.get(ctx, "search movies", "/search/movie", q, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Results), nil
}

// Details returns a single movie.
func (c *Client) Details(ctx context.Context, id int64) (*models.Movie, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid movie id %d", id)
	}
	var m models.Movie
	if err := c.get(ctx, "movie details", "/movie/"+strconv.FormatInt(id, 10), url.Values{}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// PosterURL turns a poster_path into an absolute image URL. Empty paths stay empty.
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	if !strings.HasPrefix(posterPath, "/") {
		posterPath = "/" + posterPath
	}
	return c.imageURL + posterPath
}

func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}

func nonNil(ms []models.Movie) []models.Movie {
	if ms == nil {
		return []models.Movie{}
	}
	return ms
}
